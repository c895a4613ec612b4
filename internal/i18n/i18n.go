package i18n

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"adb-connect/internal/session"

	"github.com/jeandeaual/go-locale"
)

// Language represents the supported languages
type Language int

const (
	English Language = iota
	Chinese
)

// All lists the languages in menu order.
var All = []Language{Chinese, English}

// Tag returns the value persisted in settings.
func (l Language) Tag() string {
	if l == Chinese {
		return "zh_CN"
	}
	return "en"
}

// Parse maps a persisted or locale tag to a Language.
// Any Chinese variant ("zh", "zh_CN", "zh-Hans-CN") selects Chinese.
func Parse(tag string) (Language, bool) {
	t := strings.ToLower(strings.TrimSpace(tag))
	switch {
	case t == "":
		return English, false
	case strings.HasPrefix(t, "zh"):
		return Chinese, true
	case t == "en" || strings.HasPrefix(t, "en_") || strings.HasPrefix(t, "en-"):
		return English, true
	}
	return English, false
}

// Resolve picks the UI language: the saved tag if recognized, else the OS
// locale, else English.
func Resolve(saved string) Language {
	if l, ok := Parse(saved); ok {
		return l
	}
	return Detect()
}

// Detect detects the system language
func Detect() Language {
	if tag, err := locale.GetLocale(); err == nil {
		if l, ok := Parse(tag); ok {
			return l
		}
	}
	for _, env := range []string{"LC_ALL", "LANG", "LANGUAGE"} {
		if l, ok := Parse(os.Getenv(env)); ok {
			return l
		}
	}
	return English
}

// Strings is every piece of text the interface shows, for one language.
// Fields ending in "Fmt" take the endpoint as their single argument.
type Strings struct {
	Title            string
	Settings         string
	SetADBPath       string
	Detect           string
	Language         string
	Theme            string
	ThemeSystem      string
	ThemeLight       string
	ThemeDark        string
	Connect          string
	Disconnect       string
	IP               string
	Port             string
	StatusReady      string
	StatusWorking    string
	Error            string
	Success          string
	InvalidADB       string
	ADBPathSaved     string
	ADBNotDetected   string
	SetADBFirst      string
	EnterIPPort      string
	InvalidIPPort    string
	ConnectedToFmt   string
	ConnectFailedFmt string
	Disconnected     string
	DisconnectFailed string
	SaveFailed       string
	Busy             string
	ThemeRestart     string
	LanguageNames    map[Language]string
}

var zhCN = Strings{
	Title:            "ADB连接工具",
	Settings:         "设置",
	SetADBPath:       "设置ADB路径",
	Detect:           "自动检测ADB",
	Language:         "语言",
	Theme:            "主题",
	ThemeSystem:      "跟随系统",
	ThemeLight:       "浅色",
	ThemeDark:        "深色",
	Connect:          "开启ADB连接",
	Disconnect:       "关闭ADB连接",
	IP:               "IP:",
	Port:             "端口:",
	StatusReady:      "就绪",
	StatusWorking:    "正在执行…",
	Error:            "错误",
	Success:          "成功",
	InvalidADB:       "选择的文件不是有效的ADB程序！",
	ADBPathSaved:     "ADB路径已保存！",
	ADBNotDetected:   "无法自动检测ADB。请手动选择。",
	SetADBFirst:      "请先设置ADB路径",
	EnterIPPort:      "请输入IP地址和端口",
	InvalidIPPort:    "IP地址或端口格式无效",
	ConnectedToFmt:   "已连接到 %s",
	ConnectFailedFmt: "无法连接到设备 %s，请检查设备是否开启调试模式并确保网络连接正常",
	Disconnected:     "已断开连接",
	DisconnectFailed: "断开连接失败",
	SaveFailed:       "无法保存设置",
	Busy:             "上一个ADB命令仍在执行",
	ThemeRestart:     "主题已保存。",
	LanguageNames:    map[Language]string{Chinese: "中文", English: "英文"},
}

var en = Strings{
	Title:            "ADB Connection Tool",
	Settings:         "Settings",
	SetADBPath:       "Set ADB Path",
	Detect:           "Detect ADB",
	Language:         "Language",
	Theme:            "Theme",
	ThemeSystem:      "System",
	ThemeLight:       "Light",
	ThemeDark:        "Dark",
	Connect:          "Connect ADB",
	Disconnect:       "Disconnect ADB",
	IP:               "IP:",
	Port:             "Port:",
	StatusReady:      "Ready",
	StatusWorking:    "Working…",
	Error:            "Error",
	Success:          "Success",
	InvalidADB:       "Selected file is not a valid ADB executable!",
	ADBPathSaved:     "ADB path saved!",
	ADBNotDetected:   "Could not auto-detect ADB. Please select it manually.",
	SetADBFirst:      "Please set ADB path first",
	EnterIPPort:      "Please enter IP address and port",
	InvalidIPPort:    "Invalid IP address or port format",
	ConnectedToFmt:   "Connected to %s",
	ConnectFailedFmt: "Failed to connect to device %s. Please check if debug mode is enabled and network connection is stable",
	Disconnected:     "Disconnected",
	DisconnectFailed: "Failed to disconnect",
	SaveFailed:       "Could not save settings",
	Busy:             "Another ADB command is still running",
	ThemeRestart:     "Theme saved.",
	LanguageNames:    map[Language]string{Chinese: "Chinese", English: "English"},
}

// For returns the text table for l.
func For(l Language) *Strings {
	if l == Chinese {
		return &zhCN
	}
	return &en
}

// ConnectedTo formats the success status line.
func (s *Strings) ConnectedTo(endpoint string) string {
	return fmt.Sprintf(s.ConnectedToFmt, endpoint)
}

// Message returns the localized text for a controller error. target is the
// endpoint shown in connect failures.
func (s *Strings) Message(err error, target string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, session.ErrNoBridgeConfigured):
		return s.SetADBFirst
	case errors.Is(err, session.ErrMissingInput):
		return s.EnterIPPort
	case errors.Is(err, session.ErrInvalidEndpoint):
		return s.InvalidIPPort
	case errors.Is(err, session.ErrBridgeInvalid):
		return s.InvalidADB
	case errors.Is(err, session.ErrConnectFailed):
		return fmt.Sprintf(s.ConnectFailedFmt, target)
	case errors.Is(err, session.ErrDisconnectFailed):
		return s.DisconnectFailed
	case errors.Is(err, session.ErrSettingsSave):
		return s.SaveFailed
	case errors.Is(err, session.ErrBusy):
		return s.Busy
	}
	return err.Error()
}
