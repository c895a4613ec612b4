package i18n

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"adb-connect/internal/session"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		tag  string
		want Language
		ok   bool
	}{
		{"zh_CN", Chinese, true},
		{"zh-Hans-CN", Chinese, true},
		{"ZH", Chinese, true},
		{"en", English, true},
		{"en_US.UTF-8", English, true},
		{"en-GB", English, true},
		{"fr_FR", English, false},
		{"", English, false},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, ok := Parse(tt.tag)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestTagRoundTrip(t *testing.T) {
	for _, l := range All {
		got, ok := Parse(l.Tag())
		assert.True(t, ok)
		assert.Equal(t, l, got)
	}
}

func TestResolvePrefersSaved(t *testing.T) {
	assert.Equal(t, Chinese, Resolve("zh_CN"))
	assert.Equal(t, English, Resolve("en"))
}

// Every language must fill every field; an empty string is a missing translation.
func TestTablesComplete(t *testing.T) {
	for _, l := range All {
		v := reflect.ValueOf(*For(l))
		for i := 0; i < v.NumField(); i++ {
			f := v.Field(i)
			name := v.Type().Field(i).Name
			switch f.Kind() {
			case reflect.String:
				assert.NotEmpty(t, f.String(), "%s.%s", l.Tag(), name)
			case reflect.Map:
				assert.Equal(t, len(All), f.Len(), "%s.%s", l.Tag(), name)
			}
		}
	}
}

func TestMessage(t *testing.T) {
	s := For(English)
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{session.ErrNoBridgeConfigured, s.SetADBFirst},
		{session.ErrMissingInput, s.EnterIPPort},
		{fmt.Errorf("%w: bad", session.ErrInvalidEndpoint), s.InvalidIPPort},
		{session.ErrBridgeInvalid, s.InvalidADB},
		{fmt.Errorf("%w: 10.0.0.2:5555", session.ErrConnectFailed), fmt.Sprintf(s.ConnectFailedFmt, "10.0.0.2:5555")},
		{session.ErrDisconnectFailed, s.DisconnectFailed},
		{session.ErrSettingsSave, s.SaveFailed},
		{session.ErrBusy, s.Busy},
		{errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.Message(tt.err, "10.0.0.2:5555"))
	}
}

func TestConnectedTo(t *testing.T) {
	assert.Equal(t, "Connected to 10.0.0.2:5555", For(English).ConnectedTo("10.0.0.2:5555"))
	assert.Equal(t, "已连接到 10.0.0.2:5555", For(Chinese).ConnectedTo("10.0.0.2:5555"))
}
