// Package cli exposes the connection controller on the command line. With no
// subcommand the root command opens the desktop window.
package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"adb-connect/internal/adb"
	"adb-connect/internal/config"
	"adb-connect/internal/i18n"
	"adb-connect/internal/logging"
	"adb-connect/internal/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "0.1.0"

// LaunchFunc opens the desktop window and blocks until it is closed.
type LaunchFunc func(ctrl *session.Controller, log *zap.Logger) error

type options struct {
	settingsPath string
	logLevel     string
	launch       LaunchFunc

	// set by setup
	log  *zap.Logger
	mgr  *adb.Manager
	ctrl *session.Controller
	text *i18n.Strings
}

// Execute runs the root command with os.Args.
func Execute(launch LaunchFunc) error {
	return NewRootCommand(launch).Execute()
}

// NewRootCommand builds the command tree. launch may be nil, in which case
// the root command only prints help.
func NewRootCommand(launch LaunchFunc) *cobra.Command {
	o := &options{launch: launch}

	root := &cobra.Command{
		Use:   "adb-connect",
		Short: "Connect to Android devices over wireless adb",
		Long: `adb-connect manages wireless debugging connections through adb.

Run without arguments to open the window, or use a subcommand:

  adb-connect set-adb /opt/platform-tools/adb
  adb-connect connect 192.168.1.5 5555
  adb-connect disconnect`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if o.log != nil {
				_ = o.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.launch == nil {
				return cmd.Help()
			}
			return o.launch(o.ctrl, o.log)
		},
	}
	root.PersistentFlags().StringVar(&o.settingsPath, "settings", "", "settings file (default: settings.json next to the executable)")
	root.PersistentFlags().StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(
		newConnectCommand(o),
		newDisconnectCommand(o),
		newSetADBCommand(o),
		newLanguageCommand(o),
		newStatusCommand(o),
	)
	return root
}

func (o *options) setup(cmd *cobra.Command) error {
	path := o.settingsPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return fmt.Errorf("locate settings file: %w", err)
		}
		path = p
	}

	console := cmd.ErrOrStderr()
	logDir := filepath.Join(filepath.Dir(path), "logs")
	log, fileErr := logging.New(logging.Options{Dir: logDir, Level: o.logLevel, Console: console})
	if fileErr != nil {
		var err error
		log, err = logging.New(logging.Options{Level: o.logLevel, Console: console})
		if err != nil {
			return err
		}
		log.Warn("log directory unavailable, logging to console only",
			zap.String("dir", logDir), zap.Error(fileErr))
	}
	o.log = log

	store := config.Open(path, log)
	o.mgr = adb.NewManager("", log)
	o.ctrl = session.New(store, o.mgr, log)
	o.text = i18n.For(i18n.Resolve(store.Settings().Language))
	log.Debug("settings loaded", zap.String("path", store.Path()))
	return nil
}

// fail turns a controller error into a localized command error.
func (o *options) fail(err error, target string) error {
	return errors.New(o.text.Message(err, target))
}

func newConnectCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "connect <ip> <port>",
		Short: "Connect to a device with adb connect",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := o.ctrl.Connect(args[0], args[1])
			if out.Kind != session.Connected {
				return o.fail(out.Err, args[0]+":"+args[1])
			}
			fmt.Fprintln(cmd.OutOrStdout(), o.text.ConnectedTo(out.Endpoint.String()))
			if out.Err != nil {
				return o.fail(out.Err, "")
			}
			return nil
		},
	}
}

func newDisconnectCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "Drop wireless adb connections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := o.ctrl.Disconnect()
			if out.Kind != session.Disconnected {
				return o.fail(out.Err, "")
			}
			fmt.Fprintln(cmd.OutOrStdout(), o.text.Disconnected)
			return nil
		},
	}
}

func newSetADBCommand(o *options) *cobra.Command {
	var detect bool
	cmd := &cobra.Command{
		Use:   "set-adb [path]",
		Short: "Verify and save the adb executable to use",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p string
			switch {
			case len(args) == 1:
				p = args[0]
				if resolved, err := adb.ResolvePath(p); err == nil {
					p = resolved
				}
			case detect:
				p = adb.AutoDetect()
				if p == "" {
					return errors.New(o.text.ADBNotDetected)
				}
			default:
				return errors.New("a path or --detect is required")
			}
			if err := o.ctrl.SetBridgePath(p); err != nil {
				return o.fail(err, "")
			}
			fmt.Fprintln(cmd.OutOrStdout(), o.text.ADBPathSaved, p)
			return nil
		},
	}
	cmd.Flags().BoolVar(&detect, "detect", false, "search PATH and Android SDK locations for adb")
	return cmd
}

func newLanguageCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:       "language <zh_CN|en>",
		Short:     "Set the interface language",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"zh_CN", "en"},
		RunE: func(cmd *cobra.Command, args []string) error {
			l, ok := i18n.Parse(args[0])
			if !ok {
				return fmt.Errorf("unsupported language %q", args[0])
			}
			if err := o.ctrl.SetLanguage(l.Tag()); err != nil {
				return o.fail(err, "")
			}
			o.text = i18n.For(l)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", o.text.Language, o.text.LanguageNames[l])
			return nil
		},
	}
}

func newStatusCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the saved settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := o.ctrl.Settings()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "adb path:      %s\n", orNone(s.ADBPath))
			if s.ADBPath != "" {
				v, err := o.mgr.Version()
				if err != nil {
					o.log.Warn("adb version failed", zap.Error(err))
					v = ""
				}
				fmt.Fprintf(w, "adb version:   %s\n", orNone(v))
			}
			fmt.Fprintf(w, "last endpoint: %s\n", orNone(s.LastIPPort))
			fmt.Fprintf(w, "language:      %s\n", i18n.Resolve(s.Language).Tag())
			fmt.Fprintf(w, "theme:         %s\n", orNone(s.ThemeMode))
			return nil
		},
	}
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
