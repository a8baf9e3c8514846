package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/studiowebux/quickcap/internal/clipwatch"
	"github.com/studiowebux/quickcap/internal/config"
	"github.com/studiowebux/quickcap/internal/history"
	"github.com/studiowebux/quickcap/internal/hotkey/osreg"
	"github.com/studiowebux/quickcap/internal/keybinds"
	"github.com/studiowebux/quickcap/internal/session"
	"github.com/studiowebux/quickcap/internal/tui"
	"github.com/studiowebux/quickcap/internal/types"
	"github.com/studiowebux/quickcap/internal/version"
	"gopkg.in/yaml.v3"
)

func main() {
	osreg.Main(func() {
		if err := rootCmd.Execute(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	})
}

var rootCmd = &cobra.Command{
	Use:   "quickcap",
	Short: "quickcap - keyboard-driven quick capture overlay",
	Long: `quickcap is a quick capture overlay with clipboard history.

Type or paste into the editor, then press ctrl/alt+enter to copy the text
to the clipboard and hide the overlay. A global hotkey brings it back.

Examples:
  quickcap                      # Start the overlay
  quickcap --no-hotkey          # Start without registering the global hotkey
  quickcap history --search foo # Search clipboard history
  quickcap watch                # Record clipboard changes without the overlay
  quickcap config keybinds      # Check keybinds.json for conflicts`,
	Version: version.String(),
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOverlay(cmd)
	},
}

// Flags for the root command
var (
	flagNoHotkey  bool
	flagNoMonitor bool
)

// Flags for history
var (
	flagSearch string
	flagLimit  int
	flagYes    bool
)

var flagCheck bool

func init() {
	rootCmd.Flags().BoolVar(&flagNoHotkey, "no-hotkey", false, "Do not register the global hotkey")
	rootCmd.Flags().BoolVar(&flagNoMonitor, "no-monitor", false, "Do not record clipboard changes into history")

	historyCmd.Flags().StringVarP(&flagSearch, "search", "s", "", "Only list entries containing this text")
	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 20, "Maximum number of entries to list")
	historyClearCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Clear without asking")
	historyExportCmd.Flags().StringVarP(&flagSearch, "search", "s", "", "Only export entries containing this text")

	versionCmd.Flags().BoolVar(&flagCheck, "check", false, "Check for a newer release")

	historyCmd.AddCommand(historyDeleteCmd, historyClearCmd, historyExportCmd)
	configCmd.AddCommand(configKeybindsCmd)
	rootCmd.AddCommand(historyCmd, watchCmd, configCmd, versionCmd)
}

// app holds what every command needs after configuration is loaded
type app struct {
	logger   *log.Logger
	settings config.Settings
	store    *history.Manager
	closeLog func()
}

func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Printf("history: failed to close database: %v", err)
		}
	}
	a.closeLog()
}

// setup initializes configuration, logging and the history database
func setup() (*app, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	logger, closeLog := openLogger(config.LogFile)
	a := &app{logger: logger, closeLog: closeLog}

	settings, err := config.LoadSettings(config.SettingsFile)
	if err != nil {
		logger.Printf("config: %v, using defaults", err)
		settings = config.DefaultSettings()
	}
	a.settings = settings

	store, err := history.NewManager(config.DatabasePath, history.WithPreviewLength(settings.PreviewLength))
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("failed to open clipboard history: %w", err)
	}
	a.store = store
	return a, nil
}

// openLogger logs to path, or to stderr when the file cannot be opened
func openLogger(path string) (*log.Logger, func()) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, config.FilePermissions)
	if err != nil {
		return log.New(os.Stderr, "[quickcap] ", log.LstdFlags), func() {}
	}
	return log.New(f, "[quickcap] ", log.LstdFlags|log.Lshortfile), func() { f.Close() }
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// runOverlay starts the interactive overlay
func runOverlay(cmd *cobra.Command) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return err
	}

	sess := session.NewManager(config.SessionFile)
	if err := sess.Load(); err != nil {
		a.logger.Printf("session: %v", err)
	}

	opts := tui.Options{
		Settings:     a.settings,
		SettingsPath: config.SettingsFile,
		Keybinds:     registry,
		Store:        a.store,
		Session:      sess,
		Logger:       a.logger,
	}

	switch {
	case flagNoHotkey:
	case !osreg.Supported:
		a.logger.Printf("hotkey: global hotkey unsupported in this build, running without one")
	default:
		system := osreg.New(a.logger)
		defer system.Close()
		opts.Registrar = system
	}
	if !flagNoMonitor && a.settings.Monitoring() {
		opts.Watch = clipwatch.SystemReader()
	}

	ctx, cancel := signalContext()
	defer cancel()
	return tui.Run(ctx, opts)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List clipboard history, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := fetchEntries(cmd.Context(), a.store, flagSearch, flagLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No clipboard history")
			return nil
		}

		for _, e := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%6d  %s  %s\n", e.ID, e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Preview)
		}
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one clipboard history entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int64
		if _, err := fmt.Sscan(args[0], &id); err != nil {
			return fmt.Errorf("invalid entry id %q", args[0])
		}

		a, err := setup()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.store.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %d\n", id)
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all clipboard history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !flagYes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Clear all clipboard history? (y/n) ") {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			return nil
		}

		a, err := setup()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.store.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Clipboard history cleared")
		return nil
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export clipboard history as JSON (stdout when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := fetchEntries(cmd.Context(), a.store, flagSearch, 0)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			return history.Export(cmd.OutOrStdout(), entries)
		}
		if err := history.ExportFile(args[0], entries); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d entries to %s\n", len(entries), args[0])
		return nil
	},
}

func fetchEntries(ctx context.Context, store *history.Manager, query string, limit int) ([]types.ClipboardEntry, error) {
	if query == "" {
		return store.Recent(ctx, limit)
	}
	return store.Search(ctx, query, limit)
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	var answer string
	if _, err := fmt.Fscanln(in, &answer); err != nil {
		return false
	}
	return answer == "y" || answer == "Y" || answer == "yes"
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Record clipboard changes into history until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		defer a.Close()

		sink := func(ctx context.Context, content string) error {
			return a.store.Record(ctx, content, a.settings.MaxEntries)
		}
		monitor := clipwatch.New(clipwatch.SystemReader(), sink, a.settings.MonitorInterval(), a.logger)

		ctx, cancel := signalContext()
		defer cancel()

		fmt.Fprintf(cmd.ErrOrStderr(), "Watching the clipboard every %s, press ctrl+c to stop\n", a.settings.MonitorInterval())
		return monitor.Run(ctx)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration paths and effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		settings, err := config.LoadSettings(config.SettingsFile)
		if err != nil {
			return err
		}
		settings.Normalize()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Config directory: %s\n", config.ConfigDir)
		fmt.Fprintf(out, "Settings:         %s\n", config.SettingsFile)
		fmt.Fprintf(out, "Keybinds:         %s\n", config.KeybindsFile)
		fmt.Fprintf(out, "Database:         %s\n", config.DatabasePath)
		fmt.Fprintf(out, "Log:              %s\n\n", config.LogFile)

		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(settings)
	},
}

var configKeybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Validate keybinds.json and report conflicts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
		if err != nil {
			return err
		}

		result := keybinds.NewValidator().ValidateRegistry(registry)
		if !result.HasErrors() && !result.HasWarnings() {
			fmt.Fprintln(cmd.OutOrStdout(), "Keybinds OK")
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), result.String())
		if result.HasErrors() {
			return fmt.Errorf("keybinds.json has %d errors", len(result.Errors))
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "quickcap %s\n", version.String())
		if !flagCheck {
			return nil
		}

		release, newer, err := version.NewChecker().Check(cmd.Context(), version.Version)
		if err != nil {
			return err
		}
		if newer {
			fmt.Fprintf(cmd.OutOrStdout(), "A newer release is available: %s\n%s\n", release.Version(), release.HTMLURL)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "You are running the latest release")
		}
		return nil
	},
}
