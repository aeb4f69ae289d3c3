package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"studyhub/internal/bootstrap"
	"studyhub/internal/platform/config"
)

type rootOptions struct {
	dataDir    string
	configPath string
	apiURL     string
	logLevel   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "studyhub",
		Short:         "Study platform client: session, notifications, progress and practice tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data", defaultDataDir(), "data directory")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default <data>/studyhub.yaml)")
	root.PersistentFlags().StringVar(&opts.apiURL, "api", "", "backend base URL (overrides config)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (overrides config)")

	root.AddCommand(
		newTUICmd(opts),
		newAuthCmd(opts),
		newNotifyCmd(opts),
		newProgressCmd(opts),
		newGoalsCmd(opts),
		newListenCmd(opts),
		newSpeakCmd(opts),
		newTimerCmd(opts),
		newBandCmd(),
		newWatchCmd(opts),
		newExportCmd(opts),
	)
	return root
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func loadConfig(opts *rootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.dataDir, opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if opts.apiURL != "" {
		cfg.APIURL = strings.TrimRight(opts.apiURL, "/")
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	return cfg, nil
}

// withApp opens the application, restores any persisted session and closes
// everything once fn returns.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, app *bootstrap.App) error) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	app, err := bootstrap.New(cfg)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	app.Restore(ctx)
	runErr := fn(ctx, app)
	if closeErr := app.Close(); closeErr != nil && runErr == nil {
		runErr = closeErr
	}
	return runErr
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			app, err := bootstrap.New(cfg)
			if err != nil {
				return err
			}
			runErr := bootstrap.RunTUI(cmd.Context(), app)
			if closeErr := app.Close(); closeErr != nil && runErr == nil {
				runErr = closeErr
			}
			return runErr
		},
	}
}

// readSecret prompts without echo on a terminal and reads a plain line
// otherwise, so passwords can be piped in scripts.
func readSecret(cmd *cobra.Command, prompt string) (string, error) {
	out := cmd.ErrOrStderr()
	_, _ = fmt.Fprint(out, prompt)
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}
	return readLine(cmd.InOrStdin())
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
