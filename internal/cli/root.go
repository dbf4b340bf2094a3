package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/mcoot/gamehub/internal/app"
	"github.com/mcoot/gamehub/internal/backend"
	"github.com/mcoot/gamehub/internal/services/launcher"
	"github.com/mcoot/gamehub/internal/services/session"
)

// invocation is the per-invocation state shared by all subcommands
type invocation struct {
	cfg    *Config
	jar    *FileJar
	stores *app.Builder
	opener launcher.Opener
}

// store creates a Store for this invocation using the persisted cookies
func (r *invocation) store() *app.Store {
	return r.stores.New(r.jar, r.opener)
}

func (r *invocation) output(cmd *cobra.Command) *Output {
	return NewOutput(r.cfg.Output, cmd.OutOrStdout())
}

// browserOpener opens URLs in the desktop browser
type browserOpener struct{}

func (browserOpener) Open(_ context.Context, url string) error {
	return browser.OpenURL(url)
}

// Options customises the root command, mainly for tests
type Options struct {
	// Opener replaces the desktop browser
	Opener launcher.Opener
}

// NewRootCmd creates the root command
func NewRootCmd(opts Options) *cobra.Command {
	rt := &invocation{cfg: DefaultConfig(), opener: opts.Opener}
	if rt.opener == nil {
		browser.Stdout = io.Discard
		rt.opener = browserOpener{}
	}

	rootCmd := &cobra.Command{
		Use:   "gamehub",
		Short: "Browse and launch GameHub games",
		Long: `gamehub lists the GameHub catalog and launches games in your browser.

Sign in with "gamehub auth login"; the backend session cookie is kept in
the cookie file between runs.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.jar.Save(); err != nil {
				return fmt.Errorf("failed to save cookies: %w", err)
			}
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&rt.cfg.BackendURL, "backend", rt.cfg.BackendURL, "Backend base URL (env: GAMEHUB_BACKEND_URL)")
	rootCmd.PersistentFlags().StringVar(&rt.cfg.SessionPath, "session-path", rt.cfg.SessionPath, "Session check path (env: GAMEHUB_SESSION_PATH)")
	rootCmd.PersistentFlags().StringVar(&rt.cfg.CookieFile, "cookie-file", rt.cfg.CookieFile, "Cookie file path (env: GAMEHUB_COOKIE_FILE)")
	rootCmd.PersistentFlags().DurationVar(&rt.cfg.Timeout, "timeout", rt.cfg.Timeout, "Backend request timeout")
	rootCmd.PersistentFlags().StringVarP(&rt.cfg.Output, "output", "o", rt.cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&rt.cfg.Verbose, "verbose", "v", rt.cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newGamesCmd(rt))
	rootCmd.AddCommand(newAuthCmd(rt))

	return rootCmd
}

func (r *invocation) init() error {
	if r.cfg.BackendURL == "" {
		return errors.New("--backend or GAMEHUB_BACKEND_URL is required")
	}

	level := slog.LevelWarn
	if r.cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	client := backend.NewClient(r.cfg.BackendURL, r.cfg.Timeout)
	jar, err := LoadJar(r.cfg.CookieFile, client.BaseURL())
	if err != nil {
		return err
	}
	r.jar = jar

	sessionCfg := session.DefaultConfig()
	sessionCfg.CurrentPath = r.cfg.SessionPath
	r.stores = &app.Builder{
		Backend:       client,
		SessionConfig: sessionCfg,
		Logger:        logger,
	}
	return nil
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd(Options{}).Execute(); err != nil {
		os.Exit(1)
	}
}
