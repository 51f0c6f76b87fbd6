package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/naveenspark/sdvig/internal/config"
	"github.com/naveenspark/sdvig/internal/hostbridge"
	"github.com/naveenspark/sdvig/internal/kv"
	"github.com/naveenspark/sdvig/internal/logging"
	"github.com/naveenspark/sdvig/internal/store"
	"github.com/naveenspark/sdvig/internal/tui"
	"github.com/naveenspark/sdvig/pkg/domain"
	"github.com/naveenspark/sdvig/pkg/figma"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// options are the flags shared by every command.
type options struct {
	configPath string
	initData   string
}

func newRootCmd() *cobra.Command {
	var opts options
	root := &cobra.Command{
		Use:           "sdvig",
		Short:         "Project and client dashboard for designers",
		Long:          "Track project progress, daily logs and client approvals from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.OutOrStdout(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.sdvig/config.yaml)")
	root.PersistentFlags().StringVar(&opts.initData, "init-data", "", "Telegram WebApp init data, overrides the config")

	root.AddCommand(
		newSyncCmd(&opts),
		newFetchCmd(&opts),
		newResetCmd(&opts),
		newVersionCmd(),
	)
	return root
}

func newSyncCmd(opts *options) *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Check the Figma token and greet its owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(*opts)
			if err != nil {
				return err
			}
			defer e.Close() //nolint:errcheck

			if token != "" {
				if err := e.store.SetToken(token); err != nil {
					return err
				}
			}
			me, err := e.store.SyncDesignAccount(cmd.Context())
			if errors.Is(err, store.ErrNoToken) {
				return errors.New("no Figma token saved; pass --token or enter one in the dashboard")
			}
			if err != nil {
				return err
			}
			printSynced(cmd.OutOrStdout(), me)
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "save this Figma personal access token before syncing")
	return cmd
}

func newFetchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <figma-url>",
		Short: "Show the design file behind a Figma link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*opts)
			if err != nil {
				return err
			}
			defer e.Close() //nolint:errcheck

			file, err := e.store.FetchDesignFile(cmd.Context(), args[0])
			if errors.Is(err, store.ErrNoToken) {
				return errors.New("no Figma token saved; run sdvig sync --token first")
			}
			if err != nil {
				return err
			}
			printFile(cmd.OutOrStdout(), args[0], file)
			return nil
		},
	}
}

func newResetCmd(opts *options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget everything saved on this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("refusing to clear saved state without --yes")
			}
			cfg, logger, closer, err := loadConfig(*opts)
			if err != nil {
				return err
			}
			defer closer.Close() //nolint:errcheck

			medium, err := openMedium(cfg, logger)
			if err != nil {
				return err
			}
			defer medium.Close() //nolint:errcheck

			stored, err := medium.Keys()
			if err != nil {
				return err
			}
			n := 0
			for _, k := range stored {
				if slices.Contains(store.Keys, k) {
					n++
				}
			}
			if err := medium.Delete(store.Keys...); err != nil {
				return err
			}
			logger.Info("saved state cleared", slog.Int("keys", n))
			printCleared(cmd.OutOrStdout(), n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm that saved state should be deleted")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the sdvig version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "sdvig "+version)
		},
	}
}

func runTUI(out io.Writer, opts options) error {
	e, err := openEnv(opts)
	if err != nil {
		return err
	}
	defer e.Close() //nolint:errcheck

	app := tui.NewApp(e.store, version)
	p := tea.NewProgram(app, tea.WithAltScreen())
	cancel := tui.Bind(p, e.store)
	defer cancel()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	printFarewell(out, e.store.Snapshot())
	return nil
}

// env is everything a command needs to drive the store.
type env struct {
	medium kv.Medium
	store  *store.Store
	logs   io.Closer
}

func openEnv(opts options) (*env, error) {
	cfg, logger, closer, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	medium, err := openMedium(cfg, logger)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	s := store.New(store.Options{
		Medium:   medium,
		Figma:    figma.New(cfg.Figma.BaseURL),
		Logger:   logger,
		HostUser: hostUser(cfg.Telegram, logger),
		BotName:  cfg.Telegram.BotName,
	})
	return &env{medium: medium, store: s, logs: closer}, nil
}

func (e *env) Close() error {
	return errors.Join(e.store.Close(), e.medium.Close(), e.logs.Close())
}

func loadConfig(opts options) (*config.Config, *slog.Logger, io.Closer, error) {
	path := opts.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, nil, nil, err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, nil, err
	}
	if opts.initData != "" {
		cfg.Telegram.InitData = opts.initData
	}

	// The terminal belongs to the UI, so logs only go to the configured file.
	logger, closer, err := logging.Setup(cfg.Logging, nil)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return cfg, logger, closer, nil
}

func openMedium(cfg *config.Config, logger *slog.Logger) (kv.Medium, error) {
	path := cfg.Storage.Path
	if path == "" {
		p, err := kv.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	db, err := kv.OpenSQLite(path, logging.Component(logger, "kv"))
	if err != nil {
		return nil, err
	}
	return db, nil
}

// hostUser returns the identity carried by init data, or nil when there is
// none or its signature does not check out.
func hostUser(tg config.TelegramConfig, logger *slog.Logger) *domain.User {
	if tg.InitData == "" {
		return nil
	}
	if tg.BotToken != "" {
		if err := hostbridge.Verify(tg.InitData, tg.BotToken); err != nil {
			logger.Warn("init data rejected", slog.Any("err", err))
			return nil
		}
	}
	u, ok := hostbridge.Resolve(tg.InitData)
	if !ok {
		logger.Debug("init data carries no user")
		return nil
	}
	return &u
}
