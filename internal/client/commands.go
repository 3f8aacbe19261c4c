package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-waste-sync/internal/config"
	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/models"
	"github.com/spf13/cobra"
)

// AppFactory builds the App a command runs against.
type AppFactory func(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*App, error)

// RootOptions holds the global flags and the process wiring shared by every
// command.
type RootOptions struct {
	ConfigPath string
	Server     string
	DB         string
	HashKey    string
	LogLevel   string
	JSON       bool

	BuildInfo models.AppBuildInfo
	Logger    *logger.Logger
	NewApp    AppFactory
}

// overrides turns explicitly set flags into the highest priority config
// source.
func (o *RootOptions) overrides() *config.StructuredConfig {
	cfg := &config.StructuredConfig{JSONFilePath: o.ConfigPath}
	cfg.Adapter.HTTPAddress = o.Server
	cfg.Storage.DB.DSN = o.DB
	cfg.App.HashKey = o.HashKey
	cfg.App.LogLevel = o.LogLevel
	return cfg
}

// withApp loads the config, builds the App and hands it to fn. The App is
// closed afterwards.
func (o *RootOptions) withApp(cmd *cobra.Command, fn func(ctx context.Context, app *App) error) error {
	cfg, err := config.GetClientConfig(o.overrides())
	if err != nil {
		return err
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		o.Logger.Warn().Err(err).Str("func", "*RootOptions.withApp").Msg("keeping default log level")
	}

	ctx := o.Logger.WithContext(cmd.Context())
	app, err := o.NewApp(ctx, cfg, o.Logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			o.Logger.Err(closeErr).Str("func", "*RootOptions.withApp").Msg("closing local storage")
		}
	}()

	return fn(ctx, app)
}

// withStartedApp is withApp after the session and cache are restored.
func (o *RootOptions) withStartedApp(cmd *cobra.Command, fn func(ctx context.Context, app *App) error) error {
	return o.withApp(cmd, func(ctx context.Context, app *App) error {
		if err := app.Start(ctx); err != nil {
			return err
		}
		return fn(ctx, app)
	})
}

func (o *RootOptions) printer(cmd *cobra.Command) *printer {
	return &printer{out: cmd.OutOrStdout(), json: o.JSON}
}

// NewRootCommand creates the client command tree.
func NewRootCommand(opts *RootOptions) *cobra.Command {
	if opts.NewApp == nil {
		opts.NewApp = NewApp
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	cmd := &cobra.Command{
		Use:           "waste-sync",
		Short:         "Offline-first client for the waste management service",
		Version:       opts.BuildInfo.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate(fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s\n",
		opts.BuildInfo.BuildVersion(), opts.BuildInfo.BuildDate(), opts.BuildInfo.BuildCommit()))

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a JSON or YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Server, "server", "", "server base URL")
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "path to the local SQLite database")
	cmd.PersistentFlags().StringVar(&opts.HashKey, "hash-key", "", "HMAC key for the HashSHA256 header")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVar(&opts.JSON, "json", false, "print JSON instead of text")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewRegisterCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewSyncCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewPickupCommand(opts))
	cmd.AddCommand(NewPayCommand(opts))
	cmd.AddCommand(NewScanCommand(opts))
	cmd.AddCommand(NewQueueCommand(opts))

	return cmd
}

// Execute runs the command tree with signal-aware context and returns the
// process exit code.
func Execute(opts *RootOptions, args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

func NewRunCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Keep the cache and the offline queues in sync until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(cmd, func(ctx context.Context, app *App) error {
				return app.Run(ctx)
			})
		},
	}
}

type credentials struct {
	username string
	password string
	address  string
	phone    string
}

func (c *credentials) bind(cmd *cobra.Command, withProfile bool) {
	cmd.Flags().StringVarP(&c.username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&c.password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	if withProfile {
		cmd.Flags().StringVar(&c.address, "address", "", "home address")
		cmd.Flags().StringVar(&c.phone, "phone", "", "phone number")
	}
}

func (c *credentials) request() models.AuthRequest {
	return models.AuthRequest{Username: c.username, Password: c.password, Address: c.address, Phone: c.phone}
}

func NewLoginCommand(opts *RootOptions) *cobra.Command {
	var creds credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withStartedApp(cmd, func(ctx context.Context, app *App) error {
				session, err := app.Login(ctx, creds.request())
				if err != nil {
					return err
				}
				return opts.printer(cmd).session("Signed in", session)
			})
		},
	}
	creds.bind(cmd, false)
	return cmd
}

func NewRegisterCommand(opts *RootOptions) *cobra.Command {
	var creds credentials
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a resident account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withStartedApp(cmd, func(ctx context.Context, app *App) error {
				session, err := app.Register(ctx, creds.request())
				if err != nil {
					return err
				}
				return opts.printer(cmd).session("Registered", session)
			})
		},
	}
	creds.bind(cmd, true)
	return cmd
}

func NewLogoutCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the session and the cached data. Queued mutations are kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withStartedApp(cmd, func(ctx context.Context, app *App) error {
				if err := app.Logout(ctx); err != nil {
					return err
				}
				return opts.printer(cmd).message("Signed out")
			})
		},
	}
}

func NewSyncCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Flush the offline queues and pull the latest changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withStartedApp(cmd, func(ctx context.Context, app *App) error {
				reports, err := app.Sync(ctx)
				if printErr := opts.printer(cmd).reports(reports); printErr != nil {
					return printErr
				}
				return err
			})
		},
	}
}

func NewStatusCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show connectivity, session, cache and queue state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withStartedApp(cmd, func(ctx context.Context, app *App) error {
				status, err := app.Status(ctx)
				if err != nil {
					return err
				}
				return opts.printer(cmd).status(status)
			})
		},
	}
}
