package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/aretw0/csdlgen"
	"github.com/aretw0/csdlgen/internal/compiler"
	"github.com/aretw0/csdlgen/internal/config"
	"github.com/aretw0/csdlgen/internal/logging"
	"github.com/aretw0/csdlgen/internal/presentation/tui"
	"github.com/aretw0/csdlgen/pkg/adapters/file"
	"github.com/aretw0/csdlgen/pkg/adapters/memory"
	"github.com/aretw0/csdlgen/pkg/adapters/redis"
	"github.com/aretw0/csdlgen/pkg/observability"
	"github.com/aretw0/csdlgen/pkg/ports"
	"github.com/aretw0/csdlgen/pkg/typegraph"
)

// app is the state shared by every command: resolved config and logger.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

// loadApp resolves the configuration. Flags override the config file.
func loadApp(cmd *cobra.Command, args []string) (*app, error) {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")

	bootstrap := logging.New(slog.LevelWarn)
	cfg, err := config.NewLoader(bootstrap).Load(configPath)
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.Graph = args[0]
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("output") {
		cfg.OutputDir, _ = flags.GetString("output")
	}
	if flags.Changed("exclude") {
		cfg.Exclude, _ = flags.GetStringSlice("exclude")
	}
	if flags.Changed("entity-container") {
		cfg.EntityContainer, _ = flags.GetBool("entity-container")
	}
	if flags.Changed("store") {
		cfg.Store.Kind, _ = flags.GetString("store")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	return &app{cfg: cfg, logger: logging.NewWithWriter(cmd.ErrOrStderr(), level)}, nil
}

// program loads and compiles the configured graph document.
func (a *app) program(ctx context.Context) (*typegraph.Program, error) {
	a.logger.Debug("loading graph", "path", a.cfg.Graph)
	return compiler.LoadFile(a.cfg.Graph)
}

// store opens the configured document store. The returned closer is never nil.
func (a *app) store() (ports.DocumentStore, func(), error) {
	switch a.cfg.Store.Kind {
	case config.StoreMemory:
		return memory.NewStore(), func() {}, nil
	case config.StoreRedis:
		rc := a.cfg.Store.Redis
		opts := []redis.Option{redis.WithPrefix(rc.Prefix), redis.WithLocking(5 * time.Second)}
		if rc.TTL > 0 {
			opts = append(opts, redis.WithTTL(rc.TTL))
		}
		store := redis.New(rc.Addr, rc.Password, rc.DB, opts...)
		return store, func() {
			if err := store.Close(); err != nil {
				a.logger.Warn("failed to close redis client", "error", err)
			}
		}, nil
	case config.StoreFile:
		return file.New(a.cfg.OutputDir), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store kind %q", a.cfg.Store.Kind)
	}
}

// emitterOptions translates the config into Emitter options.
func (a *app) emitterOptions() []csdlgen.Option {
	return []csdlgen.Option{
		csdlgen.WithLogger(a.logger),
		csdlgen.WithExcludedNamespaces(a.cfg.Exclude...),
		csdlgen.WithFilename(a.cfg.Filename),
		csdlgen.WithEntityContainer(a.cfg.EntityContainer),
	}
}

// emitter builds an Emitter from the config. A nil store keeps the Emitter default.
func (a *app) emitter(store ports.DocumentStore, metrics *observability.Metrics, extra ...csdlgen.Option) *csdlgen.Emitter {
	opts := append(a.emitterOptions(), csdlgen.WithMetrics(metrics))
	if store != nil {
		opts = append(opts, csdlgen.WithStore(store))
	}
	return csdlgen.New(append(opts, extra...)...)
}

// stdoutStyled reports whether command output goes to a terminal.
func stdoutStyled(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && tui.IsTerminal(f)
}

// outputProfile is the color profile for command output.
func outputProfile(cmd *cobra.Command) termenv.Profile {
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		return tui.ProfileFor(f)
	}
	return termenv.Ascii
}
