package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/opclass/internal/coach"
	"github.com/abhisek/opclass/internal/config"
	"github.com/abhisek/opclass/internal/llm"
	"github.com/abhisek/opclass/internal/logger"
	"github.com/abhisek/opclass/internal/service"
	"github.com/abhisek/opclass/internal/store"
)

// appEnv is what a subcommand needs at runtime.
type appEnv struct {
	cfg   config.Config
	log   *logger.Logger
	store *store.Store // nil unless opened
	svc   *service.Service
}

type storeMode int

const (
	storeNone     storeMode = iota
	storeHistory            // open only when history recording is on
	storeRequired           // history subcommands
)

// openEnv loads configuration, builds the logger and, depending on mode,
// opens the database.
func openEnv(cmd *cobra.Command, mode storeMode) (*appEnv, error) {
	cfg, err := config.Load(settings, cfgFile)
	if err != nil {
		return nil, err
	}
	if noHistory {
		cfg.History.Enabled = false
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	env := &appEnv{cfg: cfg, log: log}

	open := mode == storeRequired || (mode == storeHistory && cfg.History.Enabled)
	if open {
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		env.store = s
		log.Debug("database opened", "path", dbPath)
	}

	opts := []service.Option{service.WithWorkers(cfg.Batch.Workers)}
	if env.store != nil && cfg.History.Enabled {
		opts = append(opts, service.WithHistory(env.store.EventRepo()))
	}
	env.svc = service.New(log, opts...)
	return env, nil
}

func (e *appEnv) Close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.log.Warn("close database", "error", err)
		}
	}
	e.log.Sync()
}

// resolveDBPath prefers the db key (flag, env or file), then the default
// data path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// newCoach returns nil when no LLM provider is configured.
func (e *appEnv) newCoach(ctx context.Context) *coach.Coach {
	llmCfg := llm.LoadConfig()
	if !llmCfg.Enabled() {
		e.log.Debug("no LLM provider configured, walkthroughs disabled")
		return nil
	}
	var repo store.EventRepo
	if e.store != nil {
		repo = e.store.EventRepo()
	}
	provider, err := llm.NewProvider(ctx, llmCfg, repo, e.log)
	if err != nil {
		e.log.Warn("LLM provider unavailable", "provider", llmCfg.Provider, "error", err)
		return nil
	}
	return coach.New(provider, coach.DefaultConfig())
}
