package main

import (
	"github.com/betguide449-cyber/betguide-cli/internal/entitlement"
	"github.com/betguide449-cyber/betguide-cli/internal/generator"
	"github.com/betguide449-cyber/betguide-cli/internal/registry"
	"github.com/betguide449-cyber/betguide-cli/internal/store"
	"github.com/betguide449-cyber/betguide-cli/pkg/anthropic"
)

// env bundles the wired collaborators behind each command.
type env struct {
	Store    store.Store
	Registry *registry.RedisRegistry
	Engine   *entitlement.Engine
}

// initEnv opens the local store, connects the registry, and assembles the
// engine from config.
func initEnv() (*env, error) {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	reg, err := registry.NewRedis(cfg.Registry.Addr, cfg.Registry.Password, cfg.Registry.DB, cfg.Registry.Namespace)
	if err != nil {
		st.Close()
		return nil, err
	}

	gen := generator.NewAnthropic(
		anthropic.NewClient(cfg.Anthropic.Key),
		cfg.Anthropic.Model,
		cfg.Anthropic.MaxTokens,
	)

	engine := entitlement.New(st, reg, gen, entitlement.Config{
		DailyLimit:      cfg.Engine.DailyLimit,
		FreeBatchSize:   cfg.Engine.FreeBatchSize,
		AdminMasterCode: cfg.Engine.AdminMasterCode,
		AdminConfirmKey: cfg.Engine.AdminConfirmKey,
	})

	return &env{Store: st, Registry: reg, Engine: engine}, nil
}

func (e *env) Close() {
	e.Registry.Close()
	e.Store.Close()
}
