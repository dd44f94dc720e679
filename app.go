package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"contract-compliance/internal/compliance"
	"contract-compliance/internal/config"
	"contract-compliance/internal/engine"
	"contract-compliance/internal/notifyconfig"
	"contract-compliance/internal/store"
)

// buildEngine wires the engine from configuration. The returned func releases
// the database pool, if one was opened.
func buildEngine(ctx context.Context, cfg *config.Config, logger *zap.Logger, now compliance.Clock) (*engine.Engine, func(), error) {
	limits, err := cfg.Limits()
	if err != nil {
		return nil, nil, err
	}

	opts := engine.Options{
		Limits: limits,
		Now:    now,
		Logger: logger,
	}
	registryOpts := []notifyconfig.Option{
		notifyconfig.WithTTL(cfg.NotifyConfigTTL),
		notifyconfig.WithLogger(logger),
	}
	if cfg.NotifyDays != nil {
		registryOpts = append(registryOpts, notifyconfig.WithStatic(cfg.NotifyDays))
	}

	cleanup := func() {}
	if cfg.DatabaseURL != "" {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		db, err := store.Connect(connectCtx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		opts.Contracts = db
		registryOpts = append(registryOpts, notifyconfig.WithLoader(db.NotificationDays))
		cleanup = db.Close
	} else {
		logger.Warn("DATABASE_URL not set, store-backed endpoints disabled")
	}

	opts.Notifications = notifyconfig.New(registryOpts...)

	logger.Info("engine configured",
		zap.String("jurisdiction", cfg.Jurisdiction),
		zap.Float64("ceiling_years", limits.CeilingYears),
		zap.Int("minimum_term_renewal", limits.MinimumTermRenewal),
	)
	return engine.New(opts), cleanup, nil
}
