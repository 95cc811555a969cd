package main

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/printmg/internal/config"
	"github.com/JaimeStill/printmg/internal/lifecycle"
	"github.com/JaimeStill/printmg/internal/storage"
	"github.com/JaimeStill/printmg/pkg/logging"
)

// Runtime holds the infrastructure shared by the sandbox subsystems.
type Runtime struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Storage   storage.System
}

func NewRuntime(cfg *config.Config) (*Runtime, error) {
	logger := logging.New(&cfg.Logging)

	store, err := storage.NewFilesystem(cfg.Sandbox.StoragePath, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &Runtime{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Storage:   store,
	}, nil
}

func (r *Runtime) Start() error {
	if err := r.Storage.Start(r.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
