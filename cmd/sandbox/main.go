// Command sandbox serves an in-memory stand-in for the print backend.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/JaimeStill/printmg/internal/config"
)

func main() {
	app := &cli.App{
		Name:  "sandbox",
		Usage: "run a local stand-in for the Print.mg backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "configuration file",
				EnvVars: []string{"PRINTMG_CONFIG"},
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "listen port, overriding the configuration",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "sandbox:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	if c.IsSet("port") {
		cfg.Sandbox.Port = c.Int("port")
	}
	if err := cfg.Finalize(); err != nil {
		return fmt.Errorf("config finalize failed: %w", err)
	}

	srv, err := NewServer(cfg)
	if err != nil {
		return fmt.Errorf("server init failed: %w", err)
	}
	if err := srv.Start(); err != nil {
		return fmt.Errorf("server start failed: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	if err := srv.Shutdown(cfg.Sandbox.ShutdownTimeoutDuration()); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	srv.runtime.Logger.Info("sandbox stopped gracefully")
	return nil
}
