// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command catalogctl is the operator CLI for the Yomira Reader catalogue.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/yomira-reader/internal/cli"
	"github.com/taibuivan/yomira-reader/internal/platform/constants"
)

func main() {
	// Logs go to stderr so stdout stays machine-readable.
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil)).
		With(slog.String(constants.FieldApp, "catalogctl"))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(cli.Options{Out: os.Stdout, Logger: log})
	if err := root.ExecuteContext(ctx); err != nil {
		log.Error("command_failed", slog.Any("error", err))
		stop()
		os.Exit(1)
	}
}
