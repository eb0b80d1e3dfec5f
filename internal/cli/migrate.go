// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/taibuivan/yomira-reader/internal/platform/migration"
)

var errNoDatabase = errors.New("--database-url (or DATABASE_URL) is required")

func newMigrateCommand(g *globals) *cobra.Command {
	var path string
	var down bool

	command := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the catalogue schema migrations (or revert them with --down)",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			if g.databaseURL == "" {
				return errNoDatabase
			}
			if down {
				return migration.RunDown(g.databaseURL, path, g.options.Logger)
			}
			return migration.RunUp(g.databaseURL, path, g.options.Logger)
		},
	}

	command.Flags().StringVar(&path, "path", envOr("MIGRATION_PATH", "./data/migrations"), "Migrations directory")
	command.Flags().BoolVar(&down, "down", false, "Revert every applied migration")
	return command
}
