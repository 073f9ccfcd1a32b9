/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litteralabs/littera/internal/command"
)

const backupDriver = "postgres"

var maintenanceCmd = &cobra.Command{
	Use:   "maintenance",
	Short: "Operate on a Work's embedded Postgres cluster directly",
}

var maintenanceResetWALCmd = &cobra.Command{
	Use:   "reset-wal",
	Short: "Stop the cluster, reset its WAL with pg_resetwal, and restart it (--force required)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			return app.MaintenanceResetWAL(ctx, cmdOptions(), s.cluster)
		})
	},
}

var maintenanceReinitCmd = &cobra.Command{
	Use:   "reinit",
	Short: "Wipe the data directory and run initdb from scratch (--force required, deletes every Document)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			return app.MaintenanceReinit(ctx, cmdOptions(), s.cluster.BinDir, s.cluster.DataDir)
		})
	},
}

var maintenanceBackupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Dump every table in the cluster's Postgres database to an NDJSON file via internal/usecase/backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := backupOptionsFromFlags(cmd)
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			opts.DSN = s.cluster.DSN()
			return app.MaintenanceBackup(ctx, cmdOptions(), opts)
		})
	},
}

var maintenanceRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replay an NDJSON backup produced by 'maintenance backup' into the cluster (--force required)",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := backupOptionsFromFlags(cmd)
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			opts.DSN = s.cluster.DSN()
			return app.MaintenanceRestore(ctx, cmdOptions(), opts)
		})
	},
}

func backupOptionsFromFlags(cmd *cobra.Command) (command.BackupOptions, error) {
	path, _ := cmd.Flags().GetString("path")
	gzipEnabled, _ := cmd.Flags().GetBool("gzip")
	tables, _ := cmd.Flags().GetStringSlice("table")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	if path == "" {
		return command.BackupOptions{}, fmt.Errorf("--path is required")
	}
	return command.BackupOptions{
		Driver:    backupDriver,
		Path:      path,
		Gzip:      gzipEnabled,
		Tables:    tables,
		BatchSize: batchSize,
	}, nil
}

func init() {
	rootCmd.AddCommand(maintenanceCmd)
	maintenanceCmd.AddCommand(maintenanceResetWALCmd, maintenanceReinitCmd, maintenanceBackupCmd, maintenanceRestoreCmd)

	for _, c := range []*cobra.Command{maintenanceBackupCmd, maintenanceRestoreCmd} {
		c.Flags().String("path", "", "NDJSON file path, or \"-\" for stdout/stdin (required)")
		c.Flags().Bool("gzip", false, "gzip-compress the NDJSON stream")
		c.Flags().StringSlice("table", nil, "restrict to this table, repeatable (default: every ent table)")
		c.Flags().Int("batch-size", 512, "rows per insert batch")
	}
}
