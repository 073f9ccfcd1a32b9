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
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/litteralabs/littera/internal/command"
	"github.com/litteralabs/littera/internal/entity"
	"github.com/litteralabs/littera/internal/infrastructure/database"
	"github.com/litteralabs/littera/internal/repository"
	"github.com/litteralabs/littera/internal/storage"
)

var workCmd = &cobra.Command{
	Use:   "work",
	Short: "Manage Works, the bounded artifact at the root of the hierarchy",
}

var workInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a new Work and its dedicated embedded Postgres cluster",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) == 1 {
			path = args[0]
		}
		title, _ := cmd.Flags().GetString("title")
		port, _ := cmd.Flags().GetInt("db-port")
		return initWork(cmd, path, title, port)
	},
}

var workGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a Work",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.WorkGet(ctx, id)
			return err
		})
	},
}

var workListCmd = &cobra.Command{
	Use:   "list",
	Short: "List Works, optionally narrowed by --filter and ordered by --order-by",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			_, err := app.WorkList(ctx, &repository.ListQuery{
				Pagination:  repository.Pagination{PageNo: 1, PageSize: 100},
				FilterOrder: filterOrderFromFlags(cmd),
			})
			return err
		})
	},
}

var workUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Rename or re-describe a Work",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			w, err := app.WorkGet(ctx, id)
			if err != nil {
				return err
			}
			if title != "" {
				w.Title = title
			}
			if description != "" {
				w.Description = description
			}
			_, err = app.WorkUpdate(ctx, w)
			return err
		})
	},
}

var workDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a Work and, with --force, everything nested under it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, app *command.App, s *appSession) error {
			return app.WorkDelete(ctx, cmdOptions(), id)
		})
	},
}

func init() {
	rootCmd.AddCommand(workCmd)
	workCmd.AddCommand(workInitCmd, workGetCmd, workListCmd, workUpdateCmd, workDeleteCmd)

	workInitCmd.Flags().String("title", "", "Work title (default: directory name)")
	workInitCmd.Flags().Int("db-port", 0, "Postgres port (0 = auto-allocate)")

	workUpdateCmd.Flags().String("title", "", "new title")
	workUpdateCmd.Flags().String("description", "", "new description")

	addFilterOrderFlags(workListCmd, "")
}

// workInitConfig is the on-disk shape of .littera/config.yml, kept separate
// from infrastructure/config.Config (which is read via viper/mapstructure)
// since writing wants plain yaml struct tags instead.
type workInitConfig struct {
	Work struct {
		ID string `yaml:"id"`
	} `yaml:"work"`
	Postgres struct {
		DataDir string `yaml:"data_dir"`
		Port    int    `yaml:"port"`
		DBName  string `yaml:"db_name"`
	} `yaml:"postgres"`
}

// initWork is the Go counterpart of original_source/cli/init.py's `init`
// command: create .littera, allocate a port, provision the embedded engine,
// apply schema, and insert the Work row — then release the cluster rather
// than leaving it running, matching the original's explicit stop_postgres
// call at the end of init.
func initWork(cmd *cobra.Command, path, title string, explicitPort int) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return err
	}
	litteraDir := filepath.Join(abs, storage.LitteraDirName)
	if err := os.MkdirAll(litteraDir, 0o755); err != nil {
		return err
	}

	port := explicitPort
	if port == 0 {
		port, err = storage.AllocatePort()
		if err != nil {
			return err
		}
	}

	workID := entity.NewID()
	var cfg workInitConfig
	cfg.Work.ID = workID.String()
	cfg.Postgres.DataDir = "pgdata"
	cfg.Postgres.Port = port
	cfg.Postgres.DBName = "littera"

	raw, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(litteraDir, "config.yml"), raw, 0o644); err != nil {
		return fmt.Errorf("write config.yml: %w", err)
	}

	ctx := cmd.Context()
	provisioner, err := storage.NewProvisioner()
	if err != nil {
		return err
	}
	if err := provisioner.Ensure(ctx, storage.WorkPgDir(litteraDir)); err != nil {
		return fmt.Errorf("provision embedded postgres: %w", err)
	}

	dataDir := filepath.Join(litteraDir, cfg.Postgres.DataDir)
	cluster := storage.NewWorkCluster(litteraDir, dataDir, port, cfg.Postgres.DBName, 0)
	if err := cluster.Start(ctx); err != nil {
		return err
	}
	defer cluster.Release()

	client, closeDB, err := database.NewEntClient(cluster.DSN(), false)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := storage.Migrate(ctx, client); err != nil {
		return err
	}

	if title == "" {
		title = filepath.Base(abs)
	}

	app := buildApp(client, printerFor(cmd))
	_, err = app.WorkCreate(ctx, command.Options{}, &entity.Work{ID: workID, Title: title})
	if err != nil {
		return err
	}
	return app.Out.Message(fmt.Sprintf("initialized Littera work at %s", abs))
}
