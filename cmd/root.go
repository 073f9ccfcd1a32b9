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
	"github.com/spf13/viper"

	"github.com/litteralabs/littera/internal/adapter/repository"
	"github.com/litteralabs/littera/internal/command"
	"github.com/litteralabs/littera/internal/command/output"
	"github.com/litteralabs/littera/internal/infrastructure/config"
	infraDB "github.com/litteralabs/littera/internal/infrastructure/database"
	entdb "github.com/litteralabs/littera/internal/infrastructure/database/ent"
	"github.com/litteralabs/littera/internal/storage"
)

const (
	workDirKey = "work.dir"
	dryRunKey  = "command.dry_run"
	jsonKey    = "command.json"
	forceKey   = "command.force"
)

// rootCmd is the entry point every noun subcommand registers onto in its
// own init(), mirroring the teacher's one-var-per-file cobra wiring.
var rootCmd = &cobra.Command{
	Use:   "littera",
	Short: "A local-first, multilingual long-form writing tool",
	Long:  "littera operates on one Work directory at a time, identified by its .littera marker, and runs an embedded Postgres cluster dedicated to that Work.",
}

func init() {
	rootCmd.PersistentFlags().String("work", ".", "path to the Work directory (default: current directory)")
	rootCmd.PersistentFlags().Bool("dry-run", false, "report what the command would do without writing anything")
	rootCmd.PersistentFlags().Bool("json", false, "render output as JSON instead of human-readable text")
	rootCmd.PersistentFlags().Bool("force", false, "allow destructive or non-empty-parent operations")

	bindFlagToViper(workDirKey, rootCmd.PersistentFlags().Lookup("work"))
	bindFlagToViper(dryRunKey, rootCmd.PersistentFlags().Lookup("dry-run"))
	bindFlagToViper(jsonKey, rootCmd.PersistentFlags().Lookup("json"))
	bindFlagToViper(forceKey, rootCmd.PersistentFlags().Lookup("force"))
}

// Execute runs the root command; called once from main.go. The process
// exit code follows the typed error taxonomy (§7) via command.ExitCode,
// rather than cobra's default blanket exit(1).
func Execute() {
	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		os.Exit(command.ExitCode(err))
	}
}

// cmdOptions reads the global --dry-run/--json/--force flags into a
// command.Options value (§4.4).
func cmdOptions() command.Options {
	return command.Options{
		DryRun: viper.GetBool(dryRunKey),
		JSON:   viper.GetBool(jsonKey),
		Force:  viper.GetBool(forceKey),
	}
}

func printerMode() output.Mode {
	if viper.GetBool(jsonKey) {
		return output.JSON
	}
	return output.Human
}

// printerFor builds a Printer against cmd's configured stdout, for command
// paths (like `work init`) that construct an App before a cluster has a
// lease to release and so don't go through withApp.
func printerFor(cmd *cobra.Command) *output.Printer {
	return output.New(cmd.OutOrStdout(), printerMode())
}

// appSession bundles everything withApp acquires so RunE closures can use
// the App and release resources via defer session.release().
type appSession struct {
	app     *command.App
	cluster *storage.Cluster
	ctx     context.Context
	cancel  context.CancelFunc
	closeDB func()
}

func (s *appSession) release() {
	if s.closeDB != nil {
		s.closeDB()
	}
	if s.cluster != nil {
		s.cluster.Release()
	}
	s.cancel()
}

// withApp resolves the Work named by --work, acquires its cluster, opens
// the ent client, and constructs the command.App every noun's RunE needs.
// It is the Go analog of original_source's open_work_db context manager,
// generalized from a Python `with` block to an explicit acquire/defer pair
// since Go has no equivalent context-manager syntax to adapt directly.
func withApp(cmd *cobra.Command) (*appSession, error) {
	workDir := viper.GetString(workDirKey)
	_, litteraDir, err := storage.ResolveWork(workDir)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(litteraDir)
	if err != nil {
		return nil, err
	}

	dataDir := cfg.Postgres.DataDir
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(litteraDir, dataDir)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), config.CommandTimeout())

	provisioner, err := storage.NewProvisioner()
	if err != nil {
		cancel()
		return nil, err
	}
	if err := provisioner.Ensure(ctx, storage.WorkPgDir(litteraDir)); err != nil {
		cancel()
		return nil, fmt.Errorf("provision embedded postgres: %w", err)
	}

	cluster := storage.NewWorkCluster(litteraDir, dataDir, cfg.Postgres.Port, cfg.Postgres.DBName, config.LeaseSeconds())
	if err := cluster.Start(ctx); err != nil {
		cancel()
		return nil, err
	}

	client, closeDB, err := infraDB.NewEntClient(cluster.DSN(), cfg.Log.Level == "debug")
	if err != nil {
		cluster.Release()
		cancel()
		return nil, err
	}
	if err := storage.Migrate(ctx, client); err != nil {
		closeDB()
		cluster.Release()
		cancel()
		return nil, err
	}

	app := buildApp(client, output.New(cmd.OutOrStdout(), printerMode()))
	return &appSession{app: app, cluster: cluster, ctx: ctx, cancel: cancel, closeDB: closeDB}, nil
}

// buildApp wires every adapter/repository constructor into one command.App,
// the Go equivalent of the teacher's internal/app/container.go dependency
// graph (generalized here to the ten Littera nouns instead of vocnet's).
func buildApp(client *entdb.Client, out *output.Printer) *command.App {
	return &command.App{
		Work:           repository.NewWorkRepository(client),
		Doc:            repository.NewDocRepository(client),
		Section:        repository.NewSectionRepository(client),
		Block:          repository.NewBlockRepository(client),
		SemanticEntity: repository.NewSemanticEntityRepository(client),
		EntityLabel:    repository.NewEntityLabelRepository(client),
		EntityWorkMeta: repository.NewEntityWorkMetadataRepository(client),
		Mention:        repository.NewMentionRepository(client),
		Alignment:      repository.NewBlockAlignmentRepository(client),
		Review:         repository.NewReviewRepository(client),
		Out:            out,
	}
}

// runWithApp is the shared RunE wrapper every noun subcommand's leaf uses:
// acquire a session, run fn, always release, and return fn's error
// unchanged; Execute maps a returned *entity.Error to its exit code (§7).
func runWithApp(cmd *cobra.Command, fn func(ctx context.Context, app *command.App, s *appSession) error) error {
	s, err := withApp(cmd)
	if err != nil {
		return err
	}
	defer s.release()
	if err := fn(s.ctx, s.app, s); err != nil {
		return err
	}
	return nil
}
