package command

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/litteralabs/littera/internal/storage"
	"github.com/litteralabs/littera/internal/usecase/backup"
)

// MaintenanceResetWAL implements "maintenance WAL reset" (§4.4): stop the
// cluster, reset its WAL with pg_resetwal (discarding any unreplayable WAL
// tail), and start it again. Destructive enough to require --force, since any
// transaction that never reached a checkpoint is lost.
func (a *App) MaintenanceResetWAL(ctx context.Context, opts Options, cluster *storage.Cluster) error {
	if !opts.Force {
		return fmt.Errorf("reset-wal requires --force: it may discard uncheckpointed transactions")
	}
	if opts.DryRun {
		return a.Out.Message("would stop and restart the cluster to reset its WAL")
	}
	if err := storage.ResetWAL(ctx, cluster); err != nil {
		return err
	}
	return a.Out.Message("cluster WAL reset complete")
}

// MaintenanceReinit implements "maintenance cluster reinit" (§4.4): wipe the
// data directory and run initdb from scratch. The most destructive
// maintenance action; --force is mandatory and dry-run never touches disk.
func (a *App) MaintenanceReinit(ctx context.Context, opts Options, binDir, dataDir string) error {
	if !opts.Force {
		return fmt.Errorf("reinit requires --force: it deletes every Document in this Work's cluster")
	}
	if opts.DryRun {
		return a.Out.Message(fmt.Sprintf("would delete %s and reinitialize the cluster", dataDir))
	}
	if err := storage.Reinitialize(ctx, binDir, dataDir); err != nil {
		return err
	}
	return a.Out.Message("cluster reinitialized")
}

// BackupOptions configures MaintenanceBackup and MaintenanceRestore. Driver
// and DSN address the cluster directly (bypassing ent), the same way
// internal/usecase/backup.Service is driven from the teacher's cmd/export.go
// and cmd/import.go.
type BackupOptions struct {
	Driver    string
	DSN       string
	Path      string
	Gzip      bool
	Tables    []string
	BatchSize int
}

// MaintenanceBackup implements "maintenance backup" (§4.4): dump every ent
// table in the cluster to an NDJSON file via internal/usecase/backup.Service,
// independent of the single-Work ExportTree mechanism used for interchange
// between installations.
func (a *App) MaintenanceBackup(ctx context.Context, opts Options, b BackupOptions) error {
	if opts.DryRun {
		return a.Out.Message(fmt.Sprintf("would back up %s to %s", b.DSN, b.Path))
	}
	svc, err := backup.NewService(b.Driver, b.DSN, backup.WithBatchSize(b.BatchSize))
	if err != nil {
		return err
	}

	w, closeW, err := openBackupWriter(b.Path, b.Gzip)
	if err != nil {
		return err
	}
	defer closeW()

	var svcOpts []backup.ExportOption
	if len(b.Tables) > 0 {
		svcOpts = append(svcOpts, backup.WithTables(b.Tables))
	}
	if err := svc.Export(ctx, w, svcOpts...); err != nil {
		return err
	}
	return a.Out.Message(fmt.Sprintf("backup written to %s", b.Path))
}

// MaintenanceRestore implements "maintenance restore" (§4.4): replay an
// NDJSON backup produced by MaintenanceBackup back into the cluster,
// upserting row-by-row per table. Requires --force since it overwrites
// existing rows sharing a primary key.
func (a *App) MaintenanceRestore(ctx context.Context, opts Options, b BackupOptions) error {
	if !opts.Force {
		return fmt.Errorf("restore requires --force: it overwrites rows already present in the cluster")
	}
	if opts.DryRun {
		return a.Out.Message(fmt.Sprintf("would restore %s into %s", b.Path, b.DSN))
	}
	svc, err := backup.NewService(b.Driver, b.DSN, backup.WithBatchSize(b.BatchSize))
	if err != nil {
		return err
	}

	r, closeR, err := openBackupReader(b.Path, b.Gzip)
	if err != nil {
		return err
	}
	defer closeR()

	var svcOpts []backup.ImportOption
	if len(b.Tables) > 0 {
		svcOpts = append(svcOpts, backup.WithImportTables(b.Tables))
	}
	if err := svc.Import(ctx, r, svcOpts...); err != nil {
		return err
	}
	return a.Out.Message(fmt.Sprintf("restored %s into cluster", b.Path))
}

func openBackupWriter(path string, gzipEnabled bool) (io.Writer, func() error, error) {
	if path == "-" {
		if gzipEnabled {
			gz := gzip.NewWriter(os.Stdout)
			return gz, gz.Close, nil
		}
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create backup file %s: %w", path, err)
	}
	if !gzipEnabled {
		return f, f.Close, nil
	}
	gz := gzip.NewWriter(f)
	return gz, func() error {
		if err := gz.Close(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}, nil
}

func openBackupReader(path string, gzipEnabled bool) (io.Reader, func() error, error) {
	if path == "-" {
		if gzipEnabled {
			gz, err := gzip.NewReader(os.Stdin)
			if err != nil {
				return nil, nil, err
			}
			return gz, gz.Close, nil
		}
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open backup file %s: %w", path, err)
	}
	if !gzipEnabled {
		return f, f.Close, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return gz, func() error {
		if err := gz.Close(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}, nil
}
