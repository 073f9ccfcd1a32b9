package storage

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	entdb "github.com/litteralabs/littera/internal/infrastructure/database/ent"
)

// Migrate runs the embedded schema against an acquired cluster connection,
// idempotently (§4.1 "already-applied migrations are skipped"). ent's
// client.Schema.Create performs this check internally by diffing the live
// schema against the declared one; it is safe to call on every connection
// acquisition, matching the teacher's runMigrations call in cmd/db-init.go.
func Migrate(ctx context.Context, client *entdb.Client) error {
	if err := client.Schema.Create(ctx); err != nil {
		return errUnavailable(err, "apply schema migrations")
	}
	return nil
}

// ResetWAL is the lossy-but-committed-preserving remediation named in §4.1:
// it stops the cluster, runs pg_resetwal to discard the WAL past the last
// checkpoint (including an unreplayable tail), and starts the cluster again.
// Only invoked through `maintenance reset-wal`, never automatically.
func ResetWAL(ctx context.Context, c *Cluster) error {
	if err := c.Stop(); err != nil {
		return errUnavailable(err, "stop cluster before WAL reset")
	}
	resetwal := fmt.Sprintf("%s/pg_resetwal", c.BinDir)
	cmd := exec.CommandContext(ctx, resetwal, "-f", "-D", c.DataDir)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errUnavailable(fmt.Errorf("%w: %s", err, out), "reset cluster WAL")
	}
	return c.Start(ctx)
}

// Reinitialize is the destructive remediation named in §4.1: it deletes the
// cluster's data directory entirely and re-runs initdb, losing all Work
// data. Exposed only via `maintenance reinit`, gated by the Command
// Surface's explicit confirmation discipline (§4.4), never here.
func Reinitialize(ctx context.Context, binDir, dataDir string) error {
	if err := os.RemoveAll(dataDir); err != nil {
		return errUnavailable(err, "remove data directory before reinit")
	}
	initdb := fmt.Sprintf("%s/initdb", binDir)
	cmd := exec.CommandContext(ctx, initdb, "-D", dataDir, "-U", "postgres")
	if out, err := cmd.CombinedOutput(); err != nil {
		return errUnavailable(fmt.Errorf("%w: %s", err, out), "reinitialize cluster")
	}
	return nil
}
