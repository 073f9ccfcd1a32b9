package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/litteralabs/littera/internal/entity"
)

// LitteraDirName is the per-Work marker directory, the Go-side constant for
// original_source/db/workdb.py's literal ".littera" path segment.
const LitteraDirName = ".littera"

// ResolveWork locates the .littera marker directory for the Work rooted at
// dir, mirroring original_source's load_work_cfg: no upward directory walk,
// just a direct check at dir itself (§4.1 "a Work is exactly one directory
// with exactly one .littera marker").
func ResolveWork(dir string) (workDir, litteraDir string, err error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", "", fmt.Errorf("resolve work path: %w", err)
	}
	littera := filepath.Join(abs, LitteraDirName)
	if info, statErr := os.Stat(littera); statErr != nil || !info.IsDir() {
		return "", "", entity.InvalidInput("work", "not a Littera work (missing %s in %s)", LitteraDirName, abs)
	}
	if _, statErr := os.Stat(filepath.Join(littera, "config.yml")); statErr != nil {
		return "", "", entity.InvalidInput("work", "invalid Littera work (missing config.yml in %s)", littera)
	}
	return abs, littera, nil
}

// WorkPgDir returns the directory a Work's Provisioner.Ensure populates
// with the embedded engine's binaries, and NewWorkCluster's BinDir is
// derived from.
func WorkPgDir(litteraDir string) string {
	return filepath.Join(litteraDir, "pg")
}

// NewWorkCluster builds the Cluster value for an already-resolved Work's
// .littera directory, from its config.yml's postgres section. The caller
// is responsible for having run a Provisioner.Ensure(ctx, WorkPgDir(...))
// first so BinDir actually contains engine binaries (§4.1 "each Work owns a
// dedicated cluster, binaries shared from a global cache").
func NewWorkCluster(litteraDir, dataDir string, port int, dbName string, lease time.Duration) *Cluster {
	return &Cluster{
		BinDir:  filepath.Join(WorkPgDir(litteraDir), "bin"),
		DataDir: dataDir,
		Port:    port,
		DBName:  dbName,
		Lease:   lease,
	}
}
