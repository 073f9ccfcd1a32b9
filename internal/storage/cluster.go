package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/lib/pq"
)

// Cluster is the scoped acquisition named in SPEC_FULL.md §9 "Cluster
// lifecycle as a scoped resource": each command Starts, uses, and
// Releases it under a lease, guaranteeing the embedded engine stops on
// every exit path including panics, via the deferred Release the caller
// registers immediately after Start succeeds.
//
// Grounded on original_source/db/{bootstrap,workdb,pg_lease}.py's pg_ctl
// invocation and in-process lease, reimplemented with a Go *exec.Cmd and a
// time.AfterFunc idle timer instead of a detached watcher subprocess.
type Cluster struct {
	BinDir  string
	DataDir string
	Port    int
	DBName  string
	Lease   time.Duration

	mu      sync.Mutex
	cmd     *exec.Cmd
	started bool
	idle    *time.Timer
}

// readinessTimeout bounds how long Start waits for the first successful
// connection before giving up (§5 "dedicated readiness timeout").
const readinessTimeout = 10 * time.Second

// Start brings the cluster up if it is not already running, blocking until
// a liveness probe succeeds (§4.1 "the liveness probe must succeed before
// the first query"). Concurrent Start calls within one process serialize
// on mu so only one pg_ctl invocation is ever in flight.
func (c *Cluster) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.idle != nil {
		c.idle.Stop()
		c.idle = nil
	}
	if c.started {
		return nil
	}

	if pid, running, err := isRunning(c.DataDir); err != nil {
		return errUnavailable(err, "inspect cluster lock at %s", c.DataDir)
	} else if running {
		return errUnavailable(nil, "cluster already running under pid %d with a live lock", pid)
	}

	logFile := filepath.Join(c.DataDir, "server.log")
	pgCtl := filepath.Join(c.BinDir, "pg_ctl")
	cmd := exec.CommandContext(context.Background(), pgCtl,
		"start",
		"-D", c.DataDir,
		"-l", logFile,
		"-o", fmt.Sprintf("-p %d -h 127.0.0.1", c.Port),
		"-w",
	)
	if err := cmd.Start(); err != nil {
		return errUnavailable(err, "start embedded cluster")
	}
	c.cmd = cmd

	deadline := time.Now().Add(readinessTimeout)
	dsn := c.dsn()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		db, err := sql.Open("postgres", dsn)
		if err == nil {
			pingErr := db.PingContext(ctx)
			db.Close()
			if pingErr == nil {
				break
			}
		}
		if time.Now().After(deadline) {
			return errUnavailable(err, "embedded cluster did not become ready within %s", readinessTimeout)
		}
		time.Sleep(100 * time.Millisecond)
	}

	c.started = true
	return nil
}

// Release ends the caller's hold on the cluster. When Lease is zero
// (tests, §6 "LITTERA_TEST_MODE"), the cluster stops immediately. Otherwise
// an idle timer stops it after Lease has elapsed with no further Start,
// so back-to-back commands in the same invocation window reuse one process.
func (c *Cluster) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return
	}
	if c.Lease <= 0 {
		c.stopLocked()
		return
	}
	if c.idle != nil {
		c.idle.Stop()
	}
	c.idle = time.AfterFunc(c.Lease, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.stopLocked()
	})
}

// Stop forces the cluster down regardless of lease state. Used by
// maintenance commands (WAL reset, reinit) which require exclusive access
// to the data directory.
func (c *Cluster) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopLocked()
}

func (c *Cluster) stopLocked() error {
	if !c.started {
		return nil
	}
	pgCtl := filepath.Join(c.BinDir, "pg_ctl")
	cmd := exec.Command(pgCtl, "stop", "-D", c.DataDir, "-m", "fast", "-w")
	err := cmd.Run()
	c.started = false
	c.cmd = nil
	if c.idle != nil {
		c.idle.Stop()
		c.idle = nil
	}
	return err
}

func (c *Cluster) dsn() string {
	return fmt.Sprintf("postgres://postgres@127.0.0.1:%d/%s?sslmode=disable", c.Port, c.DBName)
}

// DSN exposes the cluster's connection string to Data Access, once Start
// has returned successfully.
func (c *Cluster) DSN() string { return c.dsn() }

// Running reports whether this process currently holds the cluster
// started, for the "littera status" probe (§10).
func (c *Cluster) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.started
}

// LeaseRemaining reports how long the idle timer has left before it stops
// the cluster, or zero if the cluster isn't running or has no idle timer
// pending (a fresh Start within the same invocation, or Lease <= 0).
func (c *Cluster) LeaseRemaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started || c.idle == nil {
		return 0
	}
	return c.Lease
}
