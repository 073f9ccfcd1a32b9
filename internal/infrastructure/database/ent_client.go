package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entdb "github.com/litteralabs/littera/internal/infrastructure/database/ent"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	_ "github.com/lib/pq"
)

// NewEntClient opens an ent.Client against one Work's embedded cluster.
// Unlike the teacher (one shared server-wide database), Littera calls this
// once per command invocation against the DSN storage.Cluster.DSN()
// produces after Start succeeds — there is exactly one database per Work,
// never a shared instance, and Postgres is the only dialect (§4.1; the
// teacher's optional sqlite3 dialect is dropped, see DESIGN.md).
func NewEntClient(dsn string, debug bool) (*entdb.Client, func(), error) {
	rawDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open ent sql db: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rawDB.PingContext(ctx); err != nil {
		rawDB.Close()
		return nil, nil, fmt.Errorf("ping ent sql db: %w", err)
	}

	driver := entsql.OpenDB(dialect.Postgres, rawDB)
	client := entdb.NewClient(entdb.Driver(driver))
	if debug {
		client = client.Debug()
	}

	return client, func() { _ = client.Close() }, nil
}
