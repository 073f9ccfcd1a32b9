package backup

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/litteralabs/littera/internal/entity"
	entdb "github.com/litteralabs/littera/internal/infrastructure/database/ent"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/block"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/enttest"
	"github.com/litteralabs/littera/internal/infrastructure/database/ent/work"

	"entgo.io/ent/dialect"
)

// testDSN returns a Postgres connection string to run these tests against,
// skipping when none is configured. Unlike the embedded per-Work cluster
// (internal/storage.Cluster), CI provides a throwaway database out of band;
// there is no sqlite or in-memory fallback once the postgres-only Data
// Access layer dropped the sqlite3 driver.
func testDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("LITTERA_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("LITTERA_TEST_POSTGRES_DSN not set, skipping postgres-backed backup test")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Skipf("postgres driver unavailable: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		t.Skipf("postgres test database unreachable: %v", err)
	}
	return dsn
}

func TestServiceExportImportRoundTrip(t *testing.T) {
	srcDSN := testDSN(t)

	ctx := context.Background()

	srcClient := enttest.Open(t, dialect.Postgres, srcDSN)
	t.Cleanup(func() { srcClient.Close() })

	srcWorks, srcBlocks := seedData(t, ctx, srcClient)

	exporter, err := NewService("postgres", srcDSN)
	if err != nil {
		t.Fatalf("new exporter: %v", err)
	}

	var buf bytes.Buffer
	if err := exporter.Export(ctx, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	dstDSN := testDSN(t)
	dstClient := enttest.Open(t, dialect.Postgres, dstDSN)
	t.Cleanup(func() { dstClient.Close() })

	importer, err := NewService("postgres", dstDSN)
	if err != nil {
		t.Fatalf("new importer: %v", err)
	}
	if err := importer.Import(ctx, bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	snapSrcWorks := snapshotWorks(t, ctx, srcClient)
	if !reflect.DeepEqual(snapSrcWorks, srcWorks) {
		t.Fatalf("source works snapshot mutated: want %#v got %#v", srcWorks, snapSrcWorks)
	}

	snapDstWorks := snapshotWorks(t, ctx, dstClient)
	if !reflect.DeepEqual(srcWorks, snapDstWorks) {
		t.Fatalf("works mismatch after import:\nwant %#v\ngot  %#v", srcWorks, snapDstWorks)
	}

	snapSrcBlocks := snapshotBlocks(t, ctx, srcClient)
	if !reflect.DeepEqual(snapSrcBlocks, srcBlocks) {
		t.Fatalf("source blocks snapshot mutated: want %#v got %#v", srcBlocks, snapSrcBlocks)
	}

	snapDstBlocks := snapshotBlocks(t, ctx, dstClient)
	if !reflect.DeepEqual(srcBlocks, snapDstBlocks) {
		t.Fatalf("blocks mismatch after import:\nwant %#v\ngot  %#v", srcBlocks, snapDstBlocks)
	}
}

func TestServiceExportTablesFilter(t *testing.T) {
	srcDSN := testDSN(t)

	ctx := context.Background()

	srcClient := enttest.Open(t, dialect.Postgres, srcDSN)
	t.Cleanup(func() { srcClient.Close() })

	srcWorks, _ := seedData(t, ctx, srcClient)

	exporter, err := NewService("postgres", srcDSN)
	if err != nil {
		t.Fatalf("new exporter: %v", err)
	}

	var buf bytes.Buffer
	if err := exporter.Export(ctx, &buf, WithTables([]string{"works"})); err != nil {
		t.Fatalf("filtered export failed: %v", err)
	}

	dstDSN := testDSN(t)
	dstClient := enttest.Open(t, dialect.Postgres, dstDSN)
	t.Cleanup(func() { dstClient.Close() })

	importer, err := NewService("postgres", dstDSN)
	if err != nil {
		t.Fatalf("new importer: %v", err)
	}
	if err := importer.Import(ctx, bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("filtered import failed: %v", err)
	}

	snapDstWorks := snapshotWorks(t, ctx, dstClient)
	if !reflect.DeepEqual(srcWorks, snapDstWorks) {
		t.Fatalf("works mismatch after filtered import")
	}

	dstBlocks := snapshotBlocks(t, ctx, dstClient)
	if len(dstBlocks) != 0 {
		t.Fatalf("expected no blocks, got %#v", dstBlocks)
	}
}

// seedData populates one Work, one Document, one Section and two Blocks so
// the export/import engine has both a root table and a downstream table
// whose foreign keys must survive the round trip.
func seedData(t *testing.T, ctx context.Context, client *entdb.Client) ([]workSnapshot, []blockSnapshot) {
	t.Helper()
	createdAt := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)

	w, err := client.Work.Create().
		SetID(entity.NewID()).
		SetTitle("Seafarer's Log").
		SetDescription("A bilingual travel journal").
		SetLanguage("en").
		SetMetadata(entity.Document{"genre": "memoir"}).
		SetCreatedAt(createdAt).
		Save(ctx)
	if err != nil {
		t.Fatalf("create work: %v", err)
	}

	doc, err := client.Document.Create().
		SetID(entity.NewID()).
		SetWorkID(w.ID).
		SetTitle("Chapter One").
		SetOrderIndex(1).
		SetCreatedAt(createdAt.Add(time.Minute)).
		Save(ctx)
	if err != nil {
		t.Fatalf("create document: %v", err)
	}

	sec, err := client.Section.Create().
		SetID(entity.NewID()).
		SetDocumentID(doc.ID).
		SetTitle("Departure").
		SetOrderIndex(1).
		SetCreatedAt(createdAt.Add(2 * time.Minute)).
		Save(ctx)
	if err != nil {
		t.Fatalf("create section: %v", err)
	}

	_, err = client.Block.Create().
		SetID(entity.NewID()).
		SetSectionID(sec.ID).
		SetKind("prose").
		SetLanguage("en").
		SetSourceText("We left port at dawn.").
		SetOrderIndex(1).
		SetCreatedAt(createdAt.Add(3 * time.Minute)).
		Save(ctx)
	if err != nil {
		t.Fatalf("create block1: %v", err)
	}

	_, err = client.Block.Create().
		SetID(entity.NewID()).
		SetSectionID(sec.ID).
		SetKind("prose").
		SetLanguage("pl").
		SetSourceText("Wyplyneliśmy o świcie.").
		SetOrderIndex(2).
		SetCreatedAt(createdAt.Add(4 * time.Minute)).
		Save(ctx)
	if err != nil {
		t.Fatalf("create block2: %v", err)
	}

	return snapshotWorks(t, ctx, client), snapshotBlocks(t, ctx, client)
}

type workSnapshot struct {
	ID          entity.ID
	Title       *string
	Description *string
	Language    string
	Metadata    entity.Document
	CreatedAt   time.Time
}

type blockSnapshot struct {
	ID         entity.ID
	SectionID  entity.ID
	Kind       string
	Language   string
	SourceText string
	OrderIndex int64
	CreatedAt  time.Time
}

func snapshotWorks(t *testing.T, ctx context.Context, client *entdb.Client) []workSnapshot {
	t.Helper()
	rows, err := client.Work.Query().Order(work.ByID()).All(ctx)
	if err != nil {
		t.Fatalf("list works: %v", err)
	}
	result := make([]workSnapshot, 0, len(rows))
	for _, row := range rows {
		result = append(result, workSnapshot{
			ID:          row.ID,
			Title:       copyStringPointer(row.Title),
			Description: copyStringPointer(row.Description),
			Language:    row.Language,
			Metadata:    row.Metadata,
			CreatedAt:   row.CreatedAt.UTC(),
		})
	}
	return result
}

func snapshotBlocks(t *testing.T, ctx context.Context, client *entdb.Client) []blockSnapshot {
	t.Helper()
	rows, err := client.Block.Query().Order(block.ByID()).All(ctx)
	if err != nil {
		t.Fatalf("list blocks: %v", err)
	}
	result := make([]blockSnapshot, 0, len(rows))
	for _, row := range rows {
		result = append(result, blockSnapshot{
			ID:         row.ID,
			SectionID:  row.SectionID,
			Kind:       row.Kind,
			Language:   row.Language,
			SourceText: row.SourceText,
			OrderIndex: row.OrderIndex,
			CreatedAt:  row.CreatedAt.UTC(),
		})
	}
	return result
}

func copyStringPointer(src *string) *string {
	if src == nil {
		return nil
	}
	s := *src
	return &s
}
