package db

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"Music-Catalog-Go/pkg/catalog"
)

// TestSaveAndLoadObjects verifies that objects round trip and that unknown
// ids are absent from the result.
func TestSaveAndLoadObjects(t *testing.T) {
	d, err := New(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	ctx := context.Background()

	objs := []catalog.Object{
		{"id": "t1", "name": "One", "type": "track", "preview_url": nil},
		{"id": "t2", "name": "Two", "type": "track"},
		{"name": "no id"},
	}
	if err := d.SaveObjects(ctx, catalog.KindTrack, objs); err != nil {
		t.Fatal(err)
	}
	got, err := d.LoadObjects(ctx, catalog.KindTrack, []string{"t1", "t2", "t3"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got["t1"]["name"] != "One" {
		t.Fatalf("unexpected objects: %+v", got)
	}
	if v, ok := got["t1"]["preview_url"]; !ok || v != nil {
		t.Fatalf("null field not kept: %+v", got["t1"])
	}

	other, err := d.LoadObjects(ctx, catalog.KindAlbum, []string{"t1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 0 {
		t.Fatalf("kinds must not share ids: %+v", other)
	}
}

func TestSaveObjectsReplaces(t *testing.T) {
	d, err := New(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	ctx := context.Background()

	if err := d.SaveObjects(ctx, catalog.KindArtist, []catalog.Object{{"id": "a", "name": "Old"}}); err != nil {
		t.Fatal(err)
	}
	if err := d.SaveObjects(ctx, catalog.KindArtist, []catalog.Object{{"id": "a", "name": "New"}}); err != nil {
		t.Fatal(err)
	}
	got, err := d.LoadObjects(ctx, catalog.KindArtist, []string{"a"})
	if err != nil {
		t.Fatal(err)
	}
	if got["a"]["name"] != "New" {
		t.Fatalf("expected replacement, got %+v", got["a"])
	}

	if err := d.DeleteObjects(ctx, catalog.KindArtist, []string{"a"}); err != nil {
		t.Fatal(err)
	}
	got, _ = d.LoadObjects(ctx, catalog.KindArtist, []string{"a"})
	if len(got) != 0 {
		t.Fatalf("expected deletion, got %+v", got)
	}
}

// TestSnapshots checks that the latest snapshot id wins and that a missing
// playlist reports sql.ErrNoRows.
func TestSnapshots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		d.Close()
		os.Remove(path)
	}()
	ctx := context.Background()

	if _, err := d.GetSnapshot(ctx, "p"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
	for _, s := range []string{"s1", "s2"} {
		if err := d.SaveSnapshot(ctx, "p", s); err != nil {
			t.Fatal(err)
		}
	}
	got, err := d.GetSnapshot(ctx, "p")
	if err != nil {
		t.Fatal(err)
	}
	if got != "s2" {
		t.Fatalf("expected s2 got %s", got)
	}
}

// TestMemoryDatabaseSharesSchema verifies that an in-memory database keeps a
// single connection, so the schema created by New stays visible.
func TestMemoryDatabaseSharesSchema(t *testing.T) {
	d, err := New(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	if n := d.Stats().MaxOpenConnections; n != 1 {
		t.Fatalf("max open connections = %d", n)
	}
	var count int
	if err := d.QueryRow(`SELECT count(*) FROM objects`).Scan(&count); err != nil {
		t.Fatalf("schema missing: %v", err)
	}
}
