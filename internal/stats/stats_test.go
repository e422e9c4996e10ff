package stats_test

import (
	"errors"
	"testing"
	"time"

	"github.com/voss/kohl/internal/apperr"
	"github.com/voss/kohl/internal/stats"
	"github.com/voss/kohl/internal/testutil"
)

func TestBookStats(t *testing.T) {
	path, db := testutil.TestStatsDB(t)
	start := time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC).Unix()
	testutil.SeedBook(t, db, "The Book", "A. Writer", 320, [][3]int64{
		{10, start, 60},
		{11, start + 120, 90},
		{11, start + 600, 30}, // same page read twice
	})

	sdb, err := stats.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer sdb.Close()

	bs, err := sdb.BookStats("The Book", "")
	if err != nil {
		t.Fatalf("BookStats: %v", err)
	}
	if bs.Pages != 320 {
		t.Errorf("pages = %d, want 320", bs.Pages)
	}
	if bs.ReadPages != 2 {
		t.Errorf("read pages = %d, want 2 (distinct)", bs.ReadPages)
	}
	if bs.TotalReadTime != 180*time.Second {
		t.Errorf("read time = %v, want 3m", bs.TotalReadTime)
	}
	if bs.FirstOpen.Unix() != start {
		t.Errorf("first open = %v", bs.FirstOpen)
	}
	if bs.LastOpen.Unix() != start+600 {
		t.Errorf("last open = %v", bs.LastOpen)
	}
}

func TestBookStats_AuthorNarrowing(t *testing.T) {
	path, db := testutil.TestStatsDB(t)
	testutil.SeedBook(t, db, "Same Title", "First Author", 100, [][3]int64{{1, 1, 10}})
	testutil.SeedBook(t, db, "Same Title", "Second Author", 200, [][3]int64{{1, 1, 10}})

	sdb, err := stats.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer sdb.Close()

	bs, err := sdb.BookStats("Same Title", "Second Author")
	if err != nil {
		t.Fatalf("BookStats: %v", err)
	}
	if bs.Pages != 200 {
		t.Errorf("pages = %d, want the second author's book", bs.Pages)
	}
}

func TestBookStats_NotFound(t *testing.T) {
	path, _ := testutil.TestStatsDB(t)
	sdb, err := stats.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer sdb.Close()

	_, err = sdb.BookStats("Unknown", "")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestBookStats_NoSessions(t *testing.T) {
	path, db := testutil.TestStatsDB(t)
	testutil.SeedBook(t, db, "Unopened", "", 50, nil)

	sdb, err := stats.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer sdb.Close()

	bs, err := sdb.BookStats("Unopened", "")
	if err != nil {
		t.Fatalf("BookStats: %v", err)
	}
	if bs.ReadPages != 0 || bs.TotalReadTime != 0 {
		t.Errorf("stats = %+v, want zero activity", bs)
	}
	if !bs.FirstOpen.IsZero() || !bs.LastOpen.IsZero() {
		t.Errorf("open times should stay zero: %+v", bs)
	}
}
