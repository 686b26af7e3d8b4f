package catalog

import (
	"errors"
	"reflect"
	"testing"
)

func TestPushDuplicateKeepsOneMember(t *testing.T) {
	ts, _ := NewTracks()
	for i := 0; i < 2; i++ {
		if err := ts.Push(ByID("x")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ts.Size() != 2 || len(ts.members) != 1 {
		t.Fatalf("size %d, members %d", ts.Size(), len(ts.members))
	}
	a, _ := ts.Get(0)
	b, _ := ts.Get(1)
	if a != b {
		t.Error("duplicate positions resolve to different entities")
	}
}

func TestIDsNoRepeats(t *testing.T) {
	ts, err := NewTracks(RefsByID("t1", "t1", "t2")...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts.Size() != 3 {
		t.Errorf("size = %d", ts.Size())
	}
	if got := ts.IDsNoRepeats(); !reflect.DeepEqual(got, []string{"t1", "t2"}) {
		t.Errorf("ids = %v", got)
	}
	if got := ts.IDs(); !reflect.DeepEqual(got, []string{"t1", "t1", "t2"}) {
		t.Errorf("ids = %v", got)
	}
}

func TestShiftIsReferenceCounted(t *testing.T) {
	ts, _ := NewTracks(RefsByID("a", "b", "a")...)
	if _, ok := ts.Shift(); !ok {
		t.Fatal("shift on non-empty collection")
	}
	if _, ok := ts.Member("a"); !ok {
		t.Fatal("a evicted while still referenced")
	}
	if got := ts.IDs(); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("ids = %v", got)
	}
	ts.Pop()
	if _, ok := ts.Member("a"); ok {
		t.Error("a kept after last occurrence removed")
	}
}

func TestRemoveDeletesEveryOccurrence(t *testing.T) {
	ts, _ := NewTracks(RefsByID("a", "b", "a")...)
	if err := ts.Remove(FromObject(Object{"id": "a"})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ts.IDs(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("ids = %v", got)
	}
	if ts.Includes(ByID("a")) {
		t.Error("a still included")
	}
	if err := ts.Remove(Ref{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func TestSliceKeepsRangeAndCountsReferences(t *testing.T) {
	ts, _ := NewTracks(RefsByID("a", "b", "c", "a", "d")...)
	ts.Slice(1, 4)
	if got := ts.IDs(); !reflect.DeepEqual(got, []string{"b", "c", "a"}) {
		t.Errorf("ids = %v", got)
	}
	if _, ok := ts.Member("a"); !ok {
		t.Error("a evicted while referenced")
	}
	if _, ok := ts.Member("d"); ok {
		t.Error("d kept after slice")
	}
	ts.Slice(-1, 10)
	if got := ts.IDs(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("ids = %v", got)
	}
}

func TestSortCollapsesDuplicates(t *testing.T) {
	ts, _ := NewTracks(RefsByID("b", "a", "b")...)
	if err := ts.Sort(func(x, y *Track) int {
		switch {
		case x.ID() < y.ID():
			return -1
		case x.ID() > y.ID():
			return 1
		}
		return 0
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ts.IDs(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("ids = %v", got)
	}
	if err := ts.Sort(nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func TestReverse(t *testing.T) {
	ts, _ := NewTracks(RefsByID("a", "b", "c")...)
	ts.Reverse()
	if got := ts.IDs(); !reflect.DeepEqual(got, []string{"c", "b", "a"}) {
		t.Errorf("ids = %v", got)
	}
}

func TestGetAndIndexOfBounds(t *testing.T) {
	ts, _ := NewTracks(RefsByID("a", "b", "a")...)
	if _, err := ts.Get(3); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
	if _, err := ts.Get(-1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
	a, _ := ts.Get(0)
	if i, err := ts.IndexOf(FromItem(a), 1); err != nil || i != 2 {
		t.Errorf("indexOf = %d, %v", i, err)
	}
	if i, _ := ts.IndexOf(ByID("z"), 0); i != -1 {
		t.Errorf("indexOf missing = %d", i)
	}
	if _, err := ts.IndexOf(ByID("a"), 5); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func TestFilterReturnsNewCollection(t *testing.T) {
	ts, _ := NewTracks(RefsByID("a", "b", "a")...)
	only, err := ts.Filter(func(tr *Track) bool { return tr.ID() == "a" })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := only.IDs(); !reflect.DeepEqual(got, []string{"a", "a"}) {
		t.Errorf("ids = %v", got)
	}
	if ts.Size() != 3 {
		t.Error("filter mutated the source")
	}
	if _, err := ts.Filter(nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func TestPushAllIsAtomic(t *testing.T) {
	ts, _ := NewTracks(ByID("a"))
	err := ts.PushAll(ByID("b"), FromObject(Object{"name": "no id"}))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if ts.Size() != 1 {
		t.Errorf("size = %d", ts.Size())
	}
}

func TestPushWrappedObject(t *testing.T) {
	ts, _ := NewTracks()
	err := ts.Push(FromObject(Object{
		"added_at": "2021-05-01T00:00:00Z",
		"added_by": Object{"id": "u"},
		"is_local": false,
		"track":    fullTrack("x", "n"),
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tr, _ := ts.Get(0)
	if tr.ID() != "x" || !tr.ContainsFullObject() {
		t.Fatalf("unexpected track %v", tr.CurrentData())
	}
	if v, _ := tr.Get("added_at"); v != "2021-05-01T00:00:00Z" {
		t.Errorf("added_at = %v", v)
	}
	if v, _ := tr.Lookup("added_by.id"); v != "u" {
		t.Errorf("added_by = %v", v)
	}
}

func TestPushRejectsOtherKinds(t *testing.T) {
	ts, _ := NewTracks()
	album, _ := NewAlbum(ByID("a"))
	if err := ts.Push(FromItem(album)); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
	if err := ts.Push(Ref{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func TestPushEntityKeepsInstance(t *testing.T) {
	tr, _ := NewTrack(ByID("x"))
	ts, _ := NewTracks(FromItem(tr))
	got, _ := ts.Get(0)
	if got != tr {
		t.Error("pushed entity was copied")
	}
}

func TestConcatUsesDistinctMembers(t *testing.T) {
	a, _ := NewTracks(RefsByID("a")...)
	b, _ := NewTracks(RefsByID("b", "b", "c")...)
	a.Concat(b.Collection)
	if got := a.IDs(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("ids = %v", got)
	}
	a.Concat(nil)
	if a.Size() != 3 {
		t.Error("concat nil changed the collection")
	}
}

func TestCloneSharesEntities(t *testing.T) {
	ts, _ := NewTracks(RefsByID("a", "b")...)
	cp := ts.Clone()
	cp.Pop()
	if ts.Size() != 2 {
		t.Error("clone shares order")
	}
	x, _ := ts.Get(0)
	y, _ := cp.Get(0)
	if x != y {
		t.Error("clone copied entities")
	}
}

func TestFuzzyFind(t *testing.T) {
	ts, _ := NewTracks(
		FromObject(Object{"id": "1", "name": "Bohemian Rhapsody"}),
		FromObject(Object{"id": "2", "name": "Another One Bites the Dust"}),
		FromObject(Object{"id": "3", "name": "Radio Ga Ga"}),
	)
	got := ts.FuzzyFind("rhapsody")
	if got.Size() != 1 {
		t.Fatalf("matches = %v", got.IDs())
	}
	if id := got.IDs()[0]; id != "1" {
		t.Errorf("best match = %s", id)
	}
	if ts.FuzzyFind("").Size() != 3 {
		t.Error("empty query should keep everything")
	}
}

func TestForEachAndURIs(t *testing.T) {
	ts, _ := NewTracks(RefsByID("a", "b")...)
	var seen []string
	if err := ts.ForEach(func(i int, tr *Track) { seen = append(seen, tr.ID()) }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(seen, []string{"a", "b"}) {
		t.Errorf("seen = %v", seen)
	}
	if got := ts.URIs(); !reflect.DeepEqual(got, []string{"spotify:track:a", "spotify:track:b"}) {
		t.Errorf("uris = %v", got)
	}
	if err := ts.ForEach(nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
}
