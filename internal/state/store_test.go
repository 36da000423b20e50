package state

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/five82/tagview/internal/tags"
)

func names(list []tags.Tag) []string {
	out := make([]string, 0, len(list))
	for _, t := range list {
		out = append(out, t.Name)
	}
	return out
}

func TestStore_EmptyBeforeFirstReplace(t *testing.T) {
	var s Store
	snap := s.Snapshot()
	if snap == nil {
		t.Fatal("Snapshot() = nil, want empty snapshot")
	}
	if snap.Len() != 0 || snap.All() != nil || snap.Categories() != nil {
		t.Fatalf("empty store snapshot = %#v, want no tags", snap)
	}
	if snap.HasData() {
		t.Fatal("HasData() = true before first Replace")
	}
	if _, ok := snap.Get("T1"); ok {
		t.Fatal("Get on empty store returned ok")
	}
}

func TestStore_ReplaceIsWholesale(t *testing.T) {
	var s Store

	s.Replace([]tags.Tag{
		{Name: "A", Value: 1.0, Category: "flow"},
		{Name: "B", Value: 2.0},
	})
	s.Replace([]tags.Tag{
		{Name: "B", Value: 20.0, Category: "temp"},
		{Name: "C", Value: 30.0},
	})

	snap := s.Snapshot()
	if got := names(snap.All()); !reflect.DeepEqual(got, []string{"B", "C"}) {
		t.Fatalf("All() names = %v, want [B C]", got)
	}
	if _, ok := snap.Get("A"); ok {
		t.Fatal("Get(A) found a tag dropped by the latest snapshot")
	}
	b, ok := snap.Get("B")
	if !ok || b.Value != 20.0 || b.Category != "temp" {
		t.Fatalf("Get(B) = %#v, want value 20 category temp", b)
	}
	want := []CategoryCount{{Name: "temp", Count: 1}, {Name: "general", Count: 1}}
	if got := snap.Categories(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}
	if snap.CategoryCount("flow") != 0 {
		t.Fatalf("CategoryCount(flow) = %d, want 0 after replace", snap.CategoryCount("flow"))
	}
}

func TestStore_CategoryIndexDefaultsAndCase(t *testing.T) {
	var s Store
	s.Replace([]tags.Tag{
		{Name: "T1", Category: "flow"},
		{Name: "T2"},
		{Name: "T3", Category: "Flow"},
		{Name: "T4", Category: "flow"},
	})

	snap := s.Snapshot()
	want := []CategoryCount{{"flow", 2}, {"general", 1}, {"Flow", 1}}
	if got := snap.Categories(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}
	if snap.CategoryCount("general") != 1 {
		t.Fatalf("CategoryCount(general) = %d, want 1", snap.CategoryCount("general"))
	}
}

func TestStore_DuplicateNamesKeepOneRecord(t *testing.T) {
	var s Store
	s.Replace([]tags.Tag{
		{Name: "T1", Value: 1.0, Category: "a"},
		{Name: "T2", Value: 2.0},
		{Name: "T1", Value: 3.0, Category: "b"},
	})

	snap := s.Snapshot()
	if got := names(snap.All()); !reflect.DeepEqual(got, []string{"T1", "T2"}) {
		t.Fatalf("All() names = %v, want [T1 T2]", got)
	}
	t1, _ := snap.Get("T1")
	if t1.Value != 3.0 {
		t.Fatalf("Get(T1).Value = %v, want last record 3", t1.Value)
	}
	if snap.CategoryCount("a") != 0 || snap.CategoryCount("b") != 1 {
		t.Fatalf("category index counted a replaced duplicate: %v", snap.Categories())
	}
}

func TestStore_SnapshotIsIndependent(t *testing.T) {
	var s Store
	s.Replace([]tags.Tag{{Name: "T1"}})

	first := s.Snapshot()
	all := first.All()
	all[0].Name = "mutated"

	if got, _ := s.Snapshot().Get("T1"); got.Name != "T1" {
		t.Fatalf("mutating All() result leaked into the store: %#v", got)
	}

	s.Replace([]tags.Tag{{Name: "T9"}})
	if _, ok := first.Get("T1"); !ok {
		t.Fatal("earlier snapshot changed after Replace")
	}
}

func TestStore_RecordFailureKeepsPreviousData(t *testing.T) {
	var s Store
	s.Replace([]tags.Tag{{Name: "T1", Category: "flow"}, {Name: "T2"}})
	prev := s.Snapshot()

	origErr := errors.New("boom")
	s.RecordFailure(origErr)

	snap := s.Snapshot()
	if !reflect.DeepEqual(snap.All(), prev.All()) {
		t.Fatalf("tags changed on error: got %v want %v", snap.All(), prev.All())
	}
	if !reflect.DeepEqual(snap.Categories(), prev.Categories()) {
		t.Fatalf("categories changed on error: got %v want %v", snap.Categories(), prev.Categories())
	}
	if !snap.LastUpdated.Equal(prev.LastUpdated) {
		t.Fatalf("LastUpdated = %v, want unchanged %v", snap.LastUpdated, prev.LastUpdated)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatal("LastError should wrap the original error")
	}
	if prev.LastError != nil {
		t.Fatal("RecordFailure mutated the previous snapshot")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	s.RecordFailure(errors.New("fail 1"))
	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}
	if snap.HasData() {
		t.Fatal("HasData() = true after failures only")
	}

	s.RecordFailure(errors.New("fail 2"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("after 2 failures: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.RecordFailure(nil)
	if s.Snapshot().ConsecutiveFailures != 2 {
		t.Fatal("RecordFailure(nil) should be a no-op")
	}

	before := time.Now()
	s.Replace(nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() || snap.LastError != nil {
		t.Fatalf("success did not reset failure state: %#v", snap)
	}
	if !snap.HasData() || snap.LastUpdated.Before(before) {
		t.Fatalf("Replace(nil) should install an empty, current snapshot: %#v", snap)
	}
}

func TestStore_ConcurrentReplaceAndRead(t *testing.T) {
	var s Store
	a := []tags.Tag{{Name: "A1"}, {Name: "A2"}}
	b := []tags.Tag{{Name: "B1"}, {Name: "B2"}, {Name: "B3"}}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if (i+j)%2 == 0 {
					s.Replace(a)
				} else {
					s.Replace(b)
				}
			}
		}(i)
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				got := names(s.Snapshot().All())
				if len(got) == 0 {
					continue
				}
				if !reflect.DeepEqual(got, names(a)) && !reflect.DeepEqual(got, names(b)) {
					t.Errorf("torn snapshot: %v", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}
