package lyrics_test

import (
	"errors"
	"math"
	"testing"

	"lyricsync/internal/lyrics"
)

func requireSorted(t *testing.T, store *lyrics.Store) {
	t.Helper()
	entries := store.Snapshot()
	for i := 1; i < len(entries); i++ {
		if entries[i].Time < entries[i-1].Time {
			t.Fatalf("entries not sorted at %d: %v", i, entries)
		}
	}
}

func texts(entries []lyrics.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Text
	}
	return out
}

func TestCaptureKeepsEntriesSorted(t *testing.T) {
	store := lyrics.NewStore()
	for _, c := range []struct {
		text string
		at   float64
	}{
		{"third", 9.04},
		{"first", 1.26},
		{"second", 4.5},
		{"fourth", 12},
	} {
		if _, err := store.Capture(c.text, c.at); err != nil {
			t.Fatalf("Capture(%q): %v", c.text, err)
		}
		requireSorted(t, store)
	}

	got := store.Snapshot()
	want := []struct {
		text string
		time float64
	}{{"first", 1.3}, {"second", 4.5}, {"third", 9}, {"fourth", 12}}
	for i, w := range want {
		if got[i].Text != w.text || got[i].Time != w.time {
			t.Fatalf("entry %d: got %+v want %s@%v", i, got[i], w.text, w.time)
		}
	}
}

func TestCaptureReportsDeltaFromPreviousCapture(t *testing.T) {
	store := lyrics.NewStore()
	first, err := store.Capture("one", 2.0)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if first.HasDelta {
		t.Fatal("expected no delta for first capture")
	}
	second, err := store.Capture("two", 5.3)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if !second.HasDelta || second.Delta != 3.3 {
		t.Fatalf("unexpected delta: %+v", second)
	}
	last, ok := store.LastCaptureTime()
	if !ok || last != 5.3 {
		t.Fatalf("unexpected last capture: %v %v", last, ok)
	}
}

func TestCaptureBlankTextIsRejected(t *testing.T) {
	store := lyrics.NewStore()
	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := store.Capture(text, 3)
		if !errors.Is(err, lyrics.ErrEmptyInput) {
			t.Fatalf("Capture(%q): expected ErrEmptyInput, got %v", text, err)
		}
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d entries", store.Len())
	}
	if _, ok := store.LastCaptureTime(); ok {
		t.Fatal("expected no last capture time")
	}
}

func TestCaptureWhileEditingCommitsText(t *testing.T) {
	store := lyrics.NewStore()
	mustCapture(t, store, "hello", 1)
	mustCapture(t, store, "wrold", 2)

	entry, err := store.StartEdit(1)
	if err != nil {
		t.Fatalf("StartEdit: %v", err)
	}
	if entry.Text != "wrold" {
		t.Fatalf("unexpected prefill %q", entry.Text)
	}

	result, err := store.Capture("  world  ", 99)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if !result.Edited || result.Entry.Text != "world" || result.Entry.Time != 2 {
		t.Fatalf("unexpected edit result: %+v", result)
	}
	if store.Len() != 2 {
		t.Fatalf("edit must not add entries, got %d", store.Len())
	}
	if _, ok := store.EditingIndex(); ok {
		t.Fatal("expected edit session to end")
	}
	if last, _ := store.LastCaptureTime(); last != 2 {
		t.Fatalf("edit must not move last capture time, got %v", last)
	}
}

func TestEditCommitRejectsBlankText(t *testing.T) {
	store := lyrics.NewStore()
	mustCapture(t, store, "keep", 1)
	if _, err := store.StartEdit(0); err != nil {
		t.Fatalf("StartEdit: %v", err)
	}
	if _, err := store.Capture("   ", 0); !errors.Is(err, lyrics.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if idx, ok := store.EditingIndex(); !ok || idx != 0 {
		t.Fatalf("expected edit to stay open, got %d %v", idx, ok)
	}
	if got, _ := store.At(0); got.Text != "keep" {
		t.Fatalf("text changed to %q", got.Text)
	}
}

func TestStartEditAbandonsPreviousEdit(t *testing.T) {
	store := lyrics.NewStore()
	mustCapture(t, store, "a", 1)
	mustCapture(t, store, "b", 2)

	if _, err := store.StartEdit(0); err != nil {
		t.Fatalf("StartEdit: %v", err)
	}
	if _, err := store.StartEdit(1); err != nil {
		t.Fatalf("StartEdit: %v", err)
	}
	if _, err := store.Capture("B", 0); err != nil {
		t.Fatalf("Capture: %v", err)
	}
	got := texts(store.Snapshot())
	if got[0] != "a" || got[1] != "B" {
		t.Fatalf("unexpected texts %v", got)
	}
	if _, err := store.StartEdit(5); !errors.Is(err, lyrics.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestNudgeRequiresActiveEdit(t *testing.T) {
	store := lyrics.NewStore()
	mustCapture(t, store, "a", 1)
	if _, err := store.Nudge(0.1); !errors.Is(err, lyrics.ErrNoActiveEdit) {
		t.Fatalf("expected ErrNoActiveEdit, got %v", err)
	}
	if got, _ := store.At(0); got.Time != 1 {
		t.Fatalf("time changed to %v", got.Time)
	}
}

func TestNudgeDoesNotDrift(t *testing.T) {
	store := lyrics.NewStore()
	mustCapture(t, store, "line", 5.0)
	if _, err := store.StartEdit(0); err != nil {
		t.Fatalf("StartEdit: %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, err := store.Nudge(-0.1); err != nil {
			t.Fatalf("Nudge: %v", err)
		}
	}
	got, _ := store.At(0)
	if got.Time != 4.5 {
		t.Fatalf("expected 4.5 after five nudges, got %v", got.Time)
	}
}

func TestNudgeFollowsEntryAcrossResort(t *testing.T) {
	store := lyrics.NewStore()
	mustCapture(t, store, "a", 1.0)
	mustCapture(t, store, "b", 1.1)
	mustCapture(t, store, "c", 5.0)

	if _, err := store.StartEdit(0); err != nil {
		t.Fatalf("StartEdit: %v", err)
	}
	result, err := store.Nudge(0.2)
	if err != nil {
		t.Fatalf("Nudge: %v", err)
	}
	if result.Index != 1 || result.Entry.Text != "a" || result.Entry.Time != 1.2 {
		t.Fatalf("unexpected nudge result: %+v", result)
	}
	if idx, ok := store.EditingIndex(); !ok || idx != 1 {
		t.Fatalf("edit pointer should follow entry to 1, got %d %v", idx, ok)
	}
	requireSorted(t, store)

	if _, err := store.Capture("A", 0); err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if got := texts(store.Snapshot()); got[0] != "b" || got[1] != "A" {
		t.Fatalf("edit hit the wrong row: %v", got)
	}
}

func TestNudgeClampsAtZero(t *testing.T) {
	store := lyrics.NewStore()
	mustCapture(t, store, "intro", 0.1)
	if _, err := store.StartEdit(0); err != nil {
		t.Fatalf("StartEdit: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := store.Nudge(-0.1); err != nil {
			t.Fatalf("Nudge: %v", err)
		}
	}
	if got, _ := store.At(0); got.Time != 0 {
		t.Fatalf("expected clamp at 0, got %v", got.Time)
	}
}

func TestNudgeClampsAtMaxTime(t *testing.T) {
	store := lyrics.NewStore()
	mustCapture(t, store, "a", 1)
	if _, err := store.StartEdit(0); err != nil {
		t.Fatalf("StartEdit: %v", err)
	}
	result, err := store.Nudge(1e308)
	if err != nil {
		t.Fatalf("Nudge: %v", err)
	}
	if result.Entry.Time != lyrics.MaxTime || math.IsInf(result.Entry.Time, 0) {
		t.Fatalf("expected clamp at %v, got %v", lyrics.MaxTime, result.Entry.Time)
	}

	result2 := mustCapture(t, lyrics.NewStore(), "b", math.Inf(1))
	if result2.Entry.Time != lyrics.MaxTime {
		t.Fatalf("expected capture clamp at %v, got %v", lyrics.MaxTime, result2.Entry.Time)
	}
}

func TestUndoRemovesNewestRegardlessOfPosition(t *testing.T) {
	store := lyrics.NewStore()
	mustCapture(t, store, "late", 30)
	mustCapture(t, store, "early", 2)
	mustCapture(t, store, "middle", 10)

	removed, err := store.Undo()
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if removed.Text != "middle" {
		t.Fatalf("expected newest entry removed, got %q", removed.Text)
	}
	removed, err = store.Undo()
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if removed.Text != "early" {
		t.Fatalf("expected second newest removed, got %q", removed.Text)
	}
	if got := texts(store.Snapshot()); len(got) != 1 || got[0] != "late" {
		t.Fatalf("unexpected remaining entries %v", got)
	}
}

func TestUndoAfterNudgeReorder(t *testing.T) {
	store := lyrics.NewStore()
	mustCapture(t, store, "a", 1)
	mustCapture(t, store, "b", 2)
	if _, err := store.StartEdit(1); err != nil {
		t.Fatalf("StartEdit: %v", err)
	}
	for i := 0; i < 15; i++ {
		if _, err := store.Nudge(-0.1); err != nil {
			t.Fatalf("Nudge: %v", err)
		}
	}
	if got := texts(store.Snapshot()); got[0] != "b" {
		t.Fatalf("expected b to sort first, got %v", got)
	}

	removed, err := store.Undo()
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if removed.Text != "b" {
		t.Fatalf("expected b removed, got %q", removed.Text)
	}
	if _, ok := store.EditingIndex(); ok {
		t.Fatal("undo must cancel the open edit")
	}
}

func TestUndoOnEmptyStore(t *testing.T) {
	store := lyrics.NewStore()
	if _, err := store.Undo(); !errors.Is(err, lyrics.ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	store := lyrics.NewStore()
	mustCapture(t, store, "a", 1)
	if _, err := store.Delete(0, false); !errors.Is(err, lyrics.ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
	if store.Len() != 1 {
		t.Fatal("unconfirmed delete must not mutate")
	}
	if _, err := store.Delete(3, true); !errors.Is(err, lyrics.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestDeleteAdjustsEditPointer(t *testing.T) {
	cases := []struct {
		name      string
		edit      int
		remove    int
		wantEdit  int
		wantOpen  bool
		wantTexts []string
	}{
		{"delete edited row", 1, 1, -1, false, []string{"a", "c"}},
		{"delete before edited row", 2, 0, 1, true, []string{"b", "c"}},
		{"delete after edited row", 0, 2, 0, true, []string{"a", "b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := lyrics.NewStore()
			mustCapture(t, store, "a", 1)
			mustCapture(t, store, "b", 2)
			mustCapture(t, store, "c", 3)
			if _, err := store.StartEdit(tc.edit); err != nil {
				t.Fatalf("StartEdit: %v", err)
			}
			if _, err := store.Delete(tc.remove, true); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			idx, ok := store.EditingIndex()
			if ok != tc.wantOpen || idx != tc.wantEdit {
				t.Fatalf("editing index: got %d %v want %d %v", idx, ok, tc.wantEdit, tc.wantOpen)
			}
			got := texts(store.Snapshot())
			if len(got) != len(tc.wantTexts) {
				t.Fatalf("got %v want %v", got, tc.wantTexts)
			}
			for i := range got {
				if got[i] != tc.wantTexts[i] {
					t.Fatalf("got %v want %v", got, tc.wantTexts)
				}
			}
		})
	}
}

func TestClearResetsState(t *testing.T) {
	store := lyrics.NewStore()
	mustCapture(t, store, "a", 1)
	mustCapture(t, store, "b", 2)
	if _, err := store.StartEdit(0); err != nil {
		t.Fatalf("StartEdit: %v", err)
	}

	if _, err := store.Clear(false); !errors.Is(err, lyrics.ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
	removed, err := store.Clear(true)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed != 2 || store.Len() != 0 {
		t.Fatalf("expected 2 removed and empty store, got %d/%d", removed, store.Len())
	}
	if _, ok := store.LastCaptureTime(); ok {
		t.Fatal("expected last capture reset")
	}
	if _, ok := store.EditingIndex(); ok {
		t.Fatal("expected edit reset")
	}

	result := mustCapture(t, store, "fresh", 4)
	if result.HasDelta {
		t.Fatal("first capture after clear must not report a delta")
	}
}

func TestEqualTimesKeepInsertionOrder(t *testing.T) {
	store := lyrics.NewStore()
	mustCapture(t, store, "first", 3)
	mustCapture(t, store, "second", 3)
	mustCapture(t, store, "zero", 0)
	mustCapture(t, store, "third", 3)

	got := texts(store.Snapshot())
	want := []string{"zero", "first", "second", "third"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	store := lyrics.NewStore()
	mustCapture(t, store, "a", 1)
	snap := store.Snapshot()
	snap[0].Text = "mutated"
	if got, _ := store.At(0); got.Text != "a" {
		t.Fatalf("snapshot aliased store: %q", got.Text)
	}
}

func TestRoundTime(t *testing.T) {
	cases := map[float64]float64{
		0:      0,
		-3:     0,
		0.04:   0,
		1.25:   1.3,
		12.345: 12.3,
		59.96:  60,
		1e308:  lyrics.MaxTime,

		math.Inf(1): lyrics.MaxTime,
	}
	for in, want := range cases {
		if got := lyrics.RoundTime(in); got != want {
			t.Fatalf("RoundTime(%v) = %v, want %v", in, got, want)
		}
	}
}

func mustCapture(t *testing.T, store *lyrics.Store, text string, at float64) lyrics.CaptureResult {
	t.Helper()
	result, err := store.Capture(text, at)
	if err != nil {
		t.Fatalf("Capture(%q): %v", text, err)
	}
	return result
}
