package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"palette-grab/internal/model"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "state.json")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s, path
}

func TestNewStoreWritesDefaults(t *testing.T) {
	s, path := newTestStore(t)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("state file not created: %v", err)
	}
	snap := s.Snapshot()
	if snap.Settings.DefaultFormat != model.FormatHex || snap.Settings.Theme != model.ThemeDark {
		t.Fatalf("unexpected settings: %+v", snap.Settings)
	}
	if snap.History == nil || snap.Palettes == nil {
		t.Fatal("collections should be initialized")
	}
}

func TestHistoryNewestFirstAndLimit(t *testing.T) {
	s, _ := newTestStore(t)
	for _, id := range []string{"a", "b", "c"} {
		if err := s.PrependHistory(model.ColorRecord{ID: id, Hex: "#FFFFFF"}, 2); err != nil {
			t.Fatalf("prepend: %v", err)
		}
	}
	h := s.ListHistory()
	if len(h) != 2 || h[0].ID != "c" || h[1].ID != "b" {
		t.Fatalf("unexpected history: %+v", h)
	}
	if _, err := s.GetHistoryRecord("a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("trimmed record should be gone: %v", err)
	}
	if err := s.ClearHistory(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(s.ListHistory()) != 0 {
		t.Fatal("history not cleared")
	}
}

func TestPalettePersistsAcrossReopen(t *testing.T) {
	s, path := newTestStore(t)
	p := model.Palette{ID: "p1", Name: "Sunset", Colors: []model.ColorRecord{{ID: "c1", Hex: "#FF5733"}}}
	if err := s.AppendPalette(p); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := s.UpdatePalette("p1", func(p *model.Palette) {
		p.Colors = append(p.Colors, model.ColorRecord{ID: "c2", Hex: "#3366CC"})
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := reopened.GetPalette("p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Sunset" || len(got.Colors) != 2 || got.Colors[1].Hex != "#3366CC" {
		t.Fatalf("unexpected palette: %+v", got)
	}
}

func TestPaletteCopiesAreIsolated(t *testing.T) {
	s, _ := newTestStore(t)
	_ = s.AppendPalette(model.Palette{ID: "p1", Name: "A", Colors: []model.ColorRecord{{ID: "c1", Hex: "#000000"}}})
	got, _ := s.GetPalette("p1")
	got.Colors[0].Hex = "#FFFFFF"
	again, _ := s.GetPalette("p1")
	if again.Colors[0].Hex != "#000000" {
		t.Fatal("caller mutation leaked into store")
	}
}

func TestDeletePalette(t *testing.T) {
	s, _ := newTestStore(t)
	_ = s.AppendPalette(model.Palette{ID: "p1", Name: "A"})
	_ = s.AppendPalette(model.Palette{ID: "p2", Name: "B"})
	if err := s.DeletePalette("p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeletePalette("p1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	list := s.ListPalettes()
	if len(list) != 1 || list[0].ID != "p2" {
		t.Fatalf("unexpected palettes: %+v", list)
	}
}

func TestEmptyFileLoadsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if got := s.GetSettings(); got.DefaultFormat != model.FormatHex {
		t.Fatalf("unexpected settings: %+v", got)
	}
}
