package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"palette-grab/internal/model"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	path  string
	mu    sync.RWMutex
	state model.StoredState
}

func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("store path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	s := &Store{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.state = defaultState()
			return s.saveLocked()
		}
		return err
	}
	if len(b) == 0 {
		s.state = defaultState()
		return s.saveLocked()
	}

	var state model.StoredState
	if err := json.Unmarshal(b, &state); err != nil {
		return err
	}
	mergeDefaults(&state)
	s.state = state
	return nil
}

func defaultSettings() model.Settings {
	return model.Settings{DefaultFormat: model.FormatHex, Theme: model.ThemeDark}
}

func defaultState() model.StoredState {
	return model.StoredState{
		History:   []model.ColorRecord{},
		Palettes:  []model.Palette{},
		Settings:  defaultSettings(),
		CreatedAt: time.Now().UTC(),
	}
}

func mergeDefaults(state *model.StoredState) {
	if state.History == nil {
		state.History = []model.ColorRecord{}
	}
	if state.Palettes == nil {
		state.Palettes = []model.Palette{}
	}
	for i := range state.Palettes {
		if state.Palettes[i].Colors == nil {
			state.Palettes[i].Colors = []model.ColorRecord{}
		}
	}
	if state.Settings.DefaultFormat == "" {
		state.Settings.DefaultFormat = model.FormatHex
	}
	if state.Settings.Theme == "" {
		state.Settings.Theme = model.ThemeDark
	}
	if state.CreatedAt.IsZero() {
		state.CreatedAt = time.Now().UTC()
	}
}

func (s *Store) saveLocked() error {
	s.state.LastUpdatedUnixMS = time.Now().UnixMilli()
	b, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o600)
}

func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) Snapshot() model.StoredState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, _ := json.Marshal(s.state)
	var cloned model.StoredState
	_ = json.Unmarshal(b, &cloned)
	return cloned
}

// PrependHistory puts rec at the front of the history and trims it to limit
// entries when limit > 0.
func (s *Store) PrependHistory(rec model.ColorRecord, limit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := make([]model.ColorRecord, 0, len(s.state.History)+1)
	history = append(history, rec)
	history = append(history, s.state.History...)
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	s.state.History = history
	return s.saveLocked()
}

func (s *Store) ListHistory() []model.ColorRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ColorRecord, len(s.state.History))
	copy(out, s.state.History)
	return out
}

func (s *Store) GetHistoryRecord(id string) (model.ColorRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.state.History {
		if rec.ID == id {
			return rec, nil
		}
	}
	return model.ColorRecord{}, ErrNotFound
}

func (s *Store) ClearHistory() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.History = []model.ColorRecord{}
	return s.saveLocked()
}

func (s *Store) AppendPalette(p model.Palette) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Palettes = append(s.state.Palettes, clonePalette(p))
	return s.saveLocked()
}

func (s *Store) ListPalettes() []model.Palette {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Palette, 0, len(s.state.Palettes))
	for _, p := range s.state.Palettes {
		out = append(out, clonePalette(p))
	}
	return out
}

func (s *Store) GetPalette(id string) (model.Palette, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.paletteIndexLocked(id)
	if i < 0 {
		return model.Palette{}, ErrNotFound
	}
	return clonePalette(s.state.Palettes[i]), nil
}

func (s *Store) DeletePalette(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.paletteIndexLocked(id)
	if i < 0 {
		return ErrNotFound
	}
	s.state.Palettes = append(s.state.Palettes[:i], s.state.Palettes[i+1:]...)
	return s.saveLocked()
}

// UpdatePalette applies fn to the stored palette and persists the result.
func (s *Store) UpdatePalette(id string, fn func(*model.Palette)) (model.Palette, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.paletteIndexLocked(id)
	if i < 0 {
		return model.Palette{}, ErrNotFound
	}
	p := clonePalette(s.state.Palettes[i])
	fn(&p)
	s.state.Palettes[i] = p
	if err := s.saveLocked(); err != nil {
		return model.Palette{}, err
	}
	return clonePalette(p), nil
}

func (s *Store) GetSettings() model.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Settings
}

func (s *Store) SetSettings(settings model.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Settings = settings
	return s.saveLocked()
}

func (s *Store) paletteIndexLocked(id string) int {
	for i, p := range s.state.Palettes {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func clonePalette(p model.Palette) model.Palette {
	colors := make([]model.ColorRecord, len(p.Colors))
	copy(colors, p.Colors)
	p.Colors = colors
	return p
}
