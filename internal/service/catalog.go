package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"palette-grab/internal/colorkit"
	"palette-grab/internal/config"
	"palette-grab/internal/model"
	"palette-grab/internal/storage"
)

var (
	ErrInvalidHex      = errors.New("invalid hex color")
	ErrEmptyName       = errors.New("palette name required")
	ErrInvalidSettings = errors.New("invalid settings")
)

// Publisher receives catalog and sampling events. *ws.Hub implements it.
type Publisher interface {
	Publish(eventType string, payload interface{})
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, interface{}) {}

// CatalogService owns the color history and palettes.
type CatalogService struct {
	cfg   config.Config
	store *storage.Store
	pub   Publisher
}

func NewCatalogService(cfg config.Config, store *storage.Store, pub Publisher) *CatalogService {
	if pub == nil {
		pub = nopPublisher{}
	}
	return &CatalogService{cfg: cfg, store: store, pub: pub}
}

func (s *CatalogService) AddColorToHistory(hex, imageURL, note string) (model.ColorRecord, error) {
	if _, ok := colorkit.HexToRGB(hex); !ok {
		return model.ColorRecord{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}
	rec := model.ColorRecord{
		ID:        uuid.NewString(),
		Hex:       hex,
		Timestamp: time.Now().UnixMilli(),
		ImageURL:  imageURL,
		Note:      note,
	}
	if err := s.store.PrependHistory(rec, s.cfg.HistoryLimit); err != nil {
		return model.ColorRecord{}, fmt.Errorf("save history: %w", err)
	}
	s.pub.Publish("history.added", rec)
	return rec, nil
}

func (s *CatalogService) ListHistory() []model.ColorRecord {
	return s.store.ListHistory()
}

func (s *CatalogService) HistoryRecord(id string) (model.ColorRecord, error) {
	return s.store.GetHistoryRecord(id)
}

func (s *CatalogService) ClearHistory() error {
	if err := s.store.ClearHistory(); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	s.pub.Publish("history.cleared", nil)
	return nil
}

// SimilarInHistory searches the saved history for colors near target.
func (s *CatalogService) SimilarInHistory(target string, maxDistance float64) []colorkit.Match {
	if maxDistance <= 0 {
		maxDistance = s.cfg.SimilarMaxDistance
	}
	return colorkit.FindSimilar(target, recordsToCandidates(s.store.ListHistory()), maxDistance)
}

func (s *CatalogService) CreatePalette(name string) (model.Palette, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Palette{}, ErrEmptyName
	}
	p := model.Palette{
		ID:        uuid.NewString(),
		Name:      name,
		Colors:    []model.ColorRecord{},
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := s.store.AppendPalette(p); err != nil {
		return model.Palette{}, fmt.Errorf("save palette: %w", err)
	}
	s.pub.Publish("palette.created", p)
	return p, nil
}

func (s *CatalogService) ListPalettes() []model.Palette {
	return s.store.ListPalettes()
}

func (s *CatalogService) GetPalette(id string) (model.Palette, error) {
	return s.store.GetPalette(id)
}

func (s *CatalogService) DeletePalette(id string) error {
	if err := s.store.DeletePalette(id); err != nil {
		return err
	}
	s.pub.Publish("palette.deleted", map[string]string{"id": id})
	return nil
}

// DuplicatePalette copies a palette under a new ID and a "(Copy)" name. The
// color records keep their IDs.
func (s *CatalogService) DuplicatePalette(id string) (model.Palette, error) {
	orig, err := s.store.GetPalette(id)
	if err != nil {
		return model.Palette{}, err
	}
	dup := orig
	dup.ID = uuid.NewString()
	dup.Name = orig.Name + " (Copy)"
	dup.CreatedAt = time.Now().UnixMilli()
	if err := s.store.AppendPalette(dup); err != nil {
		return model.Palette{}, fmt.Errorf("save palette: %w", err)
	}
	s.pub.Publish("palette.created", dup)
	return dup, nil
}

// AddColorToPalette appends rec to the palette. A record without an ID is
// treated as new and gets an ID and timestamp.
func (s *CatalogService) AddColorToPalette(paletteID string, rec model.ColorRecord) (model.Palette, error) {
	if _, ok := colorkit.HexToRGB(rec.Hex); !ok {
		return model.Palette{}, fmt.Errorf("%w: %q", ErrInvalidHex, rec.Hex)
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp == 0 {
		rec.Timestamp = time.Now().UnixMilli()
	}
	p, err := s.store.UpdatePalette(paletteID, func(p *model.Palette) {
		p.Colors = append(p.Colors, rec)
	})
	if err != nil {
		return model.Palette{}, err
	}
	s.pub.Publish("palette.updated", p)
	return p, nil
}

func (s *CatalogService) RemoveColorFromPalette(paletteID, colorID string) (model.Palette, error) {
	found := false
	p, err := s.store.UpdatePalette(paletteID, func(p *model.Palette) {
		kept := p.Colors[:0]
		for _, c := range p.Colors {
			if c.ID == colorID {
				found = true
				continue
			}
			kept = append(kept, c)
		}
		p.Colors = kept
	})
	if err != nil {
		return model.Palette{}, err
	}
	if !found {
		return model.Palette{}, storage.ErrNotFound
	}
	s.pub.Publish("palette.updated", p)
	return p, nil
}

func (s *CatalogService) Settings() model.Settings {
	return s.store.GetSettings()
}

func (s *CatalogService) UpdateSettings(settings model.Settings) (model.Settings, error) {
	if _, ok := model.SupportedColorFormats[settings.DefaultFormat]; !ok {
		return model.Settings{}, fmt.Errorf("%w: format %q", ErrInvalidSettings, settings.DefaultFormat)
	}
	if settings.Theme != model.ThemeDark && settings.Theme != model.ThemeLight {
		return model.Settings{}, fmt.Errorf("%w: theme %q", ErrInvalidSettings, settings.Theme)
	}
	if err := s.store.SetSettings(settings); err != nil {
		return model.Settings{}, fmt.Errorf("save settings: %w", err)
	}
	return settings, nil
}

func recordsToCandidates(recs []model.ColorRecord) []colorkit.Candidate {
	out := make([]colorkit.Candidate, 0, len(recs))
	for _, r := range recs {
		out = append(out, colorkit.Candidate{Hex: r.Hex, ID: r.ID})
	}
	return out
}
