package service

import (
	"path/filepath"
	"sync"
	"testing"

	"palette-grab/internal/config"
	"palette-grab/internal/storage"
)

type recordedEvent struct {
	Type    string
	Payload interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) Publish(eventType string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Type: eventType, Payload: payload})
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func testConfig() config.Config {
	return config.Config{
		ListenAddr:         ":0",
		MaxUploadSizeBytes: 1 << 20,
		HistoryLimit:       10,
		SimilarMaxDistance: 50,
		ContrastTarget:     4.5,
	}
}

func newTestCatalog(t *testing.T) (*CatalogService, *recordingPublisher) {
	t.Helper()
	cfg := testConfig()
	cfg.DataPath = filepath.Join(t.TempDir(), "state.json")
	store, err := storage.NewStore(cfg.DataPath)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	pub := &recordingPublisher{}
	return NewCatalogService(cfg, store, pub), pub
}
