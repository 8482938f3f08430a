package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"palette-grab/internal/config"
	"palette-grab/internal/service"
	"palette-grab/internal/ws"
)

func NewRouter(
	cfg config.Config,
	hub *ws.Hub,
	catalog *service.CatalogService,
	sampler *service.SamplerService,
	reports *service.ReportService,
) http.Handler {
	h := &Handler{
		cfg:     cfg,
		hub:     hub,
		catalog: catalog,
		sampler: sampler,
		reports: reports,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return originAllowed(r.Header.Get("Origin"), cfg.AllowedOrigins)
			},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.Healthz)
	mux.HandleFunc("/v1/ws", h.WebSocket)

	mux.HandleFunc("/v1/colors/report", h.Report)
	mux.HandleFunc("/v1/colors/convert", h.Convert)
	mux.HandleFunc("/v1/colors/harmonies", h.Harmonies)
	mux.HandleFunc("/v1/colors/tints", h.Tints)
	mux.HandleFunc("/v1/colors/shades", h.Shades)
	mux.HandleFunc("/v1/colors/name", h.ColorName)
	mux.HandleFunc("/v1/colors/similar", h.Similar)
	mux.HandleFunc("/v1/contrast", h.Contrast)
	mux.HandleFunc("/v1/contrast/fix", h.FixContrast)
	mux.HandleFunc("/v1/sample", h.Sample)

	mux.HandleFunc("/v1/history", h.History)
	mux.HandleFunc("/v1/palettes", h.Palettes)
	mux.HandleFunc("/v1/palettes/{id}", h.Palette)
	mux.HandleFunc("/v1/palettes/{id}/duplicate", h.DuplicatePalette)
	mux.HandleFunc("/v1/palettes/{id}/colors", h.PaletteColors)
	mux.HandleFunc("/v1/palettes/{id}/colors/{colorID}", h.PaletteColor)
	mux.HandleFunc("/v1/palettes/{id}/export", h.ExportPalette)
	mux.HandleFunc("/v1/settings", h.Settings)

	return withCORS(cfg.AllowedOrigins, limitBody(cfg.MaxUploadSizeBytes, mux))
}

func limitBody(maxSize int64, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxSize)
		next.ServeHTTP(w, r)
	})
}

// withCORS rejects browser requests from origins outside allowed and answers
// preflight requests. An empty allow list admits every origin.
func withCORS(allowed []string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}
		if !originAllowed(origin, allowed) {
			writeErr(w, http.StatusForbidden, errOriginNotAllowed(origin))
			return
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length")
		w.Header().Set("Vary", "Origin")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func cleanOrigin(origin string) string {
	for _, scheme := range []string{"https://", "http://", "wss://", "ws://"} {
		origin = strings.TrimPrefix(origin, scheme)
	}
	if idx := strings.Index(origin, "/"); idx != -1 {
		origin = origin[:idx]
	}
	return origin
}

func originAllowed(origin string, allowed []string) bool {
	if origin == "" || len(allowed) == 0 {
		return true
	}
	want := cleanOrigin(origin)
	for _, a := range allowed {
		if cleanOrigin(a) == want {
			return true
		}
	}
	return false
}
