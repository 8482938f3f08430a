package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"
	"palette-grab/internal/colorkit"
	"palette-grab/internal/config"
	"palette-grab/internal/model"
	"palette-grab/internal/service"
	"palette-grab/internal/storage"
	"palette-grab/internal/ws"
)

type Handler struct {
	cfg      config.Config
	hub      *ws.Hub
	catalog  *service.CatalogService
	sampler  *service.SamplerService
	reports  *service.ReportService
	upgrader websocket.Upgrader
}

type apiError struct {
	Error string `json:"error"`
}

func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, errors.New("websocket requires GET"))
		return
	}
	if !websocket.IsWebSocketUpgrade(r) {
		writeErr(w, http.StatusBadRequest, errors.New("websocket upgrade required"))
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: remote=%s uri=%s err=%v", r.RemoteAddr, r.RequestURI, err)
		return
	}
	client := ws.NewClient(h.hub, conn, ws.ParseTopics(r.URL.Query().Get("topics")))
	h.hub.Publish("ws.client_connected", map[string]string{"id": client.ID})
	h.hub.Register(client)
	go client.WritePump()
	go client.ReadPump()
}

func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	report, err := h.reports.Build(r.URL.Query().Get("hex"))
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	conv, err := service.Convert(r.URL.Query().Get("hex"))
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

// Harmonies returns every harmony, or one when kind is set. Unparseable hex
// degrades to single-color harmonies rather than an error.
func (h *Handler) Harmonies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	q := r.URL.Query()
	hex := q.Get("hex")
	kindName := strings.TrimSpace(q.Get("kind"))
	if kindName == "" {
		writeJSON(w, http.StatusOK, colorkit.AllHarmonies(hex))
		return
	}
	kind, ok := colorkit.ParseHarmonyKind(kindName)
	if !ok {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("unknown harmony kind %q", kindName))
		return
	}
	if kind == colorkit.Monochromatic {
		count, err := stepCount(q.Get("count"), colorkit.DefaultMonochromaticCount)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, colorkit.MonochromaticN(hex, count))
		return
	}
	writeJSON(w, http.StatusOK, colorkit.Generate(kind, hex))
}

func (h *Handler) Tints(w http.ResponseWriter, r *http.Request) {
	h.ramp(w, r, colorkit.Tints)
}

func (h *Handler) Shades(w http.ResponseWriter, r *http.Request) {
	h.ramp(w, r, colorkit.Shades)
}

func (h *Handler) ramp(w http.ResponseWriter, r *http.Request, fn func(string, int) []string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	q := r.URL.Query()
	hex := q.Get("hex")
	count, err := stepCount(q.Get("count"), colorkit.DefaultRampCount)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"hex":    hex,
		"colors": fn(hex, count),
	})
}

func (h *Handler) ColorName(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	hex := r.URL.Query().Get("hex")
	if _, ok := colorkit.HexToRGB(hex); !ok {
		writeServiceErr(w, fmt.Errorf("%w: %q", service.ErrInvalidHex, hex))
		return
	}
	nearest := colorkit.Nearest(hex)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"hex":     hex,
		"name":    colorkit.Name(hex),
		"family":  colorkit.Family(hex),
		"nearest": nearest,
		"delta_e": colorkit.PerceptualDistance(hex, nearest.Hex),
	})
}

func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req struct {
		Target      string               `json:"target"`
		Candidates  []colorkit.Candidate `json:"candidates"`
		MaxDistance float64              `json:"max_distance"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	if _, ok := colorkit.HexToRGB(req.Target); !ok {
		writeServiceErr(w, fmt.Errorf("%w: %q", service.ErrInvalidHex, req.Target))
		return
	}
	if req.MaxDistance <= 0 {
		req.MaxDistance = h.cfg.SimilarMaxDistance
	}
	var matches []colorkit.Match
	if len(req.Candidates) == 0 {
		matches = h.catalog.SimilarInHistory(req.Target, req.MaxDistance)
	} else {
		matches = colorkit.FindSimilar(req.Target, req.Candidates, req.MaxDistance)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"target": req.Target, "matches": matches})
}

// Contrast grades fg on bg. Malformed colors yield a ratio of 1.
func (h *Handler) Contrast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	q := r.URL.Query()
	fg := q.Get("fg")
	bg := q.Get("bg")
	pair := service.ContrastAgainst(fg, bg)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"foreground":     fg,
		"background":     bg,
		"result":         pair.Result,
		"formatted":      pair.Formatted,
		"suggested_text": colorkit.SuggestedTextColor(bg),
	})
}

func (h *Handler) FixContrast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req struct {
		Foreground  string  `json:"foreground"`
		Background  string  `json:"background"`
		TargetRatio float64 `json:"target_ratio"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	if req.TargetRatio == 0 {
		req.TargetRatio = h.cfg.ContrastTarget
	}
	if req.TargetRatio < 1 || req.TargetRatio > 21 {
		writeErr(w, http.StatusBadRequest, errors.New("target_ratio must be in [1,21]"))
		return
	}
	adjusted := colorkit.FixContrast(req.Foreground, req.Background, req.TargetRatio)
	pair := service.ContrastAgainst(adjusted, req.Background)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"foreground":   req.Foreground,
		"background":   req.Background,
		"target_ratio": req.TargetRatio,
		"adjusted":     adjusted,
		"changed":      adjusted != req.Foreground,
		"result":       pair.Result,
		"formatted":    pair.Formatted,
	})
}

func (h *Handler) Sample(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if err := r.ParseMultipartForm(h.cfg.MaxUploadSizeBytes); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	file, fileHeader, err := r.FormFile("image")
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	defer file.Close()

	if err := validateImageUpload(fileHeader); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	frame, err := io.ReadAll(file)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}

	req := service.SampleRequest{Radius: -1, Note: r.FormValue("note")}
	if req.X, err = optionalInt(r.FormValue("x")); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("x: %w", err))
		return
	}
	if req.Y, err = optionalInt(r.FormValue("y")); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("y: %w", err))
		return
	}
	if v := strings.TrimSpace(r.FormValue("radius")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeErr(w, http.StatusBadRequest, errors.New("radius must be a non-negative integer"))
			return
		}
		req.Radius = n
	}
	req.Save, _ = strconv.ParseBool(r.FormValue("save"))

	sample, err := h.sampler.SampleFrame(frame, req)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sample)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.catalog.ListHistory())
	case http.MethodPost:
		var req struct {
			Hex      string `json:"hex"`
			ImageURL string `json:"image_url"`
			Note     string `json:"note"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		rec, err := h.catalog.AddColorToHistory(req.Hex, req.ImageURL, req.Note)
		if err != nil {
			writeServiceErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, rec)
	case http.MethodDelete:
		if err := h.catalog.ClearHistory(); err != nil {
			writeServiceErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}

func (h *Handler) Palettes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.catalog.ListPalettes())
	case http.MethodPost:
		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		p, err := h.catalog.CreatePalette(req.Name)
		if err != nil {
			writeServiceErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, p)
	default:
		methodNotAllowed(w)
	}
}

func (h *Handler) Palette(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	switch r.Method {
	case http.MethodGet:
		p, err := h.catalog.GetPalette(id)
		if err != nil {
			writeServiceErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodDelete:
		if err := h.catalog.DeletePalette(id); err != nil {
			writeServiceErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}

func (h *Handler) DuplicatePalette(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	p, err := h.catalog.DuplicatePalette(r.PathValue("id"))
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// PaletteColors adds a color to a palette, either a saved history record
// (history_id) or a new record built from hex.
func (h *Handler) PaletteColors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req struct {
		HistoryID string `json:"history_id"`
		Hex       string `json:"hex"`
		ImageURL  string `json:"image_url"`
		Note      string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	rec := model.ColorRecord{Hex: req.Hex, ImageURL: req.ImageURL, Note: req.Note}
	if req.HistoryID != "" {
		var err error
		if rec, err = h.catalog.HistoryRecord(req.HistoryID); err != nil {
			writeServiceErr(w, err)
			return
		}
	}
	p, err := h.catalog.AddColorToPalette(r.PathValue("id"), rec)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) PaletteColor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	p, err := h.catalog.RemoveColorFromPalette(r.PathValue("id"), r.PathValue("colorID"))
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) ExportPalette(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	p, err := h.catalog.GetPalette(r.PathValue("id"))
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	format := model.ExportFormat(firstOr(r.URL.Query().Get("format"), string(model.ExportCSS)))
	out, err := service.ExportPalette(p, format)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	w.Header().Set("Content-Type", out.MimeType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, out.Content)
}

func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.catalog.Settings())
	case http.MethodPut:
		var req model.Settings
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		settings, err := h.catalog.UpdateSettings(req)
		if err != nil {
			writeServiceErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, settings)
	default:
		methodNotAllowed(w)
	}
}

func validateImageUpload(header *multipart.FileHeader) error {
	if header == nil {
		return errors.New("image required")
	}
	ct := header.Header.Get("Content-Type")
	if ct != "" && ct != "application/octet-stream" && !strings.HasPrefix(ct, "image/") {
		return fmt.Errorf("unsupported content type %q", ct)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, apiError{Error: err.Error()})
}

func writeServiceErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeErr(w, http.StatusNotFound, err)
	case errors.Is(err, service.ErrInvalidHex),
		errors.Is(err, service.ErrEmptyName),
		errors.Is(err, service.ErrInvalidSettings),
		errors.Is(err, service.ErrUnsupportedFormat),
		errors.Is(err, service.ErrPointOutOfBounds):
		writeErr(w, http.StatusBadRequest, err)
	case errors.Is(err, service.ErrUndecodableFrame):
		writeErr(w, http.StatusUnprocessableEntity, err)
	default:
		log.Printf("internal error: %v", err)
		writeErr(w, http.StatusInternalServerError, err)
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	writeErr(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
}

func errOriginNotAllowed(origin string) error {
	return fmt.Errorf("origin not allowed: %s", cleanOrigin(origin))
}

func firstOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func atoiDefault(v string, d int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return d
	}
	return n
}

// stepCount reads a ramp or monochromatic count, rejecting values above
// colorkit.MaxStepCount.
func stepCount(v string, d int) (int, error) {
	n := atoiDefault(v, d)
	if n > colorkit.MaxStepCount {
		return 0, fmt.Errorf("count must be at most %d", colorkit.MaxStepCount)
	}
	return n, nil
}

func optionalInt(v string) (*int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
