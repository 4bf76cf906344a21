package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"strconv"
	"strings"

	"github.com/rook-computer/halftone/internal/card"
	"github.com/rook-computer/halftone/internal/halftone"
	"github.com/rook-computer/halftone/internal/render"
	"github.com/rook-computer/halftone/internal/state"
)

const (
	defaultPatternSize = 400
	maxPatternSize     = 4096
	exportFilename     = "halftone-card.png"
	deckFilename       = "halftone-cards.png"
	maxBodyBytes       = 64 << 10
)

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// APIV1Deps are the collaborators of the API handlers.
type APIV1Deps struct {
	Store    *state.Store
	Composer *card.Composer
	Logger   sysLogger
}

func (d APIV1Deps) withDefaults() APIV1Deps {
	out := d
	if out.Store == nil {
		out.Store = state.NewStore()
	}
	if out.Composer == nil {
		out.Composer = &card.Composer{}
	}
	return out
}

func apiV1Router(deps APIV1Deps) http.Handler {
	deps = deps.withDefaults()
	mux := http.NewServeMux()
	mux.HandleFunc("/settings", func(w http.ResponseWriter, r *http.Request) { handleSettings(w, r, deps) })
	mux.HandleFunc("/settings/pattern", func(w http.ResponseWriter, r *http.Request) { handlePattern(w, r, deps) })
	mux.HandleFunc("/cards/", func(w http.ResponseWriter, r *http.Request) { handleCards(w, r, deps) })
	mux.HandleFunc("/deck.png", func(w http.ResponseWriter, r *http.Request) { handleDeck(w, r, deps) })
	mux.HandleFunc("/pattern.png", func(w http.ResponseWriter, r *http.Request) { handlePatternImage(w, r, deps, "png") })
	mux.HandleFunc("/pattern.svg", func(w http.ResponseWriter, r *http.Request) { handlePatternImage(w, r, deps, "svg") })
	mux.HandleFunc("/pattern/stats", func(w http.ResponseWriter, r *http.Request) { handlePatternImage(w, r, deps, "stats") })
	return mux
}

func handleSettings(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, deps.Store.Snapshot())
}

// handlePattern merges the body into the current pattern settings; omitted
// fields keep their value.
func handlePattern(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, deps.Store.Snapshot().Pattern)
	case http.MethodPut:
		pattern := deps.Store.Snapshot().Pattern
		if err := decodeBody(w, r, &pattern); err != nil {
			writeAPIError(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		stored := deps.Store.UpdatePattern(pattern)
		logInfof(deps.Logger, "pattern updated: dot=%d spacing=%d threshold=%d noise=%.2f",
			stored.DotSize, stored.Spacing, stored.Threshold, stored.Noise)
		writeJSON(w, http.StatusOK, stored)
	default:
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

// handleCards serves:
//
//	GET /cards/{n}      -> card settings
//	PUT /cards/{n}      -> merge card settings
//	GET /cards/{n}.png  -> card export (?scale=1..4)
func handleCards(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	name := strings.TrimPrefix(r.URL.Path, "/cards/")
	export := strings.HasSuffix(name, ".png")
	name = strings.TrimSuffix(name, ".png")

	n, err := strconv.Atoi(name)
	snap := deps.Store.Snapshot()
	if err != nil || n < 1 || n > len(snap.Cards) {
		writeAPIError(w, http.StatusNotFound, "card_not_found", fmt.Sprintf("no card %q", name))
		return
	}
	current := snap.Cards[n-1]

	if export {
		if r.Method != http.MethodGet {
			writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
			return
		}
		res, err := deps.Composer.Compose(current, snap.Pattern)
		if err != nil {
			writeAPIError(w, http.StatusInternalServerError, "render_failed", err.Error())
			return
		}
		writePNG(w, card.Scale(res.Image, scaleParam(r)), exportFilename, deps.Logger)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, current)
	case http.MethodPut:
		if err := decodeBody(w, r, &current); err != nil {
			writeAPIError(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		if !deps.Store.UpdateCard(n-1, current) {
			writeAPIError(w, http.StatusNotFound, "card_not_found", fmt.Sprintf("no card %d", n))
			return
		}
		logInfof(deps.Logger, "card %d updated", n)
		writeJSON(w, http.StatusOK, deps.Store.Snapshot().Cards[n-1])
	default:
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

func handleDeck(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	res, err := deps.Composer.ComposeDeck(deps.Store.Snapshot())
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "render_failed", err.Error())
		return
	}
	writePNG(w, card.Scale(res.Image, scaleParam(r)), deckFilename, deps.Logger)
}

// handlePatternImage renders the bare pattern of a card onto a w x h surface.
func handlePatternImage(w http.ResponseWriter, r *http.Request, deps APIV1Deps, format string) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	query := r.URL.Query()
	width, err := sizeParam(query.Get("w"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "bad_request", "w: "+err.Error())
		return
	}
	height, err := sizeParam(query.Get("h"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "bad_request", "h: "+err.Error())
		return
	}

	snap := deps.Store.Snapshot()
	cardIndex := 1
	if raw := query.Get("card"); raw != "" {
		cardIndex, err = strconv.Atoi(raw)
		if err != nil || cardIndex < 1 || cardIndex > len(snap.Cards) {
			writeAPIError(w, http.StatusNotFound, "card_not_found", fmt.Sprintf("no card %q", raw))
			return
		}
	}
	if len(snap.Cards) == 0 {
		writeAPIError(w, http.StatusNotFound, "card_not_found", "no cards configured")
		return
	}
	params := card.PatternParams(snap.Pattern, snap.Cards[cardIndex-1].Color)
	if hex := query.Get("color"); hex != "" {
		params.Color = halftone.ParseHexColor(hex)
	}

	switch format {
	case "svg":
		surface := render.NewSVGSurface(width, height)
		deps.Composer.Renderer.Render(surface, params)
		var buf bytes.Buffer
		if _, err := surface.WriteTo(&buf); err != nil {
			writeAPIError(w, http.StatusInternalServerError, "render_failed", err.Error())
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	case "stats":
		writeJSON(w, http.StatusOK, deps.Composer.Renderer.Render(render.NewRasterSurface(width, height), params))
	default:
		surface := render.NewRasterSurface(width, height)
		deps.Composer.Renderer.Render(surface, params)
		writePNG(w, surface.Image(), "", deps.Logger)
	}
}

func sizeParam(raw string) (int, error) {
	if raw == "" {
		return defaultPatternSize, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", raw)
	}
	if v < 1 || v > maxPatternSize {
		return 0, fmt.Errorf("must be within [1, %d]", maxPatternSize)
	}
	return v, nil
}

func scaleParam(r *http.Request) int {
	v, err := strconv.Atoi(r.URL.Query().Get("scale"))
	if err != nil {
		return 1
	}
	return card.ClampScale(v)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// writePNG encodes before writing headers so encode errors still map to JSON.
func writePNG(w http.ResponseWriter, img image.Image, filename string, logger sysLogger) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		if logger != nil {
			logger.Errorf("web", "png encode: %v", err)
		}
		writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if filename != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func logInfof(logger sysLogger, format string, args ...interface{}) {
	if logger != nil {
		logger.Infof("web", format, args...)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
