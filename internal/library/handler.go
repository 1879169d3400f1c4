package library

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/inamate/svgpath/internal/auth"
	"github.com/inamate/svgpath/internal/canvas"
	"github.com/inamate/svgpath/internal/engine"
	"github.com/inamate/svgpath/internal/geom"
	"github.com/inamate/svgpath/internal/pathdata"
	"github.com/inamate/svgpath/internal/raster"
)

const (
	defaultPadding = 1
	defaultFill    = "#000000"
	// bodyOverhead is the JSON envelope allowed on top of the path data.
	bodyOverhead = 4096
)

type Handler struct {
	service       *Service
	maxRasterSize int
}

func NewHandler(service *Service, maxRasterSize int) *Handler {
	return &Handler{service: service, maxRasterSize: maxRasterSize}
}

type pathRequest struct {
	Name string `json:"name"`
	D    string `json:"d"`
}

type parseResponse struct {
	Commands   pathdata.Path  `json:"commands"`
	Normalized string         `json:"normalized"`
	Counts     map[string]int `json:"counts"`
}

type parseErrorResponse struct {
	Error     string `json:"error"`
	Remaining string `json:"remaining"`
	Offset    int    `json:"offset"`
}

type rasterRequest struct {
	D           string  `json:"d"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Padding     *int    `json:"padding"`
	Background  string  `json:"background"`
	Fill        *string `json:"fill"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
}

// Routes registers the stateless endpoints on public and the saved-path
// endpoints on api, which must already be authenticated.
func (h *Handler) Routes(public, api *mux.Router) {
	public.HandleFunc("/paths/parse", h.Parse).Methods("POST")
	public.HandleFunc("/paths/render", h.Render).Methods("POST")
	public.HandleFunc("/paths/render.png", h.RenderPNG).Methods("POST")

	api.HandleFunc("/paths", h.List).Methods("GET")
	api.HandleFunc("/paths", h.Create).Methods("POST")
	api.HandleFunc("/paths/{pathId}", h.Get).Methods("GET")
	api.HandleFunc("/paths/{pathId}", h.Update).Methods("PUT")
	api.HandleFunc("/paths/{pathId}", h.Delete).Methods("DELETE")
	api.HandleFunc("/paths/{pathId}/render", h.RenderSaved).Methods("GET")
}

// Parse handles POST /paths/parse.
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	var req pathRequest
	if !h.decode(w, r, &req) {
		return
	}

	render, err := h.service.RenderData(req.D)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, parseResponse{
		Commands:   render.Commands,
		Normalized: render.Commands.String(),
		Counts:     render.Commands.Counts(),
	})
}

// Render handles POST /paths/render.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	var req pathRequest
	if !h.decode(w, r, &req) {
		return
	}

	render, err := h.service.RenderData(req.D)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, render)
}

// RenderPNG handles POST /paths/render.png. The path is translated so its
// bounds sit inside the padding; a zero width or height is sized to fit.
func (h *Handler) RenderPNG(w http.ResponseWriter, r *http.Request) {
	var req rasterRequest
	if !h.decode(w, r, &req) {
		return
	}

	render, err := h.service.RenderData(req.D)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	pad := defaultPadding
	if req.Padding != nil {
		pad = max(0, *req.Padding)
	}
	if req.Width == 0 {
		req.Width = int(math.Ceil(render.Bounds.Width)) + 2*pad
	}
	if req.Height == 0 {
		req.Height = int(math.Ceil(render.Bounds.Height)) + 2*pad
	}
	fill := defaultFill
	if req.Fill != nil {
		fill = *req.Fill
	}

	cmd := engine.DrawCommand{
		Op:          "path",
		Transform:   geom.Identity().ToSlice(),
		Path:        render.Ops,
		Fill:        fill,
		Stroke:      req.Stroke,
		StrokeWidth: req.StrokeWidth,
		Opacity:     1,
	}
	img, err := raster.Render([]engine.DrawCommand{cmd}, raster.Options{
		Width:      req.Width,
		Height:     req.Height,
		Background: req.Background,
		Transform:  geom.Translate(float64(pad)-render.Bounds.X, float64(pad)-render.Bounds.Y),
		MaxSize:    h.maxRasterSize,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if err := raster.EncodePNG(w, img); err != nil {
		slog.Error("write png failed", "error", err)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req pathRequest
	if !h.decode(w, r, &req) {
		return
	}

	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	path, err := h.service.Create(r.Context(), req.Name, req.D, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, path)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	pathID := mux.Vars(r)["pathId"]

	path, err := h.service.Get(r.Context(), pathID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, path)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	paths, err := h.service.List(r.Context(), userID)
	if err != nil {
		slog.Error("list paths failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, paths)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	pathID := mux.Vars(r)["pathId"]

	var req pathRequest
	if !h.decode(w, r, &req) {
		return
	}

	path, err := h.service.Update(r.Context(), pathID, userID, req.Name, req.D)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, path)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	pathID := mux.Vars(r)["pathId"]

	if err := h.service.Delete(r.Context(), pathID, userID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RenderSaved handles GET /api/paths/{pathId}/render.
func (h *Handler) RenderSaved(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	pathID := mux.Vars(r)["pathId"]

	render, err := h.service.Render(r.Context(), pathID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, render)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if h.service.maxLength > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, int64(h.service.maxLength+bodyOverhead))
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
			return false
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

func handleServiceError(w http.ResponseWriter, err error) {
	var perr *pathdata.ParseError
	switch {
	case errors.As(err, &perr):
		writeJSON(w, http.StatusUnprocessableEntity, parseErrorResponse{
			Error:     perr.Error(),
			Remaining: perr.Remaining,
			Offset:    perr.Offset,
		})
	case errors.Is(err, canvas.ErrInvalidCoordinate), errors.Is(err, canvas.ErrInvalidMatrix):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrTooLong):
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": err.Error()})
	case errors.Is(err, raster.ErrInvalidSize):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
	default:
		slog.Error("service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
