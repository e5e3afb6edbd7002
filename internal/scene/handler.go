package scene

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/inamate/morph/internal/auth"
	"github.com/inamate/morph/internal/document"
	"github.com/inamate/morph/internal/engine"
	"github.com/inamate/morph/internal/raster"
	"github.com/inamate/morph/internal/shape"
)

const maxDocumentSize = 4 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type sceneResponse struct {
	Scene    *Scene                `json:"scene"`
	Document *document.InDocument `json:"document"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentSize))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "document too large"})
		return
	}
	doc, err := document.Parse(data)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	sc, err := h.service.Create(r.Context(), doc, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sc)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sceneID := mux.Vars(r)["sceneId"]

	sc, err := h.service.Get(r.Context(), sceneID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	doc, err := h.service.Document(r.Context(), sceneID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sceneResponse{Scene: sc, Document: doc})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	scenes, err := h.service.List(r.Context())
	if err != nil {
		slog.Error("list scenes failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, scenes)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	sceneID := mux.Vars(r)["sceneId"]

	if err := h.service.Delete(r.Context(), sceneID, userID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Frame(w http.ResponseWriter, r *http.Request) {
	sceneID := mux.Vars(r)["sceneId"]

	t, err := floatParam(r, "t")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid time"})
		return
	}

	cmds, err := h.service.Frame(r.Context(), sceneID, t)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if cmds == nil {
		cmds = []engine.DrawCommand{}
	}

	writeJSON(w, http.StatusOK, cmds)
}

func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	sceneID := mux.Vars(r)["sceneId"]

	t, err := floatParam(r, "t")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid time"})
		return
	}
	width, errW := intParam(r, "w")
	height, errH := intParam(r, "h")
	if errW != nil || errH != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid size"})
		return
	}

	img, err := h.service.Preview(r.Context(), sceneID, t, width, height)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := raster.EncodePNG(&buf, img); err != nil {
		slog.Error("encode preview failed", "error", err, "scene", sceneID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func floatParam(r *http.Request, name string) (float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	return strconv.ParseFloat(v, 64)
}

func intParam(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
	case errors.Is(err, ErrInvalidSize),
		errors.Is(err, document.ErrEmptyTimeline),
		errors.Is(err, document.ErrUnknownShape),
		errors.Is(err, document.ErrInvalidShape),
		errors.Is(err, document.ErrInvalidStep),
		errors.Is(err, document.ErrUnknownEasing),
		errors.Is(err, shape.ErrInvalidColor):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		slog.Error("service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
