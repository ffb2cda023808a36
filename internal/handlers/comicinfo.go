package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mushishi06/nhentai-archivist/internal/comicinfo"
	"github.com/mushishi06/nhentai-archivist/internal/gallery"
)

// HandleCreateComicInfo maps the posted gallery JSON and answers with ComicInfo.xml.
func (h *Handler) HandleCreateComicInfo(w http.ResponseWriter, r *http.Request) {
	galleries, err := gallery.DecodeJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(galleries) != 1 {
		h.writeError(w, "Expected exactly one gallery object", http.StatusBadRequest)
		return
	}

	g := galleries[0]
	ci, err := comicinfo.SafeFromGallery(g)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	h.store.Set(g.ID, ci)
	slog.Info("ComicInfo generated", "id", g.ID, "language", ci.LanguageISO)

	w.Header().Set("Location", "/api/comicinfo/"+strconv.FormatInt(g.ID, 10))
	h.writeXML(w, ci)
}

func (h *Handler) HandleListComicInfo(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]any{"ids": h.store.IDs()})
}

func (h *Handler) HandleGetComicInfo(w http.ResponseWriter, r *http.Request) {
	id, ok := h.galleryID(w, r)
	if !ok {
		return
	}

	ci, exists := h.store.Get(id)
	if !exists {
		h.writeError(w, "ComicInfo not found", http.StatusNotFound)
		return
	}

	if r.URL.Query().Get("format") == "json" {
		h.writeJSON(w, ci)
		return
	}
	h.writeXML(w, ci)
}

func (h *Handler) HandleDeleteComicInfo(w http.ResponseWriter, r *http.Request) {
	id, ok := h.galleryID(w, r)
	if !ok {
		return
	}
	if !h.store.Delete(id) {
		h.writeError(w, "ComicInfo not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type combineRequest struct {
	Tags        []gallery.Tag `json:"tags"`
	Types       []string      `json:"types"`
	DisplayType bool          `json:"display_type"`
}

// HandleCombineTags exposes the tag projection; value is null when no tag matched.
func (h *Handler) HandleCombineTags(w http.ResponseWriter, r *http.Request) {
	var req combineRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	h.writeJSON(w, map[string]*string{
		"value": comicinfo.CombineTags(req.Tags, req.Types, req.DisplayType),
	})
}

// HandleLanguage resolves the ISO code of the posted tags. Types default to "language".
func (h *Handler) HandleLanguage(w http.ResponseWriter, r *http.Request) {
	var req combineRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	types := req.Types
	if len(types) == 0 {
		types = comicinfo.LanguageTypes
	}
	h.writeJSON(w, map[string]string{
		"language_iso": comicinfo.LanguageISO(req.Tags, types),
	})
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.writeError(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return false
		}
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) galleryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, "Invalid gallery id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
