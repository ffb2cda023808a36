package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mushishi06/nhentai-archivist/internal/comicinfo"
	"github.com/mushishi06/nhentai-archivist/internal/storage"
)

// maxBodyBytes bounds request bodies; a gallery with a few hundred tags is far below it.
const maxBodyBytes = 1 << 20

type Handler struct {
	store *storage.ComicInfoStore
}

func New() *Handler {
	return &Handler{
		store: storage.New(),
	}
}

// NewRouter wires the API routes. CORS is enabled only when allowedOrigins is non-empty.
func NewRouter(h *Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(loggingMiddleware)

	if len(allowedOrigins) > 0 {
		c := cors.New(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Accept"},
		})
		r.Use(c.Handler)
	}

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/comicinfo", h.HandleCreateComicInfo)
		r.Get("/comicinfo", h.HandleListComicInfo)
		r.Get("/comicinfo/{id}", h.HandleGetComicInfo)
		r.Delete("/comicinfo/{id}", h.HandleDeleteComicInfo)
		r.Post("/tags/combine", h.HandleCombineTags)
		r.Post("/tags/language", h.HandleLanguage)
	})

	return r
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start).String())
	})
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeXML(w http.ResponseWriter, ci comicinfo.ComicInfo) {
	data, err := comicinfo.Marshal(ci)
	if err != nil {
		h.writeError(w, "Unable to encode ComicInfo: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	if _, err := w.Write(data); err != nil {
		slog.Error("Unable to write XML response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message, "status", code)
	http.Error(w, message, code)
}
