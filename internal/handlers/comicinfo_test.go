package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mushishi06/nhentai-archivist/internal/comicinfo"
)

const galleryJSON = `{"id":12345,"title":{"pretty":"Sample Title"},"upload_date":1688428800,"scanlator":"ScanGroup",
"tags":[{"type":"artist","name":"Alice"},{"type":"group","name":"BigGroup"},{"type":"character","name":"Bob"},
{"type":"category","name":"doujinshi"},{"type":"language","name":"english"}]}`

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthcheck(t *testing.T) {
	rec := do(t, NewRouter(New(), nil), http.MethodGet, "/healthcheck", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestCreateAndGetComicInfo(t *testing.T) {
	router := NewRouter(New(), nil)

	rec := do(t, router, http.MethodPost, "/api/comicinfo", galleryJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "/api/comicinfo/12345", rec.Header().Get("Location"))
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/xml")

	ci, err := comicinfo.Unmarshal(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "[12345] Sample Title", ci.Series)
	require.NotNil(t, ci.Tags)
	assert.Equal(t, "Bob,doujinshi,english", *ci.Tags)
	assert.Equal(t, "en", ci.LanguageISO)

	rec = do(t, router, http.MethodGet, "/api/comicinfo/12345", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<Web>https://nhentai.net/g/12345/</Web>")

	rec = do(t, router, http.MethodGet, "/api/comicinfo/12345?format=json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var asJSON map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &asJSON))
	assert.Equal(t, "Adults Only 18+", asJSON["AgeRating"])

	rec = do(t, router, http.MethodGet, "/api/comicinfo", "")
	assert.JSONEq(t, `{"ids":[12345]}`, rec.Body.String())

	rec = do(t, router, http.MethodDelete, "/api/comicinfo/12345", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/comicinfo/12345", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateComicInfoErrors(t *testing.T) {
	router := NewRouter(New(), nil)

	tests := []struct {
		name string
		body string
		code int
	}{
		{name: "not json", body: "nope", code: http.StatusBadRequest},
		{name: "array of two", body: `[{"id":1,"upload_date":0},{"id":2,"upload_date":0}]`, code: http.StatusBadRequest},
		{name: "empty body", body: "", code: http.StatusBadRequest},
		{name: "missing id", body: `{"upload_date":0}`, code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/api/comicinfo", tt.body)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestGetComicInfoInvalidID(t *testing.T) {
	router := NewRouter(New(), nil)

	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/api/comicinfo/abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodDelete, "/api/comicinfo/-1", "").Code)
}

func TestCombineTags(t *testing.T) {
	router := NewRouter(New(), nil)

	body := `{"tags":[{"type":"tag","name":"b"},{"type":"tag","name":"a"},{"type":"artist","name":"x"}],"types":["tag"],"display_type":true}`
	rec := do(t, router, http.MethodPost, "/api/tags/combine", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"value":"tag: a,tag: b"}`, rec.Body.String())

	rec = do(t, router, http.MethodPost, "/api/tags/combine", `{"tags":[],"types":["tag"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"value":null}`, rec.Body.String())

	rec = do(t, router, http.MethodPost, "/api/tags/combine", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLanguage(t *testing.T) {
	router := NewRouter(New(), nil)

	body := `{"tags":[{"type":"language","name":"chinese"},{"type":"language","name":"english"}]}`
	rec := do(t, router, http.MethodPost, "/api/tags/language", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"language_iso":"en"}`, rec.Body.String())
}

func TestCORS(t *testing.T) {
	router := NewRouter(New(), []string{"https://komga.example.org"})

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set("Origin", "https://komga.example.org")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "https://komga.example.org", rec.Header().Get("Access-Control-Allow-Origin"))
}
