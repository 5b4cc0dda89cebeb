package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func TestServeIndex(t *testing.T) {
	webFS := fstest.MapFS{
		"index.html":       {Data: []byte("<html>histviz</html>")},
		"static/js/app.js": {Data: []byte("console.log(1)")},
	}

	w := httptest.NewRecorder()
	ServeIndex(webFS)(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "<html>histviz</html>", w.Body.String())

	w = httptest.NewRecorder()
	StaticFiles(webFS).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/js/app.js", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())
}

func TestServeIndex_Missing(t *testing.T) {
	w := httptest.NewRecorder()
	ServeIndex(fstest.MapFS{})(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
