package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bassTab = `G|--------5-|
D|--0-------|
A|--------3-|
E|----------|
`

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(gin.New())
}

func do(t *testing.T, r *gin.Engine, req *http.Request) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func TestHealth(t *testing.T) {
	r := newTestRouter()
	for _, path := range []string{"/health", "/api/v1/health"} {
		w, body := do(t, r, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", body["status"])
	}
}

func TestListInstruments(t *testing.T) {
	w, body := do(t, newTestRouter(), httptest.NewRequest(http.MethodGet, "/api/v1/instruments", nil))
	require.Equal(t, http.StatusOK, w.Code)

	list, ok := body["instruments"].([]interface{})
	require.True(t, ok)
	require.Len(t, list, 2)
	first := list[0].(map[string]interface{})
	assert.Equal(t, "bass4", first["id"])
	assert.EqualValues(t, 4, first["strings"])
}

func TestListNamings(t *testing.T) {
	w, body := do(t, newTestRouter(), httptest.NewRequest(http.MethodGet, "/api/v1/namings", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{"english", "german", "latin"}, body["namings"])
}

func TestTabToNotesRawBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/convert/tab2notes?naming=english", strings.NewReader(bassTab))
	req.Header.Set("Content-Type", "text/plain")
	w, body := do(t, newTestRouter(), req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []interface{}{"D3 C4+C3"}, body["lines"])
	assert.Equal(t, "bass4", body["instrument"])
	assert.Equal(t, "english", body["naming"])
	assert.EqualValues(t, 4, body["strings"])
	assert.NotEmpty(t, body["id"])
}

func TestTabToNotesMultipart(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "riff.tab")
	require.NoError(t, err)
	_, err = fw.Write([]byte(bassTab))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/convert/tab2notes?naming=latin&transpose=1", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w, body := do(t, newTestRouter(), req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []interface{}{"Re#3 Do#4+Do#3"}, body["lines"])
}

func TestTabToNotesErrors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		body   string
		status int
		kind   string
	}{
		{"instrument mismatch", "?instrument=guitar6", bassTab, http.StatusUnprocessableEntity, "instrument_mismatch"},
		{"inconsistent", "", bassTab + "\nG|----------|\n", http.StatusUnprocessableEntity, "inconsistent_structure"},
		{"unknown naming", "?naming=klingon", bassTab, http.StatusBadRequest, "unknown_language"},
		{"unknown instrument", "?instrument=banjo", bassTab, http.StatusBadRequest, "unknown_instrument"},
		{"bad transpose", "?transpose=up", bassTab, http.StatusBadRequest, "invalid_input_type"},
		{"out of range", "?transpose=100", bassTab, http.StatusUnprocessableEntity, "pitch_out_of_range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/convert/tab2notes"+tt.query, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "text/plain")
			w, body := do(t, newTestRouter(), req)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.kind, body["kind"])
			assert.Nil(t, body["lines"])
		})
	}
}

func TestTabToNotesEmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/convert/tab2notes", strings.NewReader(""))
	req.Header.Set("Content-Type", "text/plain")
	w, _ := do(t, newTestRouter(), req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTabToMIDI(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/convert/tab2midi", strings.NewReader(bassTab))
	req.Header.Set("Content-Type", "text/plain")
	w, _ := do(t, newTestRouter(), req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "audio/midi", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "converted.mid")
	assert.Equal(t, "MThd", w.Body.String()[:4])
}

func TestNoteName(t *testing.T) {
	r := newTestRouter()

	w, body := do(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/notes/H0", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 11, body["pitch"])
	assert.Equal(t, "german", body["naming"])

	w, body = do(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/notes/Z8", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_note_name", body["kind"])

	w, body = do(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/notes/A10", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "pitch_out_of_range", body["kind"])
}

func TestPitch(t *testing.T) {
	r := newTestRouter()

	w, body := do(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/pitches/60?naming=english", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "C5", body["name"])

	w, body = do(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/pitches/127", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Sol10", body["name"])

	w, body = do(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/pitches/128", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "pitch_out_of_range", body["kind"])

	w, body = do(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/pitches/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_input_type", body["kind"])
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/convert/tab2notes", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
