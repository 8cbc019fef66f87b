package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlasid/oid-service/internal/generator"
	"github.com/atlasid/oid-service/pkg/oid"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	src := oid.NewSource(
		oid.WithHostname("test-host"),
		oid.WithPID(99),
		oid.WithClock(func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }),
		oid.WithCounterSeed(0),
	)
	nanoid, err := generator.NewNanoIDGenerator(generator.DefaultNanoIDSize, generator.DefaultNanoIDAlphabet)
	require.NoError(t, err)

	return NewRouter(zerolog.Nop(), map[string]generator.Generator{
		generator.SchemeObjectID: generator.NewObjectIDGenerator(src),
		generator.SchemeULID:     generator.NewULIDGenerator(),
		generator.SchemeNanoID:   nanoid,
	})
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

func TestGenerateDefaultsToObjectID(t *testing.T) {
	r := testRouter(t)

	w, body := doJSON(t, r, http.MethodPost, "/api/v1/ids", "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "objectid", data["type"])

	ids := data["ids"].([]any)
	require.Len(t, ids, 1)
	assert.True(t, oid.IsValid(ids[0].(string)))
}

func TestGenerateBatch(t *testing.T) {
	r := testRouter(t)

	w, body := doJSON(t, r, http.MethodPost, "/api/v1/ids", `{"type":"objectid","count":5}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	data := body["data"].(map[string]any)
	ids := data["ids"].([]any)
	require.Len(t, ids, 5)

	seen := make(map[string]struct{})
	for _, id := range ids {
		seen[id.(string)] = struct{}{}
	}
	assert.Len(t, seen, 5)
}

func TestGenerateRejectsOversizedBatch(t *testing.T) {
	r := testRouter(t)

	w, body := doJSON(t, r, http.MethodPost, "/api/v1/ids", `{"count":1001}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])

	errInfo := body["error"].(map[string]any)
	assert.Contains(t, errInfo["message"], "between 1 and 1000")
}

func TestGenerateRejectsMalformedBody(t *testing.T) {
	r := testRouter(t)

	w, body := doJSON(t, r, http.MethodPost, "/api/v1/ids", `{"count":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	errInfo := body["error"].(map[string]any)
	assert.Contains(t, errInfo["message"], "invalid request body")
	assert.NotContains(t, errInfo["message"], "between 1 and 1000")
}

// failingGenerator stands in for a scheme whose entropy source is broken.
type failingGenerator struct{}

func (failingGenerator) Generate() (string, error) {
	return "", errors.New("entropy exhausted")
}

func (failingGenerator) GenerateBatch(int) ([]string, error) {
	return nil, errors.New("entropy exhausted")
}

func (failingGenerator) Validate(string) (bool, string) {
	return false, "broken scheme"
}

func (failingGenerator) Parse(string) (*generator.Fields, error) {
	return nil, errors.New("broken scheme")
}

func TestGenerateFailureReturnsInternalError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(zerolog.Nop(), map[string]generator.Generator{
		generator.SchemeObjectID: failingGenerator{},
	})

	w, body := doJSON(t, r, http.MethodPost, "/api/v1/ids", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, body["success"])

	errInfo := body["error"].(map[string]any)
	assert.Contains(t, errInfo["message"], "failed to generate")
}

func TestGenerateRejectsUnknownScheme(t *testing.T) {
	r := testRouter(t)

	w, body := doJSON(t, r, http.MethodPost, "/api/v1/ids", `{"type":"snowflake"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	errInfo := body["error"].(map[string]any)
	assert.Contains(t, errInfo["message"], "unknown scheme")
}

func TestValidateEndpoint(t *testing.T) {
	r := testRouter(t)

	w, body := doJSON(t, r, http.MethodPost, "/api/v1/ids/validate",
		`{"type":"objectid","id":"0123456789ab0123456789ab"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["valid"])

	w, body = doJSON(t, r, http.MethodPost, "/api/v1/ids/validate",
		`{"type":"objectid","id":"nope"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	data = body["data"].(map[string]any)
	assert.Equal(t, false, data["valid"])
	assert.NotEmpty(t, data["reason"])
}

func TestValidateRequiresID(t *testing.T) {
	r := testRouter(t)

	w, body := doJSON(t, r, http.MethodPost, "/api/v1/ids/validate", `{"type":"objectid"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	errInfo := body["error"].(map[string]any)
	assert.Contains(t, errInfo["message"], "id is required")
}

func TestParseEndpoint(t *testing.T) {
	r := testRouter(t)

	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	id := oid.NewFromTime(ts)

	w, body := doJSON(t, r, http.MethodGet, "/api/v1/ids/"+id.Hex(), "")
	assert.Equal(t, http.StatusOK, w.Code)

	data := body["data"].(map[string]any)
	assert.Equal(t, id.Hex(), data["id"])

	fields := data["fields"].(map[string]any)
	parsedTime, err := time.Parse(time.RFC3339, fields["time"].(string))
	require.NoError(t, err)
	assert.True(t, ts.Equal(parsedTime))

	// Query-only IDs carry zero pid and counter; both must still render.
	assert.Equal(t, float64(0), fields["pid"])
	assert.Equal(t, float64(0), fields["counter"])
}

func TestParseRejectsMalformedID(t *testing.T) {
	r := testRouter(t)

	w, body := doJSON(t, r, http.MethodGet, "/api/v1/ids/not-a-real-id", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, false, body["success"])
}

func TestHealth(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
