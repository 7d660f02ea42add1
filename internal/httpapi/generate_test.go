package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldgen-engine/internal/worldgen/export"
	"worldgen-engine/internal/worldgen/params"
)

func TestGenerateDefaultParamsReturnsMetadata(t *testing.T) {
	p := params.Default()
	p.Size = params.Size256
	body, err := json.Marshal(generateRequest{Params: &p})
	require.NoError(t, err)

	g := &Generator{}
	req := httptest.NewRequest(http.MethodPost, "/v1/generate", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	g.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var meta export.Metadata
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	assert.Equal(t, 256, meta.Width)
	assert.NotEmpty(t, meta.Checksum)
	assert.Equal(t, "geology", meta.CurrentStep)
}

func TestGenerateRejectsInvalidParams(t *testing.T) {
	p := params.Default()
	p.Size = params.MapSize(99)
	body, _ := json.Marshal(generateRequest{Params: &p})

	g := &Generator{}
	req := httptest.NewRequest(http.MethodPost, "/v1/generate", strings.NewReader(string(body)))
	rec := httptest.NewRecorder()

	g.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateDefaultsWhenNoBody(t *testing.T) {
	g := &Generator{}
	req := httptest.NewRequest(http.MethodGet, "/v1/generate", nil)
	rec := httptest.NewRecorder()

	g.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
