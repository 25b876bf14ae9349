package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/basegen/pkg/cache"
	"github.com/matzehuels/basegen/pkg/pipeline"
)

func testServer() *Server {
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
	return New(runner, logger)
}

func post(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	h := testServer().Router()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestGenerateEndpoint(t *testing.T) {
	h := testServer().Router()
	seed := uint64(42)
	rec := post(t, h, "/generate", pipeline.Options{
		Style:   "pyramid",
		Seed:    &seed,
		Levels:  3,
		Formats: []string{pipeline.FormatJSON, pipeline.FormatDOT},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp generateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Seed != seed {
		t.Errorf("seed = %d, want %d", resp.Seed, seed)
	}
	if resp.Levels != 3 {
		t.Errorf("levels = %d, want 3", resp.Levels)
	}
	if resp.Verts == 0 || resp.Faces == 0 || resp.Rooms == 0 {
		t.Errorf("empty stats: %+v", resp)
	}
	for _, format := range []string{pipeline.FormatJSON, pipeline.FormatDOT} {
		if len(resp.Artifacts[format]) == 0 {
			t.Errorf("missing %s artifact", format)
		}
	}
	if !bytes.HasPrefix(resp.Artifacts[pipeline.FormatDOT], []byte("graph Base {")) {
		t.Errorf("dot artifact does not look like a room graph")
	}
}

func TestGenerateRejectsBadOptions(t *testing.T) {
	h := testServer().Router()
	tests := []struct {
		name string
		opts pipeline.Options
	}{
		{"unknown style", pipeline.Options{Style: "ziggurat"}},
		{"levels out of range", pipeline.Options{Levels: 99}},
		{"unknown format", pipeline.Options{Formats: []string{"stl"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, h, "/generate", tt.opts)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Error == "" || resp.Code == "" {
				t.Errorf("error envelope incomplete: %+v", resp)
			}
		})
	}
}

func TestGenerateRejectsMalformedBody(t *testing.T) {
	h := testServer().Router()
	req := httptest.NewRequest(http.MethodPost, "/generate", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	h := testServer().Router()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}
