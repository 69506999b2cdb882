//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/draftsmith-ai/draftsmith/internal/api/handlers"
	"github.com/draftsmith-ai/draftsmith/internal/cli"
	"github.com/draftsmith-ai/draftsmith/internal/config"
	"github.com/draftsmith-ai/draftsmith/internal/domain"
	"github.com/draftsmith-ai/draftsmith/internal/server"
	"github.com/draftsmith-ai/draftsmith/internal/service"
	"github.com/draftsmith-ai/draftsmith/internal/testutil"
)

// E2EEnv is a full engine wired over a throwaway corpus, plus an HTTP server
// running the daemon's router in front of it.
type E2EEnv struct {
	T       *testing.T
	Fixture *testutil.CorpusFixture
	Config  *config.Config
	Engine  *service.Engine
	Server  *httptest.Server

	StyleDir      string
	TranscriptDir string
	BlogDir       string
	MiscDir       string
}

// SetupE2EEnv builds a corpus fixture with one root per content family and a
// lexical-only engine over it (tests never set OPENAI_API_KEY). Set an
// APIToken on the returned config before StartServer to exercise auth.
func SetupE2EEnv(t *testing.T) *E2EEnv {
	t.Helper()

	fixture := testutil.NewCorpusFixture(t)
	styleDir := fixture.AddRoot("corpus/style", string(domain.ContentTypeStyleGuide))
	transcriptDir := fixture.AddRoot("corpus/transcripts", string(domain.ContentTypeTranscript))
	blogDir := fixture.AddRoot("corpus/blog", string(domain.ContentTypeBlogPost))
	miscDir := fixture.AddRoot("corpus/misc", "")
	fixture.SaveRoots()

	cfg := &config.Config{
		Port:            "0",
		DataDir:         fixture.DataDir,
		RootsFile:       fixture.RootsFile,
		MaxContentChars: 24000,
		PreviewChars:    480,
		BatchSize:       25,
		DefaultMaxItems: 8,
		ArchiveEnabled:  true,
	}

	env := &E2EEnv{
		T:             t,
		Fixture:       fixture,
		Config:        cfg,
		StyleDir:      styleDir,
		TranscriptDir: transcriptDir,
		BlogDir:       blogDir,
		MiscDir:       miscDir,
	}

	env.RebuildEngine()
	return env
}

// RebuildEngine wires a fresh engine over the current config. Safe to call
// again after config changes; state lives in files, not in the engine.
func (e *E2EEnv) RebuildEngine() {
	e.T.Helper()
	engine, err := cli.BuildEngine(context.Background(), e.Config)
	if err != nil {
		e.T.Fatalf("failed to build engine: %v", err)
	}
	e.Engine = engine
}

// StartServer runs the daemon router over the env's engine
func (e *E2EEnv) StartServer() {
	e.T.Helper()
	router := server.NewRouter(server.RouterConfig{
		APIToken:       e.Config.APIToken,
		IngestHandler:  handlers.NewIngestHandler(e.Engine),
		ContextHandler: handlers.NewContextHandler(e.Engine),
		StatusHandler:  handlers.NewStatusHandler(e.Engine),
	})
	e.Server = httptest.NewServer(router)
}

// Cleanup shuts the test server down; temp dirs are removed by t.TempDir
func (e *E2EEnv) Cleanup() {
	if e.Server != nil {
		e.Server.Close()
	}
}

// HTTPResponse is a decoded API response with its status code
type HTTPResponse struct {
	StatusCode int
	Body       map[string]interface{}
}

// DoRequest sends one JSON request to the test server and decodes the reply.
// The configured API token, when present, is attached as a bearer token.
func (e *E2EEnv) DoRequest(method, path string, body interface{}) *HTTPResponse {
	e.T.Helper()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			e.T.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.Server.URL+path, reqBody)
	if err != nil {
		e.T.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if e.Config.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+e.Config.APIToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		e.T.Fatalf("request %s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	decoded := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		e.T.Fatalf("failed to read response body: %v", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			e.T.Fatalf("failed to decode response %s: %v", string(raw), err)
		}
	}

	return &HTTPResponse{StatusCode: resp.StatusCode, Body: decoded}
}

// Data extracts the data envelope from a success response
func (r *HTTPResponse) Data(t *testing.T) map[string]interface{} {
	t.Helper()
	data, ok := r.Body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no data envelope: %v", r.Body)
	}
	return data
}

// SeedCorpus writes a small representative corpus: a style guide anchor, two
// transcripts, two blog posts and one untyped note
func (e *E2EEnv) SeedCorpus() {
	e.T.Helper()
	e.Fixture.WriteFile(e.StyleDir, "brand-voice.md",
		"Write in second person. Short sentences. Avoid passive voice and filler words.")
	e.Fixture.WriteFile(e.TranscriptDir, "sales-call-acme.txt",
		"Prospect asked about pricing tiers and the annual discount for the Acme rollout.")
	e.Fixture.WriteFile(e.TranscriptDir, "support-call-billing.txt",
		"Customer raised a billing dispute about proration after a mid-cycle upgrade.")
	e.Fixture.WriteFile(e.BlogDir, "pricing-update.md",
		"We are simplifying pricing: three tiers, annual discounts, no hidden fees.")
	e.Fixture.WriteFile(e.BlogDir, "hiring-support.md",
		"How we grew the support team without losing response quality.")
	e.Fixture.WriteFile(e.MiscDir, "positioning-notes.txt",
		"Rough notes on positioning against incumbents for the pricing announcement.")
}
