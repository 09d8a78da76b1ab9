// Package harness provides E2E testing utilities for Marquee.
package harness

import (
	"testing"
	"time"

	"github.com/artpar/marquee/e2e/testserver"
)

// E2EHarness is the main test orchestrator. It starts a fake TMDB API and
// points the environment configuration at it.
type E2EHarness struct {
	t       *testing.T
	server  *testserver.Server
	catalog *testserver.Catalog
	dataDir string
	timeout time.Duration
}

// Config configures the harness.
type Config struct {
	Catalog        *testserver.Catalog
	Timeout        time.Duration // Default: 5 seconds
	RequestTimeout time.Duration // client timeout; Default: 2 seconds
}

// New creates a new E2E harness. It sets process environment variables, so
// tests using it must not run in parallel.
func New(t *testing.T, cfg Config) *E2EHarness {
	t.Helper()

	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 2 * time.Second
	}
	if cfg.Catalog == nil {
		cfg.Catalog = &testserver.Catalog{}
	}

	h := &E2EHarness{
		t:       t,
		catalog: cfg.Catalog,
		dataDir: t.TempDir(),
		timeout: cfg.Timeout,
	}
	h.server = testserver.New(cfg.Catalog.Routes())
	t.Cleanup(h.server.Close)

	t.Setenv("MARQUEE_BASE_URL", h.server.URL)
	t.Setenv("MARQUEE_API_KEY", "e2e-key")
	t.Setenv("MARQUEE_DATA_DIR", h.dataDir)
	t.Setenv("MARQUEE_TIMEOUT", cfg.RequestTimeout.String())
	t.Setenv("MARQUEE_RATE_LIMIT", "1000")
	t.Setenv("MARQUEE_LOG_LEVEL", "error")
	t.Setenv("TMDB_API_KEY", "")

	return h
}

// Server returns the fake TMDB server.
func (h *E2EHarness) Server() *testserver.Server {
	return h.server
}

// Catalog returns the data the fake server answers with.
func (h *E2EHarness) Catalog() *testserver.Catalog {
	return h.catalog
}

// DataDir returns the directory holding persisted state.
func (h *E2EHarness) DataDir() string {
	return h.dataDir
}

// Timeout returns the configured timeout.
func (h *E2EHarness) Timeout() time.Duration {
	return h.timeout
}

// T returns the testing.T instance.
func (h *E2EHarness) T() *testing.T {
	return h.t
}

// CLI returns a CLI runner for this harness.
func (h *E2EHarness) CLI() *CLIRunner {
	return &CLIRunner{harness: h}
}

// TUI returns a TUI runner for this harness.
func (h *E2EHarness) TUI() *TUIRunner {
	return &TUIRunner{harness: h}
}
