package bankstub

import (
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/go-petr/bank-e2e/pkg/configpkg"
)

// Start runs a stub over httptest and shuts it down with the test.
func Start(t *testing.T, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()

	stub := New(opts...)
	server := httptest.NewServer(stub)
	t.Cleanup(server.Close)

	return stub, server
}

// ClientConfig returns a harness configuration pointing at the stub server.
func ClientConfig(t *testing.T, server *httptest.Server) configpkg.Config {
	t.Helper()

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("parsing stub server URL %s: %v", server.URL, err)
	}

	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatalf("parsing stub server port: %v", err)
	}

	return configpkg.Config{
		BaseURL:         u.Scheme + "://" + u.Hostname(),
		BasePort:        port,
		BasePath:        "/api",
		RetryCount:      1,
		ParallelThreads: 1,
	}
}
