// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/rcavaliericopy-max/salomao/internal/repositories"
	"github.com/rcavaliericopy-max/salomao/internal/shared"
)

// NewMemoryStore creates an opened in-memory store with migrations
// applied, closed automatically when the test finishes.
func NewMemoryStore(t *testing.T) *repositories.Store {
	t.Helper()

	store := repositories.NewStore(shared.DatabaseConfig{Path: ":memory:"})
	if err := store.Open(); err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FakeFetcher is a test double for the seeder's asset accessor. Assets
// maps manifest filenames to content; missing filenames fail the fetch.
type FakeFetcher struct {
	Assets  map[string][]byte
	Fetched []string
}

func (f *FakeFetcher) Fetch(ctx context.Context, filename string) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	f.Fetched = append(f.Fetched, filename)
	blob, ok := f.Assets[filename]
	if !ok {
		return nil, "", errors.New("asset not found: " + filename)
	}
	return blob, "audio/mpeg", nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
