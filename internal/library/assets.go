package library

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rcavaliericopy-max/salomao/internal/shared"
	"golang.org/x/time/rate"
)

// AudioPathPrefix is the URL directory bundled audio assets are served
// under, relative to the asset base URL.
const AudioPathPrefix = "/audio/"

// DefaultMinAssetBytes is the plausibility floor: fetched content smaller
// than this is assumed to be an error page body rather than real audio.
const DefaultMinAssetBytes = 1000

// AssetClient fetches bundled audio assets over HTTP. Fetches are paced
// with a rate limiter so seeding stays polite toward the asset host.
type AssetClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	minBytes   int
}

// NewAssetClient creates an asset client for the given base URL.
// fetchRate caps fetches per second (0 means unlimited); minBytes below 1
// falls back to [DefaultMinAssetBytes].
func NewAssetClient(baseURL string, client *http.Client, fetchRate, minBytes int) *AssetClient {
	if client == nil {
		client = http.DefaultClient
	}
	if minBytes < 1 {
		minBytes = DefaultMinAssetBytes
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if fetchRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(fetchRate), 1)
	}

	return &AssetClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		limiter:    limiter,
		minBytes:   minBytes,
	}
}

// Fetch downloads one bundled asset by its manifest filename and returns
// the content with its reported content type.
//
// A non-2xx status maps to [shared.ErrAssetUnavailable]. Content smaller
// than the plausibility floor or reporting an HTML content type maps to
// [shared.ErrAssetImplausible]; both guard against persisting an error
// page body instead of real audio.
func (c *AssetClient) Fetch(ctx context.Context, filename string) ([]byte, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, "", fmt.Errorf("rate limit wait: %w", err)
	}

	fullURL := c.baseURL + AudioPathPrefix + EncodePath(filename)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", shared.ErrAssetUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("%w: %s returned status %d", shared.ErrAssetUnavailable, filename, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "text/html") {
		return nil, "", fmt.Errorf("%w: %s reported content type %s", shared.ErrAssetImplausible, filename, contentType)
	}
	if len(body) < c.minBytes {
		return nil, "", fmt.Errorf("%w: %s is only %d bytes", shared.ErrAssetImplausible, filename, len(body))
	}

	return body, contentType, nil
}

// EncodePath URL-encodes a relative path per segment so filenames with
// spaces or special characters survive the request line.
func EncodePath(p string) string {
	segments := strings.Split(p, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
