package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrFeedUnavailable = errors.New("vendor feed unavailable")
	ErrFeedBadStatus   = errors.New("vendor feed bad status")
)

// FeedClient pulls the vendor product feed. The response shape is whatever
// the vendor ships that week; decoding is deliberately loose and the payload
// goes through Items before anyone touches it.
type FeedClient struct {
	URL    string
	Client *http.Client
}

func NewFeedClient(feedURL string) *FeedClient {
	if u, err := url.Parse(feedURL); err == nil && u.Scheme != "" && u.Host != "" {
		feedURL = strings.TrimRight(feedURL, "/")
	}
	return &FeedClient{
		URL:    feedURL,
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *FeedClient) Fetch(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrFeedUnavailable
		}
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return nil, ErrFeedUnavailable
		}
		return nil, ErrFeedUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status=%d", ErrFeedBadStatus, resp.StatusCode)
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		// A body that is not JSON at all degrades the same way a wrong
		// shape does: empty catalog, not an error.
		return []Product{}, nil
	}
	return Items(payload), nil
}
