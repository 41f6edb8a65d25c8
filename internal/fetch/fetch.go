// Package fetch retrieves the published Bot API schema document.
// Retrieval is plumbing that runs before the generation engine; the
// engine itself never touches the network.
package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// DefaultURL is the machine-readable schema published from the
// tg-bot-api project.
const DefaultURL = "https://ark0f.github.io/tg-bot-api/custom_v2.json"

// Client downloads schema documents.
type Client struct {
	http *http.Client
	log  *zap.SugaredLogger
}

// New creates a Client. A nil logger disables logging.
func New(log *zap.SugaredLogger) *Client {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Client{
		http: &http.Client{Timeout: 30 * time.Second},
		log:  log,
	}
}

// Schema fetches the schema document at url, honoring ctx cancellation.
func (c *Client) Schema(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		url = DefaultURL
	}
	c.log.Infow("fetching schema", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building schema request")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetching schema")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("fetching schema: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading schema body")
	}
	c.log.Infow("schema fetched", "bytes", len(data))
	return data, nil
}
