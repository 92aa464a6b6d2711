// internal/fetch/fetch.go
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"pnator-core/pdb"
	"pnator-core/structure"
)

// DefaultBaseURL serves <ID>.pdb files.
const DefaultBaseURL = "https://files.rcsb.org/download"

var (
	ErrInvalidID = errors.New("fetch: invalid PDB id")
	ErrNotFound  = errors.New("fetch: structure not found")
)

// Client downloads PDB entries by id.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Log     *slog.Logger
}

// New returns a client for base ("" = DefaultBaseURL).
func New(base string, log *slog.Logger) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		BaseURL: strings.TrimRight(base, "/"),
		HTTP:    &http.Client{Timeout: 60 * time.Second},
		Log:     log,
	}
}

// NormalizeID upper-cases id and checks it is a four character PDB code
// starting with a digit 1-9.
func NormalizeID(id string) (string, error) {
	id = strings.ToUpper(strings.TrimSpace(id))
	if len(id) != 4 || id[0] < '1' || id[0] > '9' {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	for _, c := range id[1:] {
		if (c < '0' || c > '9') && (c < 'A' || c > 'Z') {
			return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
		}
	}
	return id, nil
}

// URL returns the download location of id.
func (c *Client) URL(id string) string { return c.BaseURL + "/" + id + ".pdb" }

// Fetch downloads and parses entry id.
func (c *Client) Fetch(ctx context.Context, id string) (*structure.Structure, error) {
	id, err := NormalizeID(id)
	if err != nil {
		return nil, err
	}
	url := c.URL(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", id, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	case resp.StatusCode != http.StatusOK:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("fetch %s: %s", id, resp.Status)
	}

	s, err := pdb.Read(resp.Body, id)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", id, err)
	}
	c.Log.DebugContext(ctx, "structure downloaded",
		slog.String("id", id), slog.String("url", url), slog.Duration("elapsed", time.Since(start)))
	return s, nil
}
