package resources

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/pebblelab/pebble-journal/internal/model"
)

// Downloader persists the remote resources referenced by an entry,
// tolerating per-file failures.
type Downloader struct {
	signer Signer
	client *resty.Client
	log    zerolog.Logger
}

// NewDownloader creates a downloader that resolves URLs through signer
// and fetches bytes with the given timeout.
func NewDownloader(signer Signer, timeout time.Duration, log zerolog.Logger) *Downloader {
	return &Downloader{
		signer: signer,
		client: resty.New().SetTimeout(timeout),
		log:    log,
	}
}

// SaveResources downloads every resource referenced by the entry into
// dir and returns the ordered list of saved paths. A failed signing
// call degrades to an empty result; a failed fetch or write skips that
// one file. A raw/signed count mismatch is the only hard error: the
// signed list pairs with the raw list by position, and mispairing
// would save files under the wrong names.
func (d *Downloader) SaveResources(ctx context.Context, e *model.Entry, dir string) ([]string, error) {
	rawURLs := e.ResourceURLs()
	if len(rawURLs) == 0 {
		return nil, nil
	}

	signed, err := d.signer.Resolve(ctx, rawURLs)
	if err != nil {
		resolveFailuresTotal.Inc()
		d.log.Error().Stack().Err(err).Msg("failed to fetch signed resource urls")
		return nil, nil
	}
	if len(signed) == 0 {
		return nil, nil
	}
	if len(signed) != len(rawURLs) {
		return nil, fmt.Errorf("signing service returned %d urls for %d resources", len(signed), len(rawURLs))
	}

	saved := make([]string, 0, len(signed))
	for i, signedURL := range signed {
		p, err := d.fetchOne(ctx, e.ID, rawURLs[i], signedURL, dir)
		if err != nil {
			downloadFailuresTotal.Inc()
			d.log.Error().Stack().Err(err).Str("url", signedURL).Msg("failed to download resource")
			continue
		}
		downloadsSavedTotal.Inc()
		saved = append(saved, p)
		d.log.Info().Str("path", p).Msg("saved resource")
	}
	return saved, nil
}

// fetchOne downloads one signed URL and writes it under dir as
// {entryID}_{basename of the raw URL}. Partial writes are removed.
func (d *Downloader) fetchOne(ctx context.Context, entryID, rawURL, signedURL, dir string) (string, error) {
	resp, err := d.client.R().SetContext(ctx).Get(signedURL)
	if err != nil {
		return "", fmt.Errorf("get: %w", err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("get: status %d", resp.StatusCode())
	}

	savePath := filepath.Join(dir, entryID+"_"+urlBasename(rawURL))
	if err := os.WriteFile(savePath, resp.Body(), 0o644); err != nil {
		_ = os.Remove(savePath)
		return "", fmt.Errorf("write %s: %w", savePath, err)
	}
	return savePath, nil
}

// urlBasename returns the final path segment of a resource URL.
func urlBasename(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	return path.Base(rawURL)
}
