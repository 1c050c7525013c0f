// Package archive downloads package archives and lays them out into a modpack.
package archive

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/modpack/internal/ui/output"
	"go.trai.ch/zerr"
)

// Fetcher implements ports.ArchiveFetcher over HTTP.
type Fetcher struct {
	httpClient *http.Client
	progress   io.Writer
}

// NewFetcher creates a Fetcher using the timeout of settings.
// A progress bar is drawn on stderr when it is a terminal.
func NewFetcher(settings *domain.Settings) *Fetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = settings.Timeout

	var progress io.Writer
	if output.IsInteractive(os.Stderr) {
		progress = os.Stderr
	}

	return newFetcherWithClient(&http.Client{Transport: transport}, progress)
}

// newFetcherWithClient creates a Fetcher with a custom http client and progress writer (used for testing).
// A nil progress writer disables the progress bar.
func newFetcherWithClient(client *http.Client, progress io.Writer) *Fetcher {
	return &Fetcher{httpClient: client, progress: progress}
}

// Download stores the archive at url in dst and returns the number of bytes written.
func (f *Fetcher) Download(ctx context.Context, url, dst string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "url", url)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "url", url)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		downloadErr := zerr.With(domain.ErrDownloadFailed, "status_code", resp.StatusCode)
		return 0, zerr.With(downloadErr, "url", url)
	}

	var body io.Reader = resp.Body
	if f.progress != nil {
		bar := progressbar.NewOptions64(resp.ContentLength,
			progressbar.OptionSetWriter(f.progress),
			progressbar.OptionSetDescription("downloading"),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
		defer func() {
			_ = bar.Finish()
		}()
		body = io.TeeReader(resp.Body, bar)
	}

	n, err := atomicWriteFile(dst, body)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "url", url)
	}

	return n, nil
}

// atomicWriteFile streams r to a temp file next to path and renames it into place.
func atomicWriteFile(path string, r io.Reader) (int64, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return 0, err
	}

	tmpFile, err := os.CreateTemp(dir, ".download-*.part")
	if err != nil {
		return 0, err
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	n, err := io.Copy(tmpFile, r)
	if err != nil {
		_ = tmpFile.Close()
		return 0, err
	}

	if err := tmpFile.Close(); err != nil {
		return 0, err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return 0, err
	}

	return n, os.Rename(tmpName, path)
}
