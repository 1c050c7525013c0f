package archive

import (
	"io"
	"net/http"
)

// NewFetcherWithClientForTest exports newFetcherWithClient for testing purposes.
func NewFetcherWithClientForTest(client *http.Client, progress io.Writer) *Fetcher {
	return newFetcherWithClient(client, progress)
}
