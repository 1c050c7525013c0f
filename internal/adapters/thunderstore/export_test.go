package thunderstore

import "net/http"

// NewClientWithHTTPForTest exports newClientWithHTTP for testing purposes.
func NewClientWithHTTPForTest(baseURL string, client *http.Client) (*Client, error) {
	return newClientWithHTTP(baseURL, client)
}
