// Package thunderstore implements the RepositoryClient port against the Thunderstore API.
package thunderstore

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	apiPrefix = "/api/experimental/package"

	// memoSize bounds the number of responses kept for the lifetime of the client.
	memoSize = 512
)

// Client implements ports.RepositoryClient using the Thunderstore experimental API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	memo       *lru.Cache[string, *domain.PackageMetadata]
}

// NewClient creates a Client for the repository configured in settings.
func NewClient(settings *domain.Settings) (*Client, error) {
	return newClientWithHTTP(settings.BaseURL, &http.Client{Timeout: settings.Timeout})
}

// newClientWithHTTP creates a Client with a custom http client (used for testing).
func newClientWithHTTP(baseURL string, httpClient *http.Client) (*Client, error) {
	memo, err := lru.New[string, *domain.PackageMetadata](memoSize)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrRepositoryRequestFailed.Error())
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		memo:       memo,
	}, nil
}

// Fetch returns the metadata of ref. An unpinned ref resolves to the latest version.
func (c *Client) Fetch(ctx context.Context, ref domain.PackageRef) (*domain.PackageMetadata, error) {
	if meta, ok := c.memo.Get(ref.String()); ok {
		return meta, nil
	}

	var (
		version    *VersionResponse
		packageURL string
	)

	if ref.Pinned() {
		version = &VersionResponse{}
		if err := c.get(ctx, ref, c.versionEndpoint(ref), version); err != nil {
			return nil, err
		}
	} else {
		var pkg PackageResponse
		if err := c.get(ctx, ref, c.packageEndpoint(ref), &pkg); err != nil {
			return nil, err
		}
		if pkg.Latest == nil {
			return nil, zerr.With(zerr.With(domain.ErrMetadataIncomplete, "package", ref.String()), "missing", "latest")
		}
		version = pkg.Latest
		packageURL = pkg.PackageURL
	}

	meta, err := c.toMetadata(ref, version, packageURL)
	if err != nil {
		return nil, err
	}

	c.memo.Add(ref.String(), meta)
	c.memo.Add(meta.Ref().String(), meta)

	return meta, nil
}

func (c *Client) packageEndpoint(ref domain.PackageRef) string {
	return c.baseURL + apiPrefix + "/" + url.PathEscape(ref.Namespace) + "/" + url.PathEscape(ref.Name) + "/"
}

func (c *Client) versionEndpoint(ref domain.PackageRef) string {
	return c.packageEndpoint(ref) + url.PathEscape(ref.Version) + "/"
}

// PackagePage returns the web page of a package on the repository.
func (c *Client) PackagePage(key domain.PackageKey) string {
	return c.baseURL + "/package/" + key.Namespace + "/" + key.Name + "/"
}

// get queries endpoint and decodes the JSON body into target.
func (c *Client) get(ctx context.Context, ref domain.PackageRef, endpoint string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRepositoryRequestFailed.Error()), "package", ref.String())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRepositoryRequestFailed.Error()), "package", ref.String())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return zerr.With(domain.ErrPackageNotFound, "package", ref.String())
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := zerr.With(domain.ErrRepositoryRequestFailed, "status_code", resp.StatusCode)
		return zerr.With(apiErr, "package", ref.String())
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRepositoryRequestFailed.Error()), "package", ref.String())
	}

	if err := json.Unmarshal(body, target); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRepositoryParseFailed.Error()), "package", ref.String())
	}

	return nil
}

func (c *Client) toMetadata(ref domain.PackageRef, v *VersionResponse, packageURL string) (*domain.PackageMetadata, error) {
	if missing := v.missingFields(); len(missing) > 0 {
		incomplete := zerr.With(domain.ErrMetadataIncomplete, "package", ref.String())
		return nil, zerr.With(incomplete, "missing", strings.Join(missing, ", "))
	}

	if !domain.ValidVersion(v.VersionNumber) {
		parseErr := zerr.With(domain.ErrRepositoryParseFailed, "package", ref.String())
		return nil, zerr.With(parseErr, "version", v.VersionNumber)
	}

	deps := make([]domain.PackageRef, 0, len(v.Dependencies))
	for _, raw := range v.Dependencies {
		dep, err := domain.ParseIdentifier(raw)
		if err != nil {
			parseErr := zerr.Wrap(err, domain.ErrRepositoryParseFailed.Error())
			return nil, zerr.With(parseErr, "package", ref.String())
		}
		deps = append(deps, dep)
	}

	key := domain.PackageKey{Namespace: v.Namespace, Name: v.Name}
	if packageURL == "" {
		packageURL = c.PackagePage(key)
	}

	return &domain.PackageMetadata{
		Key:          key,
		DisplayName:  strings.ReplaceAll(v.Name, "_", " "),
		Version:      v.VersionNumber,
		Description:  v.Description,
		Dependencies: deps,
		LastUpdated:  v.DateCreated.UTC(),
		DownloadURL:  v.DownloadURL,
		PackageURL:   packageURL,
		FileSize:     v.FileSize,
	}, nil
}
