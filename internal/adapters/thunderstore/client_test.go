package thunderstore_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modpack/internal/adapters/thunderstore"
	"go.trai.ch/modpack/internal/core/domain"
)

const baseURL = "https://thunderstore.io"

// MockRoundTripper is a helper to mock http.Client behavior.
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

func newMockClient(handler func(req *http.Request) (*http.Response, error)) *http.Client {
	return &http.Client{
		Transport: &MockRoundTripper{RoundTripFunc: handler},
	}
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

// routes answers known URLs and counts requests per URL.
func routes(t *testing.T, bodies map[string]string, calls map[string]int) *http.Client {
	t.Helper()
	return newMockClient(func(req *http.Request) (*http.Response, error) {
		calls[req.URL.String()]++
		body, ok := bodies[req.URL.String()]
		if !ok {
			return jsonResponse(http.StatusNotFound, `{"detail":"Not found."}`), nil
		}
		return jsonResponse(http.StatusOK, body), nil
	})
}

const lethalLibPackage = `{
  "namespace": "Evaisa",
  "name": "LethalLib",
  "full_name": "Evaisa-LethalLib",
  "owner": "Evaisa",
  "package_url": "https://thunderstore.io/c/lethal-company/p/Evaisa/LethalLib/",
  "date_created": "2023-11-10T08:00:00Z",
  "date_updated": "2024-02-15T10:30:00.123456Z",
  "latest": {
    "namespace": "Evaisa",
    "name": "LethalLib",
    "version_number": "0.15.1",
    "full_name": "Evaisa-LethalLib-0.15.1",
    "description": "Personal modding tools for Lethal Company",
    "dependencies": ["BepInEx-BepInExPack-5.4.2100", "Evaisa-HookGenPatcher-0.0.5"],
    "download_url": "https://thunderstore.io/package/download/Evaisa/LethalLib/0.15.1/",
    "downloads": 1000,
    "date_created": "2024-02-15T10:30:00.123456Z",
    "is_active": true
  }
}`

const bepInExVersion = `{
  "namespace": "BepInEx",
  "name": "BepInExPack",
  "version_number": "5.4.2100",
  "full_name": "BepInEx-BepInExPack-5.4.2100",
  "description": "BepInEx pack for Mono Unity games.",
  "dependencies": [],
  "download_url": "https://thunderstore.io/package/download/BepInEx/BepInExPack/5.4.2100/",
  "date_created": "2023-01-05T09:00:00Z",
  "file_size": 623014
}`

func TestClient_Fetch_Latest(t *testing.T) {
	calls := map[string]int{}
	client, err := thunderstore.NewClientWithHTTPForTest(baseURL, routes(t, map[string]string{
		baseURL + "/api/experimental/package/Evaisa/LethalLib/": lethalLibPackage,
	}, calls))
	require.NoError(t, err)

	meta, err := client.Fetch(t.Context(), domain.PackageRef{Namespace: "Evaisa", Name: "LethalLib"})
	require.NoError(t, err)

	assert.Equal(t, domain.PackageKey{Namespace: "Evaisa", Name: "LethalLib"}, meta.Key)
	assert.Equal(t, "LethalLib", meta.DisplayName)
	assert.Equal(t, "0.15.1", meta.Version)
	assert.Equal(t, "https://thunderstore.io/c/lethal-company/p/Evaisa/LethalLib/", meta.PackageURL)
	assert.Equal(t, "https://thunderstore.io/package/download/Evaisa/LethalLib/0.15.1/", meta.DownloadURL)
	assert.Equal(t, time.Date(2024, 2, 15, 10, 30, 0, 123456000, time.UTC), meta.LastUpdated)
	assert.Equal(t, []domain.PackageRef{
		{Namespace: "BepInEx", Name: "BepInExPack", Version: "5.4.2100"},
		{Namespace: "Evaisa", Name: "HookGenPatcher", Version: "0.0.5"},
	}, meta.Dependencies)
}

func TestClient_Fetch_Pinned(t *testing.T) {
	calls := map[string]int{}
	client, err := thunderstore.NewClientWithHTTPForTest(baseURL+"/", routes(t, map[string]string{
		baseURL + "/api/experimental/package/BepInEx/BepInExPack/5.4.2100/": bepInExVersion,
	}, calls))
	require.NoError(t, err)

	meta, err := client.Fetch(t.Context(), domain.PackageRef{Namespace: "BepInEx", Name: "BepInExPack", Version: "5.4.2100"})
	require.NoError(t, err)

	assert.Equal(t, "5.4.2100", meta.Version)
	assert.Empty(t, meta.Dependencies)
	assert.Equal(t, int64(623014), meta.FileSize)
	assert.Equal(t, "https://thunderstore.io/package/BepInEx/BepInExPack/", meta.PackageURL)
}

func TestClient_Fetch_Memoized(t *testing.T) {
	calls := map[string]int{}
	latestURL := baseURL + "/api/experimental/package/Evaisa/LethalLib/"
	client, err := thunderstore.NewClientWithHTTPForTest(baseURL, routes(t, map[string]string{
		latestURL: lethalLibPackage,
	}, calls))
	require.NoError(t, err)

	ref := domain.PackageRef{Namespace: "Evaisa", Name: "LethalLib"}
	first, err := client.Fetch(t.Context(), ref)
	require.NoError(t, err)
	second, err := client.Fetch(t.Context(), ref)
	require.NoError(t, err)

	// The resolved version is memoized too.
	pinned, err := client.Fetch(t.Context(), first.Ref())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Same(t, first, pinned)
	assert.Equal(t, map[string]int{latestURL: 1}, calls)
}

func TestClient_Fetch_Errors(t *testing.T) {
	ref := domain.PackageRef{Namespace: "Evaisa", Name: "LethalLib"}

	tests := []struct {
		name     string
		handler  func(req *http.Request) (*http.Response, error)
		wantErrs []error
	}{
		{
			name: "not found",
			handler: func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusNotFound, `{"detail":"Not found."}`), nil
			},
			wantErrs: []error{domain.ErrPackageNotFound},
		},
		{
			name: "server error",
			handler: func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusBadGateway, "bad gateway"), nil
			},
			wantErrs: []error{domain.ErrRepositoryRequestFailed},
		},
		{
			name: "transport error",
			handler: func(*http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			},
			wantErrs: []error{domain.ErrRepositoryRequestFailed},
		},
		{
			name: "invalid json",
			handler: func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, "<html>"), nil
			},
			wantErrs: []error{domain.ErrRepositoryParseFailed},
		},
		{
			name: "missing latest",
			handler: func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"namespace":"Evaisa","name":"LethalLib"}`), nil
			},
			wantErrs: []error{domain.ErrMetadataIncomplete},
		},
		{
			name: "missing download url",
			handler: func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"latest":{"namespace":"Evaisa","name":"LethalLib",`+
					`"version_number":"1.0.0","date_created":"2024-01-01T00:00:00Z"}}`), nil
			},
			wantErrs: []error{domain.ErrMetadataIncomplete},
		},
		{
			name: "malformed dependency",
			handler: func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"latest":{"namespace":"Evaisa","name":"LethalLib",`+
					`"version_number":"1.0.0","date_created":"2024-01-01T00:00:00Z",`+
					`"download_url":"https://thunderstore.io/x","dependencies":["not a dependency"]}}`), nil
			},
			wantErrs: []error{domain.ErrRepositoryParseFailed, domain.ErrInvalidPackageRef},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := thunderstore.NewClientWithHTTPForTest(baseURL, newMockClient(tt.handler))
			require.NoError(t, err)

			meta, err := client.Fetch(t.Context(), ref)
			require.Error(t, err)
			assert.Nil(t, meta)
			for _, want := range tt.wantErrs {
				assert.ErrorContains(t, err, want.Error())
			}
		})
	}
}

func TestClient_Fetch_FailuresAreNotMemoized(t *testing.T) {
	attempts := 0
	client, err := thunderstore.NewClientWithHTTPForTest(baseURL, newMockClient(func(*http.Request) (*http.Response, error) {
		attempts++
		if attempts == 1 {
			return jsonResponse(http.StatusServiceUnavailable, ""), nil
		}
		return jsonResponse(http.StatusOK, lethalLibPackage), nil
	}))
	require.NoError(t, err)

	ref := domain.PackageRef{Namespace: "Evaisa", Name: "LethalLib"}
	_, err = client.Fetch(t.Context(), ref)
	require.Error(t, err)

	meta, err := client.Fetch(t.Context(), ref)
	require.NoError(t, err)
	assert.Equal(t, "0.15.1", meta.Version)
}

func TestClient_Fetch_ContextCanceled(t *testing.T) {
	client, err := thunderstore.NewClientWithHTTPForTest(baseURL, newMockClient(func(req *http.Request) (*http.Response, error) {
		return nil, req.Context().Err()
	}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err = client.Fetch(ctx, domain.PackageRef{Namespace: "Evaisa", Name: "LethalLib"})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrRepositoryRequestFailed.Error())
}

func TestClient_PackagePage(t *testing.T) {
	client, err := thunderstore.NewClient(&domain.Settings{BaseURL: baseURL, Timeout: time.Second})
	require.NoError(t, err)

	assert.Equal(t, "https://thunderstore.io/package/Evaisa/LethalLib/",
		client.PackagePage(domain.PackageKey{Namespace: "Evaisa", Name: "LethalLib"}))
}
