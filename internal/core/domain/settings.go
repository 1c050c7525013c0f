package domain

import (
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// VersionPolicy decides which version wins when a package is reached more than once.
type VersionPolicy string

const (
	// VersionPolicyFirst keeps the first version encountered during traversal.
	VersionPolicyFirst VersionPolicy = "first"

	// VersionPolicyHighest replaces an entry when a higher version is encountered later.
	VersionPolicyHighest VersionPolicy = "highest"

	// VersionPolicyLatest ignores dependency pins and resolves every dependency to its latest version.
	VersionPolicyLatest VersionPolicy = "latest"
)

// ParseVersionPolicy validates a policy name. An empty name selects VersionPolicyFirst.
func ParseVersionPolicy(s string) (VersionPolicy, error) {
	switch p := VersionPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return VersionPolicyFirst, nil
	case VersionPolicyFirst, VersionPolicyHighest, VersionPolicyLatest:
		return p, nil
	default:
		return "", zerr.With(ErrInvalidVersionPolicy, "policy", s)
	}
}

// LoaderCore names a package whose contents are merged at the root of the modpack.
type LoaderCore struct {
	// Package is the full package name (e.g. "BepInEx-BepInExPack").
	Package string

	// Subdir is the folder inside the archive whose contents are lifted to the root.
	Subdir string
}

// Settings is the explicit configuration of a run.
type Settings struct {
	// BaseURL is the package repository root (e.g. "https://thunderstore.io").
	BaseURL string

	// Timeout bounds every HTTP request.
	Timeout time.Duration

	// CacheDir holds downloaded archives between runs.
	CacheDir string

	// VersionPolicy selects the version conflict policy of the resolver.
	VersionPolicy VersionPolicy

	// CommentPrefix marks ignored lines in the mod list.
	CommentPrefix string

	// LoaderDir is the mod loader's top-level folder.
	LoaderDir string

	// LoaderFolders are the loader's second-level folders, created in every modpack.
	LoaderFolders []string

	// PluginsFolder receives packages that follow no folder convention.
	PluginsFolder string

	// LoaderCore lists the packages merged at the modpack root.
	LoaderCore []LoaderCore

	// IgnoredFiles are top-level archive entries never extracted.
	IgnoredFiles []string
}

const (
	// DefaultBaseURL is the Thunderstore repository.
	DefaultBaseURL = "https://thunderstore.io"

	// DefaultTimeout bounds repository and download requests.
	DefaultTimeout = 30 * time.Second

	// DefaultCommentPrefix marks comment lines in a mod list.
	DefaultCommentPrefix = "#"
)

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	return &Settings{
		BaseURL:       DefaultBaseURL,
		Timeout:       DefaultTimeout,
		CacheDir:      DefaultArchiveCachePath(),
		VersionPolicy: VersionPolicyFirst,
		CommentPrefix: DefaultCommentPrefix,
		LoaderDir:     "BepInEx",
		LoaderFolders: []string{"cache", "config", "core", "patchers", "plugins"},
		PluginsFolder: "plugins",
		LoaderCore: []LoaderCore{
			{Package: "BepInEx-BepInExPack", Subdir: "BepInExPack"},
		},
		IgnoredFiles: []string{"icon.png", "manifest.json", "README.md", "CHANGELOG.md"},
	}
}

// LoaderCoreFor returns the loader core entry of key, if any.
func (s *Settings) LoaderCoreFor(key PackageKey) (LoaderCore, bool) {
	name := key.String()
	for _, lc := range s.LoaderCore {
		if strings.EqualFold(lc.Package, name) {
			return lc, true
		}
	}
	return LoaderCore{}, false
}
