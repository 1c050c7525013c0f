// Package config provides the settings loader for modpack.
package config

import (
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/modpack/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the settings file.
const (
	EnvBaseURL       = "MODPACK_BASE_URL"
	EnvTimeout       = "MODPACK_TIMEOUT"
	EnvCacheDir      = "MODPACK_CACHE_DIR"
	EnvVersionPolicy = "MODPACK_VERSION_POLICY"
)

// Loader implements ports.SettingsLoader using a YAML file and environment overrides.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load builds the settings of a run started in cwd.
//
// Defaults are overlaid with cwd/modpack.yaml, then with MODPACK_* variables.
// Variables set in the process environment win over those in cwd/.env.
// Both files are optional.
func (l *Loader) Load(cwd string) (*domain.Settings, error) {
	settings := domain.DefaultSettings()
	timeout := ""
	policy := string(settings.VersionPolicy)

	settingsPath := filepath.Join(cwd, domain.SettingsFileName)
	if exists(settingsPath) {
		var file Settingsfile
		if err := readAndUnmarshalYAML(settingsPath, &file); err != nil {
			return nil, zerr.With(err, "path", settingsPath)
		}
		applyFile(settings, &file)
		timeout = file.Repository.Timeout
		if file.Resolver.VersionPolicy != "" {
			policy = file.Resolver.VersionPolicy
		}
		l.Logger.Debug("loaded settings from " + settingsPath)
	}

	env, err := readEnv(filepath.Join(cwd, domain.EnvFileName))
	if err != nil {
		return nil, err
	}
	if v, ok := env(EnvBaseURL); ok {
		settings.BaseURL = v
	}
	if v, ok := env(EnvTimeout); ok {
		timeout = v
	}
	if v, ok := env(EnvCacheDir); ok {
		settings.CacheDir = v
	}
	if v, ok := env(EnvVersionPolicy); ok {
		policy = v
	}

	if timeout != "" {
		d, parseErr := time.ParseDuration(timeout)
		if parseErr != nil || d <= 0 {
			return nil, zerr.With(zerr.With(domain.ErrConfigInvalid, "key", "repository.timeout"), "value", timeout)
		}
		settings.Timeout = d
	}

	settings.VersionPolicy, err = domain.ParseVersionPolicy(policy)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigInvalid.Error())
	}

	settings.BaseURL = strings.TrimRight(settings.BaseURL, "/")
	if !filepath.IsAbs(settings.CacheDir) {
		settings.CacheDir = filepath.Join(cwd, settings.CacheDir)
	}

	if err := validate(settings); err != nil {
		return nil, err
	}

	return settings, nil
}

func applyFile(s *domain.Settings, f *Settingsfile) {
	if f.Repository.BaseURL != "" {
		s.BaseURL = f.Repository.BaseURL
	}
	if f.Cache.Dir != "" {
		s.CacheDir = f.Cache.Dir
	}
	if f.Input.CommentPrefix != nil {
		s.CommentPrefix = *f.Input.CommentPrefix
	}
	if f.Layout.LoaderDir != "" {
		s.LoaderDir = f.Layout.LoaderDir
	}
	if len(f.Layout.Folders) > 0 {
		s.LoaderFolders = slices.Clone(f.Layout.Folders)
	}
	if f.Layout.PluginsFolder != "" {
		s.PluginsFolder = f.Layout.PluginsFolder
	}
	if f.Layout.LoaderCore != nil {
		s.LoaderCore = make([]domain.LoaderCore, 0, len(f.Layout.LoaderCore))
		for _, lc := range f.Layout.LoaderCore {
			s.LoaderCore = append(s.LoaderCore, domain.LoaderCore{Package: lc.Package, Subdir: lc.Subdir})
		}
	}
	if f.Layout.IgnoredFiles != nil {
		s.IgnoredFiles = slices.Clone(f.Layout.IgnoredFiles)
	}
}

func validate(s *domain.Settings) error {
	u, err := url.Parse(s.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return zerr.With(zerr.With(domain.ErrConfigInvalid, "key", "repository.base_url"), "value", s.BaseURL)
	}

	if !slices.Contains(s.LoaderFolders, s.PluginsFolder) {
		return zerr.With(zerr.With(domain.ErrConfigInvalid, "key", "layout.plugins_folder"), "value", s.PluginsFolder)
	}

	for _, name := range append([]string{s.LoaderDir}, s.LoaderFolders...) {
		if !validFolderName(name) {
			return zerr.With(zerr.With(domain.ErrConfigInvalid, "key", "layout.folders"), "value", name)
		}
	}

	for _, lc := range s.LoaderCore {
		if _, err := domain.ParseIdentifier(lc.Package); err != nil {
			return zerr.With(zerr.With(domain.ErrConfigInvalid, "key", "layout.loader_core"), "value", lc.Package)
		}
	}

	return nil
}

func validFolderName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

// readEnv returns a lookup over the process environment backed by the optional .env file.
func readEnv(envPath string) (func(string) (string, bool), error) {
	fileEnv := map[string]string{}
	if exists(envPath) {
		var err error
		fileEnv, err = godotenv.Read(envPath)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", envPath)
		}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok && v != ""
	}, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is built from the working directory
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
