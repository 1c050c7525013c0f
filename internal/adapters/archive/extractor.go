package archive

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/klauspost/compress/zip"
	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/zerr"
)

// placement is where the entries of one archive land, relative to the modpack root.
type placement struct {
	base  []string
	strip string
}

// Extractor implements ports.Extractor for BepInEx style mod loaders.
//
// Archives are placed by their top-level folders:
//   - loader core packages are merged at the root, their inner folder lifted;
//   - archives carrying the loader folder are extracted at the root;
//   - archives carrying a loader subfolder are extracted in the loader folder;
//   - anything else goes to the plugins folder, one folder per package.
type Extractor struct {
	settings *domain.Settings
	ignored  map[string]struct{}
}

// NewExtractor creates an Extractor for the layout of settings.
func NewExtractor(settings *domain.Settings) *Extractor {
	ignored := make(map[string]struct{}, len(settings.IgnoredFiles))
	for _, name := range settings.IgnoredFiles {
		ignored[strings.ToLower(name)] = struct{}{}
	}
	return &Extractor{settings: settings, ignored: ignored}
}

// Prepare creates dir and the loader folder skeleton. dir must not exist.
// If the skeleton cannot be built, dir is removed again.
func (e *Extractor) Prepare(dir string) error {
	if _, err := os.Lstat(dir); err == nil {
		return zerr.With(domain.ErrOutputExists, "path", dir)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputCreateFailed.Error()), "path", dir)
	}

	if err := os.MkdirAll(filepath.Dir(dir), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputCreateFailed.Error()), "path", dir)
	}

	if err := os.Mkdir(dir, domain.DirPerm); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return zerr.With(domain.ErrOutputExists, "path", dir)
		}
		return zerr.With(zerr.Wrap(err, domain.ErrOutputCreateFailed.Error()), "path", dir)
	}

	for _, folder := range e.settings.LoaderFolders {
		sub := filepath.Join(dir, e.settings.LoaderDir, folder)
		if err := os.MkdirAll(sub, domain.DirPerm); err != nil {
			_ = os.RemoveAll(dir)
			return zerr.With(zerr.Wrap(err, domain.ErrOutputCreateFailed.Error()), "path", sub)
		}
	}

	return nil
}

// Extract unpacks the archive of pkg into dir. Existing files are overwritten.
func (e *Extractor) Extract(pkg *domain.PackageMetadata, archivePath, dir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		extractErr := zerr.With(zerr.Wrap(err, domain.ErrExtractionFailed.Error()), "package", pkg.Key.String())
		return zerr.With(extractErr, "archive", archivePath)
	}
	defer func() {
		_ = r.Close()
	}()

	files := make([]*zip.File, 0, len(r.File))
	names := make([][]string, 0, len(r.File))
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}

		segments, err := splitEntry(f.Name)
		if err != nil {
			return zerr.With(zerr.With(err, "package", pkg.Key.String()), "entry", f.Name)
		}
		if len(segments) == 1 && e.isIgnored(segments[0]) {
			continue
		}

		files = append(files, f)
		names = append(names, segments)
	}

	place := e.place(pkg, names)

	for i, f := range files {
		rel := filepath.FromSlash(path.Join(e.canonical(place.target(names[i]))...))
		if !filepath.IsLocal(rel) {
			return zerr.With(zerr.With(domain.ErrUnsafeArchivePath, "package", pkg.Key.String()), "entry", f.Name)
		}

		if err := writeEntry(f, filepath.Join(dir, rel)); err != nil {
			extractErr := zerr.With(zerr.Wrap(err, domain.ErrExtractionFailed.Error()), "package", pkg.Key.String())
			return zerr.With(extractErr, "entry", f.Name)
		}
	}

	return nil
}

// splitEntry normalises an archive entry name into its path segments.
func splitEntry(name string) ([]string, error) {
	name = strings.ReplaceAll(name, `\`, "/")
	if !filepath.IsLocal(filepath.FromSlash(name)) || strings.HasPrefix(name, "/") {
		return nil, domain.ErrUnsafeArchivePath
	}
	return strings.Split(path.Clean(name), "/"), nil
}

func (e *Extractor) isIgnored(name string) bool {
	_, ok := e.ignored[strings.ToLower(name)]
	return ok
}

func (e *Extractor) place(pkg *domain.PackageMetadata, names [][]string) placement {
	if core, ok := e.settings.LoaderCoreFor(pkg.Key); ok {
		return placement{strip: core.Subdir}
	}

	if slices.ContainsFunc(names, func(s []string) bool {
		return len(s) > 1 && strings.EqualFold(s[0], e.settings.LoaderDir)
	}) {
		return placement{}
	}

	if slices.ContainsFunc(names, func(s []string) bool {
		return len(s) > 1 && e.loaderFolder(s[0]) != ""
	}) {
		return placement{base: []string{e.settings.LoaderDir}}
	}

	return placement{base: []string{e.settings.LoaderDir, e.settings.PluginsFolder, pkg.Key.String()}}
}

func (p placement) target(segments []string) []string {
	if p.strip != "" && len(segments) > 1 && strings.EqualFold(segments[0], p.strip) {
		segments = segments[1:]
	}
	return append(slices.Clone(p.base), segments...)
}

// canonical rewrites the loader folder names of rel to their configured spelling.
func (e *Extractor) canonical(rel []string) []string {
	if len(rel) < 2 || !strings.EqualFold(rel[0], e.settings.LoaderDir) {
		return rel
	}
	rel[0] = e.settings.LoaderDir
	if folder := e.loaderFolder(rel[1]); folder != "" && len(rel) > 2 {
		rel[1] = folder
	}
	return rel
}

// loaderFolder returns the configured spelling of name, or "" when it is not a loader folder.
func (e *Extractor) loaderFolder(name string) string {
	for _, folder := range e.settings.LoaderFolders {
		if strings.EqualFold(folder, name) {
			return folder
		}
	}
	return ""
}

func writeEntry(f *zip.File, target string) error {
	if !f.Mode().IsRegular() {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return err
	}

	src, err := f.Open()
	if err != nil {
		return err
	}
	defer func() {
		_ = src.Close()
	}()

	//nolint:gosec // target is checked to stay inside the modpack directory
	dst, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, domain.FilePerm)
	if err != nil {
		return err
	}

	//nolint:gosec // archives come from the package repository
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}

	return dst.Close()
}
