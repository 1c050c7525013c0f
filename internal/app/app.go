// Package app implements the application layer for modpack.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/modpack/internal/core/ports"
	"go.trai.ch/zerr"
)

// AutoExportPath asks for the manifest to be written to a timestamped file.
const AutoExportPath = "auto"

// App represents the main application logic.
type App struct {
	modlist   ports.ModListLoader
	resolver  ports.DependencyResolver
	exporter  ports.ManifestExporter
	store     ports.ArchiveStore
	fetcher   ports.ArchiveFetcher
	extractor ports.Extractor
	logger    ports.Logger
	stdout    io.Writer
	stderr    io.Writer
	now       func() time.Time
}

// New creates a new App instance.
func New(
	modlist ports.ModListLoader,
	resolver ports.DependencyResolver,
	exporter ports.ManifestExporter,
	store ports.ArchiveStore,
	fetcher ports.ArchiveFetcher,
	extractor ports.Extractor,
	log ports.Logger,
) *App {
	return &App{
		modlist:   modlist,
		resolver:  resolver,
		exporter:  exporter,
		store:     store,
		fetcher:   fetcher,
		extractor: extractor,
		logger:    log,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		now:       time.Now,
	}
}

// WithStdout redirects the summary and manifest output of the App.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithStderr redirects the summary when the manifest itself goes to stdout.
func (a *App) WithStderr(w io.Writer) *App {
	a.stderr = w
	return a
}

// WithClock replaces the clock used to timestamp outputs.
// This is primarily used for testing.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// ExportPath is where the manifest is written: a file, "-" for stdout,
	// AutoExportPath for a timestamped file, or "" for no manifest.
	ExportPath string

	// ExportOnly stops the run after the manifest is written.
	ExportOnly bool

	// OutputParent is the directory receiving the modpack directory.
	OutputParent string

	// Verbose enables debug logging.
	Verbose bool

	// KeepPartial keeps a partially extracted modpack when the run fails.
	KeepPartial bool
}

// Run builds a modpack from the mod list at listPath.
//
//nolint:cyclop // orchestration function
func (a *App) Run(ctx context.Context, listPath string, opts RunOptions) error {
	a.logger.SetVerbose(opts.Verbose)
	now := a.now()

	parent := opts.OutputParent
	if parent == "" {
		parent = "."
	}

	// 1. Read the mod list
	refs, err := a.modlist.Load(listPath)
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		a.logger.Warn(fmt.Sprintf("%s lists no packages, nothing to do", listPath))
		return nil
	}

	// 2. Resolve dependencies
	a.logger.Info(fmt.Sprintf("resolving %d requested packages...", len(refs)))
	set, err := a.resolver.Resolve(ctx, refs)
	if err != nil {
		return err
	}

	exportPath := opts.ExportPath
	if exportPath == "" && opts.ExportOnly {
		exportPath = AutoExportPath
	}
	if exportPath == AutoExportPath {
		exportPath = filepath.Join(parent, domain.ModlistFileName(now))
	}

	// A manifest on stdout must stay loadable, so the summary moves aside.
	summaryOut := a.stdout
	if exportPath == "-" {
		summaryOut = a.stderr
	}
	if err := a.exporter.Summary(summaryOut, set, now); err != nil {
		return err
	}

	// 3. Export the manifest
	if exportPath != "" {
		if err := a.exporter.ExportFile(exportPath, a.stdout, set, now); err != nil {
			return err
		}
		if exportPath != "-" {
			a.logger.Info("wrote modlist to " + exportPath)
		}
	}
	if opts.ExportOnly {
		return nil
	}

	// 4. Download archives
	archives, err := a.download(ctx, set)
	if err != nil {
		return err
	}

	// 5. Extract into a fresh modpack directory
	outDir := filepath.Join(parent, domain.OutputDirName(now))
	if err := a.extractor.Prepare(outDir); err != nil {
		return err
	}

	if err := a.extract(set, archives, outDir); err != nil {
		if !opts.KeepPartial {
			if rmErr := os.RemoveAll(outDir); rmErr != nil {
				a.logger.Warn(fmt.Sprintf("failed to remove partial modpack %s: %v", outDir, rmErr))
			} else {
				a.logger.Warn("removed partial modpack " + outDir)
			}
		}
		return err
	}

	a.logger.Info(fmt.Sprintf("modpack with %d packages ready in %s", set.Len(), outDir))
	return nil
}

// download fetches the archive of every package of set that is not cached yet.
func (a *App) download(ctx context.Context, set *domain.ResolvedSet) (map[domain.PackageKey]string, error) {
	archives := make(map[domain.PackageKey]string, set.Len())

	for pkg := range set.All() {
		meta := pkg.Metadata
		name := meta.Ref().String()

		path, ok, err := a.store.Get(meta)
		if err != nil {
			return nil, zerr.With(err, "package", name)
		}
		if ok {
			a.logger.Debug("using cached archive of " + name)
			archives[meta.Key] = path
			continue
		}

		path, err = a.store.Path(meta)
		if err != nil {
			return nil, zerr.With(err, "package", name)
		}

		a.logger.Info("downloading " + name + "...")
		n, err := a.fetcher.Download(ctx, meta.DownloadURL, path)
		if err != nil {
			return nil, zerr.With(err, "package", name)
		}
		a.logger.Debug(fmt.Sprintf("downloaded %s (%s)", name, humanize.Bytes(uint64(n)))) //nolint:gosec // sizes are non-negative

		archives[meta.Key] = path
	}

	return archives, nil
}

// extract lays out every archive, dependencies first so requested packages win file conflicts.
func (a *App) extract(set *domain.ResolvedSet, archives map[domain.PackageKey]string, outDir string) error {
	for pkg := range set.Backward() {
		meta := pkg.Metadata
		a.logger.Debug("extracting " + meta.Ref().String())
		if err := a.extractor.Extract(meta, archives[meta.Key], outDir); err != nil {
			return err
		}
	}
	return nil
}

// Clean removes the archive cache.
func (a *App) Clean(_ context.Context) error {
	a.logger.Info("removing archive cache...")
	if err := a.store.Clean(); err != nil {
		return err
	}
	a.logger.Info("removed archive cache")
	return nil
}
