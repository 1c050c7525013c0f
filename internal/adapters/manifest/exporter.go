// Package manifest renders resolved package sets as a modlist file and a terminal summary.
package manifest

import (
	"bytes"
	"cmp"
	"fmt"
	"io"
	"iter"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/modpack/internal/ui/output"
	"go.trai.ch/modpack/internal/ui/style"
	"go.trai.ch/zerr"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05 MST"
)

// Exporter implements ports.ManifestExporter.
type Exporter struct{}

// NewExporter creates a new Exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Entries projects set into manifest entries ordered by display name.
// The sequence can be ranged over more than once.
func (e *Exporter) Entries(set *domain.ResolvedSet, now time.Time) iter.Seq[domain.OutputManifestEntry] {
	return func(yield func(domain.OutputManifestEntry) bool) {
		pkgs := slices.Collect(set.All())
		slices.SortStableFunc(pkgs, func(a, b domain.ResolvedPackage) int {
			return cmp.Or(
				cmp.Compare(strings.ToLower(a.Metadata.DisplayName), strings.ToLower(b.Metadata.DisplayName)),
				cmp.Compare(a.Metadata.Key.String(), b.Metadata.Key.String()),
			)
		})

		for _, pkg := range pkgs {
			if !yield(toEntry(pkg, now)) {
				return
			}
		}
	}
}

func toEntry(pkg domain.ResolvedPackage, now time.Time) domain.OutputManifestEntry {
	meta := pkg.Metadata
	return domain.OutputManifestEntry{
		DisplayName: meta.DisplayName,
		FullName:    meta.Key.String(),
		Version:     meta.Version,
		LastUpdated: meta.LastUpdated,
		Age:         humanize.RelTime(meta.LastUpdated, now, "ago", "from now"),
		PackageURL:  meta.PackageURL,
		Dependency:  !pkg.Requested,
	}
}

// Export writes the manifest of set to w.
// The manifest is itself a valid mod list: details are comments, URLs are bracketed.
func (e *Exporter) Export(w io.Writer, set *domain.ResolvedSet, now time.Time) error {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# modpack manifest, %d packages, generated %s\n",
		set.Len(), now.UTC().Format(timestampLayout))

	for entry := range e.Entries(set, now) {
		details := "updated " + entry.Age + " on " + entry.LastUpdated.UTC().Format(dateLayout)
		if entry.Dependency {
			details = "dependency, " + details
		}
		fmt.Fprintf(&buf, "\n# %s %s (%s)\n<%s>\n", entry.DisplayName, entry.Version, details, entry.PackageURL)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return zerr.Wrap(err, domain.ErrOutputWrite.Error())
	}
	return nil
}

// ExportFile writes the manifest of set to path. A path of "-" writes to w instead.
func (e *Exporter) ExportFile(path string, w io.Writer, set *domain.ResolvedSet, now time.Time) error {
	if path == "-" {
		return e.Export(w, set, now)
	}

	var buf bytes.Buffer
	if err := e.Export(&buf, set, now); err != nil {
		return zerr.With(err, "path", path)
	}

	//nolint:gosec // path is chosen by the user on the command line
	if err := os.WriteFile(path, buf.Bytes(), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputWrite.Error()), "path", path)
	}
	return nil
}

// Summary writes one line per requested package of set to w, least recently updated first.
func (e *Exporter) Summary(w io.Writer, set *domain.ResolvedSet, now time.Time) error {
	var requested []*domain.PackageMetadata
	for pkg := range set.All() {
		if pkg.Requested {
			requested = append(requested, pkg.Metadata)
		}
	}
	slices.SortStableFunc(requested, func(a, b *domain.PackageMetadata) int {
		return cmp.Or(a.LastUpdated.Compare(b.LastUpdated), cmp.Compare(a.Key.String(), b.Key.String()))
	})

	r := output.NewRenderer(w)
	var buf strings.Builder

	buf.WriteString("Requested packages, oldest update first:\n")
	for _, meta := range requested {
		age := now.Sub(meta.LastUpdated)
		line := fmt.Sprintf("%s %s: updated %s (%s, version %s, %s)",
			style.AgeIcon(age),
			meta.DisplayName,
			humanize.RelTime(meta.LastUpdated, now, "ago", "from now"),
			meta.LastUpdated.UTC().Format(dateLayout),
			meta.Version,
			meta.PackageURL,
		)
		buf.WriteString(style.AgeStyle(r, age).Render(line))
		buf.WriteString("\n")
	}

	footer := fmt.Sprintf("%d packages resolved, %d dependencies", set.Len(), set.Len()-len(requested))
	buf.WriteString(style.Muted(r).Render(footer))
	buf.WriteString("\n")

	if _, err := io.WriteString(w, buf.String()); err != nil {
		return zerr.Wrap(err, domain.ErrOutputWrite.Error())
	}
	return nil
}
