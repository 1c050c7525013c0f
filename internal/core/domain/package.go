package domain

import (
	"strings"
	"time"

	"go.trai.ch/zerr"
	"golang.org/x/mod/semver"
)

// PackageKey identifies a package independently of its version.
// It is the deduplication key of a ResolvedSet.
type PackageKey struct {
	Namespace string
	Name      string
}

// String renders the key the way the repository names packages (e.g. "BepInEx-BepInExPack").
func (k PackageKey) String() string {
	return k.Namespace + "-" + k.Name
}

// PackageRef points at a package, optionally pinned to a version.
// An empty Version means "the latest published version".
type PackageRef struct {
	Namespace string
	Name      string
	Version   string
}

// Key drops the version from the reference.
func (r PackageRef) Key() PackageKey {
	return PackageKey{Namespace: r.Namespace, Name: r.Name}
}

// Pinned reports whether the reference names an explicit version.
func (r PackageRef) Pinned() bool {
	return r.Version != ""
}

// Unpinned returns a copy of the reference without its version.
func (r PackageRef) Unpinned() PackageRef {
	r.Version = ""
	return r
}

// String renders the reference as a repository dependency string
// ("Namespace-Name" or "Namespace-Name-1.2.3").
func (r PackageRef) String() string {
	if r.Version == "" {
		return r.Key().String()
	}
	return r.Key().String() + "-" + r.Version
}

// PackageMetadata is an immutable snapshot of a package version as published by the repository.
type PackageMetadata struct {
	// Key is the (namespace, name) pair of the package.
	Key PackageKey

	// DisplayName is the human readable package name.
	DisplayName string

	// Version is the version string of this snapshot (e.g. "1.2.3").
	Version string

	// Description is the short package description.
	Description string

	// Dependencies lists the packages this version requires, each pinned to a version.
	Dependencies []PackageRef

	// LastUpdated is when this version was published.
	LastUpdated time.Time

	// DownloadURL points at the package archive.
	DownloadURL string

	// PackageURL points at the package page.
	PackageURL string

	// FileSize is the archive size in bytes, or 0 when unknown.
	FileSize int64
}

// Ref returns a reference pinned to this snapshot's version.
func (m *PackageMetadata) Ref() PackageRef {
	return PackageRef{Namespace: m.Key.Namespace, Name: m.Key.Name, Version: m.Version}
}

// ParseIdentifier parses a repository dependency string.
// Accepted forms are "Namespace-Name" and "Namespace-Name-Major.Minor.Patch".
func ParseIdentifier(s string) (PackageRef, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "-")

	var ref PackageRef
	switch len(parts) {
	case 2:
		ref = PackageRef{Namespace: parts[0], Name: parts[1]}
	case 3:
		ref = PackageRef{Namespace: parts[0], Name: parts[1], Version: parts[2]}
	default:
		return PackageRef{}, zerr.With(ErrInvalidPackageRef, "identifier", s)
	}

	if err := ref.validate(); err != nil {
		return PackageRef{}, zerr.With(err, "identifier", s)
	}
	return ref, nil
}

// RefFromPath extracts a reference from the path of a repository URL.
//
// Recognized layouts:
//
//	/package/<ns>/<name>/[<version>/]
//	/package/download/<ns>/<name>/<version>/
//	/c/<community>/p/<ns>/<name>/[<version>/]
func RefFromPath(p string) (PackageRef, error) {
	segments := strings.FieldsFunc(p, func(r rune) bool { return r == '/' })

	var rest []string
	switch {
	case len(segments) >= 2 && segments[0] == "package" && segments[1] == "download":
		rest = segments[2:]
		if len(rest) != 3 {
			return PackageRef{}, zerr.With(ErrInvalidPackageRef, "path", p)
		}
	case len(segments) >= 1 && segments[0] == "package":
		rest = segments[1:]
	case len(segments) >= 3 && segments[0] == "c" && segments[2] == "p":
		rest = segments[3:]
	default:
		return PackageRef{}, zerr.With(ErrInvalidPackageRef, "path", p)
	}

	var ref PackageRef
	switch len(rest) {
	case 2:
		ref = PackageRef{Namespace: rest[0], Name: rest[1]}
	case 3:
		ref = PackageRef{Namespace: rest[0], Name: rest[1], Version: rest[2]}
	default:
		return PackageRef{}, zerr.With(ErrInvalidPackageRef, "path", p)
	}

	if err := ref.validate(); err != nil {
		return PackageRef{}, zerr.With(err, "path", p)
	}
	return ref, nil
}

func (r PackageRef) validate() error {
	if !validSegment(r.Namespace) || !validSegment(r.Name) {
		return ErrInvalidPackageRef
	}
	if r.Version != "" && !ValidVersion(r.Version) {
		return zerr.With(ErrInvalidPackageRef, "version", r.Version)
	}
	return nil
}

// ValidVersion reports whether v is a Major.Minor.Patch version string.
func ValidVersion(v string) bool {
	return strings.Count(v, ".") == 2 && semver.IsValid("v"+v)
}

// CompareVersions compares two Major.Minor.Patch version strings.
// The result is -1, 0 or +1, like strings.Compare.
func CompareVersions(a, b string) int {
	return semver.Compare("v"+a, "v"+b)
}

func validSegment(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}
