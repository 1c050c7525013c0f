// Package domain contains the core domain models of the modpack resolver.
package domain

import (
	"iter"
	"time"

	"go.trai.ch/zerr"
)

// ResolvedPackage is a single entry of a ResolvedSet.
type ResolvedPackage struct {
	// Metadata is the version selected for installation.
	Metadata *PackageMetadata

	// Requested is true when the package was listed in the input, false when it
	// was pulled in as a dependency.
	Requested bool
}

// ResolvedSet maps package keys to the single version chosen for installation.
// Entries keep the order in which they were first resolved.
type ResolvedSet struct {
	entries map[PackageKey]ResolvedPackage
	order   []PackageKey
}

// Len returns the number of resolved packages.
func (s *ResolvedSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Has reports whether the key has been resolved.
func (s *ResolvedSet) Has(key PackageKey) bool {
	if s == nil {
		return false
	}
	_, ok := s.entries[key]
	return ok
}

// Get returns the entry for key.
func (s *ResolvedSet) Get(key PackageKey) (ResolvedPackage, bool) {
	if s == nil {
		return ResolvedPackage{}, false
	}
	p, ok := s.entries[key]
	return p, ok
}

// All yields the entries in resolution order.
func (s *ResolvedSet) All() iter.Seq[ResolvedPackage] {
	return func(yield func(ResolvedPackage) bool) {
		if s == nil {
			return
		}
		for _, key := range s.order {
			if !yield(s.entries[key]) {
				return
			}
		}
	}
}

// Backward yields the entries in reverse resolution order, dependencies before
// the packages that pulled them in.
func (s *ResolvedSet) Backward() iter.Seq[ResolvedPackage] {
	return func(yield func(ResolvedPackage) bool) {
		if s == nil {
			return
		}
		for i := len(s.order) - 1; i >= 0; i-- {
			if !yield(s.entries[s.order[i]]) {
				return
			}
		}
	}
}

// ResolvedSetBuilder accumulates a ResolvedSet.
// It is owned by the resolver for the duration of a run.
type ResolvedSetBuilder struct {
	set *ResolvedSet
}

// NewResolvedSetBuilder returns an empty builder.
func NewResolvedSetBuilder() *ResolvedSetBuilder {
	return &ResolvedSetBuilder{
		set: &ResolvedSet{entries: make(map[PackageKey]ResolvedPackage)},
	}
}

// Has reports whether the key has been added.
func (b *ResolvedSetBuilder) Has(key PackageKey) bool {
	return b.set.Has(key)
}

// Get returns the entry currently stored for key.
func (b *ResolvedSetBuilder) Get(key PackageKey) (ResolvedPackage, bool) {
	return b.set.Get(key)
}

// Add inserts a new entry. It fails if the key is already present.
func (b *ResolvedSetBuilder) Add(meta *PackageMetadata, requested bool) error {
	if b.set.Has(meta.Key) {
		return zerr.With(ErrPackageAlreadyResolved, "package", meta.Key.String())
	}
	b.set.entries[meta.Key] = ResolvedPackage{Metadata: meta, Requested: requested}
	b.set.order = append(b.set.order, meta.Key)
	return nil
}

// Replace swaps the metadata of an existing entry, keeping its position and
// requested flag.
func (b *ResolvedSetBuilder) Replace(meta *PackageMetadata) error {
	existing, ok := b.set.entries[meta.Key]
	if !ok {
		return zerr.With(ErrPackageNotResolved, "package", meta.Key.String())
	}
	existing.Metadata = meta
	b.set.entries[meta.Key] = existing
	return nil
}

// Build hands the accumulated set over. The builder must not be used afterwards.
func (b *ResolvedSetBuilder) Build() *ResolvedSet {
	s := b.set
	b.set = nil
	return s
}

// OutputManifestEntry is the exported view of one resolved package.
type OutputManifestEntry struct {
	DisplayName string
	FullName    string
	Version     string
	LastUpdated time.Time
	// Age is the humanized time elapsed since LastUpdated (e.g. "3 days ago").
	Age        string
	PackageURL string
	Dependency bool
}
