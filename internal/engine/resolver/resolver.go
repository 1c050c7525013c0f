// Package resolver expands requested packages into the set of packages to install.
package resolver

import (
	"context"

	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/modpack/internal/core/ports"
	"go.trai.ch/zerr"
)

// pending is a reference waiting in the frontier.
type pending struct {
	ref        domain.PackageRef
	requested  bool
	requiredBy string
}

// Resolver implements ports.DependencyResolver with a breadth-first walk of the dependency graph.
type Resolver struct {
	client ports.RepositoryClient
	logger ports.Logger
	policy domain.VersionPolicy
}

// NewResolver creates a Resolver querying client and settling version conflicts with policy.
func NewResolver(client ports.RepositoryClient, logger ports.Logger, policy domain.VersionPolicy) *Resolver {
	if policy == "" {
		policy = domain.VersionPolicyFirst
	}
	return &Resolver{client: client, logger: logger, policy: policy}
}

// Resolve returns every requested package plus its transitive dependencies.
//
// Packages appear in the order they are first reached. Each package is kept
// once; which version wins depends on the version policy. When a version is
// upgraded, dependencies reachable only through the old version are dropped.
// Any lookup failure aborts the resolution.
func (r *Resolver) Resolve(ctx context.Context, refs []domain.PackageRef) (*domain.ResolvedSet, error) {
	builder := domain.NewResolvedSetBuilder()

	upgraded := false

	queue := make([]pending, 0, len(refs))
	for _, ref := range refs {
		queue = append(queue, pending{ref: ref, requested: true})
	}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if err := ctx.Err(); err != nil {
			return nil, r.fail(err, item)
		}

		ref := item.ref
		if r.policy == domain.VersionPolicyLatest && !item.requested {
			ref = ref.Unpinned()
		}

		if existing, ok := builder.Get(ref.Key()); ok && !r.supersedes(ref, existing.Metadata) {
			continue
		}

		r.logger.Debug("fetching " + ref.String())
		meta, err := r.client.Fetch(ctx, ref)
		if err != nil {
			return nil, r.fail(err, item)
		}

		if existing, ok := builder.Get(meta.Key); ok {
			if r.policy != domain.VersionPolicyHighest ||
				domain.CompareVersions(meta.Version, existing.Metadata.Version) <= 0 {
				continue
			}
			r.logger.Debug("upgrading " + meta.Key.String() + " from " + existing.Metadata.Version + " to " + meta.Version)
			if err := builder.Replace(meta); err != nil {
				return nil, r.fail(err, item)
			}
			upgraded = true
		} else if err := builder.Add(meta, item.requested); err != nil {
			return nil, r.fail(err, item)
		}

		for _, dep := range meta.Dependencies {
			queue = append(queue, pending{ref: dep, requiredBy: meta.Ref().String()})
		}
	}

	if !upgraded {
		return builder.Build(), nil
	}
	return r.prune(builder.Build())
}

// prune drops packages that only a replaced version depended on. The
// survivors keep their resolution order.
func (r *Resolver) prune(set *domain.ResolvedSet) (*domain.ResolvedSet, error) {
	reachable := make(map[domain.PackageKey]bool, set.Len())

	var stack []domain.PackageKey
	for pkg := range set.All() {
		if pkg.Requested {
			stack = append(stack, pkg.Metadata.Key)
		}
	}
	for len(stack) > 0 {
		key := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		pkg, ok := set.Get(key)
		if !ok || reachable[key] {
			continue
		}
		reachable[key] = true
		for _, dep := range pkg.Metadata.Dependencies {
			stack = append(stack, dep.Key())
		}
	}

	builder := domain.NewResolvedSetBuilder()
	for pkg := range set.All() {
		if !reachable[pkg.Metadata.Key] {
			r.logger.Debug("dropping " + pkg.Metadata.Ref().String() + ", no longer required")
			continue
		}
		if err := builder.Add(pkg.Metadata, pkg.Requested); err != nil {
			return nil, zerr.Wrap(err, domain.ErrResolutionFailed.Error())
		}
	}
	return builder.Build(), nil
}

// supersedes reports whether ref must be fetched although its package is already resolved.
func (r *Resolver) supersedes(ref domain.PackageRef, current *domain.PackageMetadata) bool {
	return r.policy == domain.VersionPolicyHighest &&
		ref.Pinned() &&
		domain.CompareVersions(ref.Version, current.Version) > 0
}

func (r *Resolver) fail(err error, item pending) error {
	resolveErr := zerr.With(zerr.Wrap(err, domain.ErrResolutionFailed.Error()), "package", item.ref.String())
	if item.requiredBy != "" {
		resolveErr = zerr.With(resolveErr, "required_by", item.requiredBy)
	}
	return resolveErr
}
