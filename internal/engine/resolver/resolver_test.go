package resolver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/modpack/internal/core/ports/mocks"
	"go.trai.ch/modpack/internal/engine/resolver"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

// registry is an in-memory package repository. The last version of a package is its latest.
type registry struct {
	versions map[domain.PackageKey][]*domain.PackageMetadata
	calls    []string
}

func newRegistry(t *testing.T, ids ...string) *registry {
	t.Helper()
	r := &registry{versions: make(map[domain.PackageKey][]*domain.PackageMetadata)}
	for _, id := range ids {
		r.publish(t, id)
	}
	return r
}

// publish adds "Ns-Name-1.0.0" with the given dependencies.
func (r *registry) publish(t *testing.T, id string, deps ...string) {
	t.Helper()

	ref, err := domain.ParseIdentifier(id)
	require.NoError(t, err)

	meta := &domain.PackageMetadata{
		Key:         ref.Key(),
		DisplayName: ref.Name,
		Version:     ref.Version,
	}
	for _, dep := range deps {
		depRef, err := domain.ParseIdentifier(dep)
		require.NoError(t, err)
		meta.Dependencies = append(meta.Dependencies, depRef)
	}
	r.versions[ref.Key()] = append(r.versions[ref.Key()], meta)
}

func (r *registry) fetch(_ context.Context, ref domain.PackageRef) (*domain.PackageMetadata, error) {
	r.calls = append(r.calls, ref.String())

	versions := r.versions[ref.Key()]
	if len(versions) == 0 {
		return nil, zerr.With(domain.ErrPackageNotFound, "package", ref.String())
	}
	if !ref.Pinned() {
		return versions[len(versions)-1], nil
	}
	for _, v := range versions {
		if v.Version == ref.Version {
			return v, nil
		}
	}
	return nil, zerr.With(domain.ErrPackageNotFound, "package", ref.String())
}

func newResolver(t *testing.T, reg *registry, policy domain.VersionPolicy) *resolver.Resolver {
	t.Helper()

	ctrl := gomock.NewController(t)
	client := mocks.NewMockRepositoryClient(ctrl)
	client.EXPECT().Fetch(gomock.Any(), gomock.Any()).DoAndReturn(reg.fetch).AnyTimes()

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	return resolver.NewResolver(client, log, policy)
}

func refs(t *testing.T, ids ...string) []domain.PackageRef {
	t.Helper()
	out := make([]domain.PackageRef, 0, len(ids))
	for _, id := range ids {
		ref, err := domain.ParseIdentifier(id)
		require.NoError(t, err)
		out = append(out, ref)
	}
	return out
}

// contents renders a set as "Ns-Name-Version" strings in resolution order, requested ones marked with "*".
func contents(set *domain.ResolvedSet) []string {
	var out []string
	for pkg := range set.All() {
		s := pkg.Metadata.Ref().String()
		if pkg.Requested {
			s += "*"
		}
		out = append(out, s)
	}
	return out
}

func TestResolver_Resolve_Closure(t *testing.T) {
	reg := newRegistry(t)
	reg.publish(t, "Mods-A-1.0.0", "Mods-B-1.0.0")
	reg.publish(t, "Mods-B-1.0.0", "Mods-C-1.0.0")
	reg.publish(t, "Mods-C-1.0.0")
	reg.publish(t, "Mods-Unrelated-1.0.0")

	set, err := newResolver(t, reg, domain.VersionPolicyFirst).Resolve(t.Context(), refs(t, "Mods-A"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Mods-A-1.0.0*", "Mods-B-1.0.0", "Mods-C-1.0.0"}, contents(set))
}

func TestResolver_Resolve_BreadthFirstOrder(t *testing.T) {
	reg := newRegistry(t)
	reg.publish(t, "Mods-A-1.0.0", "Mods-Deep-1.0.0")
	reg.publish(t, "Mods-Deep-1.0.0", "Mods-Deeper-1.0.0")
	reg.publish(t, "Mods-Deeper-1.0.0")
	reg.publish(t, "Mods-B-1.0.0")

	set, err := newResolver(t, reg, domain.VersionPolicyFirst).Resolve(t.Context(), refs(t, "Mods-A", "Mods-B"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Mods-A-1.0.0*", "Mods-B-1.0.0*", "Mods-Deep-1.0.0", "Mods-Deeper-1.0.0"}, contents(set))
}

func TestResolver_Resolve_DiamondFetchesOnce(t *testing.T) {
	reg := newRegistry(t)
	reg.publish(t, "Mods-A-1.0.0", "Mods-B-1.0.0", "Mods-C-1.0.0")
	reg.publish(t, "Mods-B-1.0.0", "Mods-D-1.0.0")
	reg.publish(t, "Mods-C-1.0.0", "Mods-D-1.0.0")
	reg.publish(t, "Mods-D-1.0.0")

	set, err := newResolver(t, reg, domain.VersionPolicyFirst).Resolve(t.Context(), refs(t, "Mods-A"))
	require.NoError(t, err)

	assert.Equal(t, 4, set.Len())
	assert.Equal(t, []string{"Mods-A", "Mods-B-1.0.0", "Mods-C-1.0.0", "Mods-D-1.0.0"}, reg.calls)
}

func TestResolver_Resolve_Cycle(t *testing.T) {
	reg := newRegistry(t)
	reg.publish(t, "Mods-A-1.0.0", "Mods-B-1.0.0")
	reg.publish(t, "Mods-B-1.0.0", "Mods-A-1.0.0")

	set, err := newResolver(t, reg, domain.VersionPolicyFirst).Resolve(t.Context(), refs(t, "Mods-A"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Mods-A-1.0.0*", "Mods-B-1.0.0"}, contents(set))
}

func TestResolver_Resolve_DuplicateRequests(t *testing.T) {
	reg := newRegistry(t, "Mods-A-1.0.0")

	set, err := newResolver(t, reg, domain.VersionPolicyFirst).Resolve(t.Context(), refs(t, "Mods-A", "Mods-A-1.0.0"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Mods-A-1.0.0*"}, contents(set))
	assert.Equal(t, []string{"Mods-A"}, reg.calls)
}

func TestResolver_Resolve_RequestedDependency(t *testing.T) {
	reg := newRegistry(t)
	reg.publish(t, "Mods-A-1.0.0", "Mods-B-1.0.0")
	reg.publish(t, "Mods-B-1.0.0")

	set, err := newResolver(t, reg, domain.VersionPolicyFirst).Resolve(t.Context(), refs(t, "Mods-A", "Mods-B"))
	require.NoError(t, err)

	pkg, ok := set.Get(domain.PackageKey{Namespace: "Mods", Name: "B"})
	require.True(t, ok)
	assert.True(t, pkg.Requested)
}

func TestResolver_Resolve_Idempotent(t *testing.T) {
	reg := newRegistry(t)
	reg.publish(t, "Mods-A-1.0.0", "Mods-B-1.0.0", "Mods-C-1.0.0")
	reg.publish(t, "Mods-B-1.0.0", "Mods-C-1.0.0")
	reg.publish(t, "Mods-C-1.0.0", "Mods-A-1.0.0")

	r := newResolver(t, reg, domain.VersionPolicyFirst)
	first, err := r.Resolve(t.Context(), refs(t, "Mods-A"))
	require.NoError(t, err)
	second, err := r.Resolve(t.Context(), refs(t, "Mods-A"))
	require.NoError(t, err)

	assert.Equal(t, contents(first), contents(second))
}

func TestResolver_Resolve_VersionPolicies(t *testing.T) {
	// A pins D 1.0.0, E pins D 2.0.0; D 3.0.0 is the latest; only D 2.0.0 needs F.
	publish := func(t *testing.T) *registry {
		reg := newRegistry(t)
		reg.publish(t, "Mods-A-1.0.0", "Mods-D-1.0.0")
		reg.publish(t, "Mods-E-1.0.0", "Mods-D-2.0.0")
		reg.publish(t, "Mods-D-1.0.0")
		reg.publish(t, "Mods-D-2.0.0", "Mods-F-1.0.0")
		reg.publish(t, "Mods-D-3.0.0")
		reg.publish(t, "Mods-F-1.0.0")
		return reg
	}

	tests := []struct {
		name   string
		policy domain.VersionPolicy
		want   []string
	}{
		{
			name:   "first writer wins",
			policy: domain.VersionPolicyFirst,
			want:   []string{"Mods-A-1.0.0*", "Mods-E-1.0.0*", "Mods-D-1.0.0"},
		},
		{
			name:   "empty policy defaults to first",
			policy: "",
			want:   []string{"Mods-A-1.0.0*", "Mods-E-1.0.0*", "Mods-D-1.0.0"},
		},
		{
			name:   "highest version wins and brings its dependencies",
			policy: domain.VersionPolicyHighest,
			want:   []string{"Mods-A-1.0.0*", "Mods-E-1.0.0*", "Mods-D-2.0.0", "Mods-F-1.0.0"},
		},
		{
			name:   "latest ignores dependency pins",
			policy: domain.VersionPolicyLatest,
			want:   []string{"Mods-A-1.0.0*", "Mods-E-1.0.0*", "Mods-D-3.0.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := publish(t)

			set, err := newResolver(t, reg, tt.policy).Resolve(t.Context(), refs(t, "Mods-A-1.0.0", "Mods-E-1.0.0"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, contents(set))
		})
	}
}

func TestResolver_Resolve_HighestIgnoresLowerPins(t *testing.T) {
	reg := newRegistry(t)
	reg.publish(t, "Mods-A-1.0.0", "Mods-D-2.0.0")
	reg.publish(t, "Mods-E-1.0.0", "Mods-D-1.0.0")
	reg.publish(t, "Mods-D-1.0.0")
	reg.publish(t, "Mods-D-2.0.0")

	set, err := newResolver(t, reg, domain.VersionPolicyHighest).Resolve(t.Context(), refs(t, "Mods-A", "Mods-E"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Mods-A-1.0.0*", "Mods-E-1.0.0*", "Mods-D-2.0.0"}, contents(set))
	assert.NotContains(t, reg.calls, "Mods-D-1.0.0")
}

func TestResolver_Resolve_HighestDropsOrphanedDependencies(t *testing.T) {
	// Only D 1.0.0 needs G; once E upgrades D to 2.0.0 nothing requires G.
	reg := newRegistry(t)
	reg.publish(t, "Mods-A-1.0.0", "Mods-D-1.0.0")
	reg.publish(t, "Mods-E-1.0.0", "Mods-D-2.0.0")
	reg.publish(t, "Mods-D-1.0.0", "Mods-G-1.0.0")
	reg.publish(t, "Mods-D-2.0.0")
	reg.publish(t, "Mods-G-1.0.0")

	set, err := newResolver(t, reg, domain.VersionPolicyHighest).Resolve(t.Context(), refs(t, "Mods-A", "Mods-E"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Mods-A-1.0.0*", "Mods-E-1.0.0*", "Mods-D-2.0.0"}, contents(set))
}

func TestResolver_Resolve_HighestKeepsSharedDependencies(t *testing.T) {
	// G is needed by D 1.0.0 and requested directly, so the upgrade keeps it.
	reg := newRegistry(t)
	reg.publish(t, "Mods-A-1.0.0", "Mods-D-1.0.0")
	reg.publish(t, "Mods-E-1.0.0", "Mods-D-2.0.0")
	reg.publish(t, "Mods-D-1.0.0", "Mods-G-1.0.0")
	reg.publish(t, "Mods-D-2.0.0")
	reg.publish(t, "Mods-G-1.0.0")

	set, err := newResolver(t, reg, domain.VersionPolicyHighest).Resolve(t.Context(), refs(t, "Mods-A", "Mods-E", "Mods-G"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Mods-A-1.0.0*", "Mods-E-1.0.0*", "Mods-G-1.0.0*", "Mods-D-2.0.0"}, contents(set))
}

func TestResolver_Resolve_LatestKeepsRequestedPins(t *testing.T) {
	reg := newRegistry(t)
	reg.publish(t, "Mods-A-1.0.0")
	reg.publish(t, "Mods-A-2.0.0")

	set, err := newResolver(t, reg, domain.VersionPolicyLatest).Resolve(t.Context(), refs(t, "Mods-A-1.0.0"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Mods-A-1.0.0*"}, contents(set))
}

func TestResolver_Resolve_FailFast(t *testing.T) {
	reg := newRegistry(t)
	reg.publish(t, "Mods-A-1.0.0", "Mods-Missing-1.0.0", "Mods-B-1.0.0")
	reg.publish(t, "Mods-B-1.0.0")

	set, err := newResolver(t, reg, domain.VersionPolicyFirst).Resolve(t.Context(), refs(t, "Mods-A"))
	require.Error(t, err)
	assert.Nil(t, set)
	assert.ErrorContains(t, err, domain.ErrResolutionFailed.Error())
	assert.ErrorContains(t, err, domain.ErrPackageNotFound.Error())
	assert.NotContains(t, reg.calls, "Mods-B-1.0.0", "resolution stops at the first failure")
}

func TestResolver_Resolve_ContextCanceled(t *testing.T) {
	reg := newRegistry(t, "Mods-A-1.0.0")

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := newResolver(t, reg, domain.VersionPolicyFirst).Resolve(ctx, refs(t, "Mods-A"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrResolutionFailed.Error())
	assert.Empty(t, reg.calls)
}

func TestResolver_Resolve_Empty(t *testing.T) {
	reg := newRegistry(t)

	set, err := newResolver(t, reg, domain.VersionPolicyFirst).Resolve(t.Context(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
	assert.Empty(t, reg.calls)
}
