package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/larder/internal/core/domain"
)

func mustConstraint(t *testing.T, expr string) domain.VersionConstraint {
	t.Helper()
	c, err := domain.ParseConstraint(expr)
	require.NoError(t, err)
	return c
}

func declaredDep(t *testing.T, name, expr string, loc domain.Location) *domain.Dependency {
	t.Helper()
	return &domain.Dependency{
		Name:       domain.NewInternedString(name),
		Constraint: mustConstraint(t, expr),
		Location:   loc,
	}
}

func lockedEntry(name, version, sourceID string, deps map[string]string) domain.LockedEntry {
	return domain.LockedEntry{
		Name:         domain.NewInternedString(name),
		Version:      version,
		SourceID:     sourceID,
		Dependencies: deps,
	}
}

// lockedRecord builds a record whose declarations and graph match the given
// dependencies exactly, the state a successful install leaves behind.
func lockedRecord(t *testing.T, deps []*domain.Dependency, entries []domain.LockedEntry) *domain.LockRecord {
	t.Helper()
	r := domain.NewLockRecord()
	r.SetDeclared(deps)
	r.SetGraph(entries)
	return r
}

func TestLockRecord_Unlock(t *testing.T) {
	deps := []*domain.Dependency{
		declaredDep(t, "foo", ">= 1.0.0", nil),
		declaredDep(t, "bar", ">= 2.0.0", nil),
	}
	r := lockedRecord(t, deps, []domain.LockedEntry{
		lockedEntry("foo", "1.2.0", "s", nil),
		lockedEntry("bar", "2.1.3", "s", nil),
	})

	r.Unlock("foo")

	_, declared := r.Declared("foo")
	assert.False(t, declared)
	_, inGraph := r.Graph().Find("foo")
	assert.False(t, inGraph)

	_, declared = r.Declared("bar")
	assert.True(t, declared)

	// Unlocking a name that was never locked changes nothing.
	r.Unlock("ghost")
	assert.Equal(t, []string{"bar"}, r.DeclaredNames())
}

func TestLockRecord_UnlockAll(t *testing.T) {
	r := lockedRecord(t,
		[]*domain.Dependency{declaredDep(t, "foo", ">= 1.0.0", nil)},
		[]domain.LockedEntry{lockedEntry("foo", "1.2.0", "s", nil)},
	)

	r.UnlockAll()

	assert.Empty(t, r.DeclaredNames())
	assert.Zero(t, r.Graph().Len())
}

func TestLockRecord_SetGraphReplacesWholesale(t *testing.T) {
	r := domain.NewLockRecord()
	r.SetGraph([]domain.LockedEntry{
		lockedEntry("old", "0.1.0", "s", nil),
	})

	r.SetGraph([]domain.LockedEntry{
		lockedEntry("foo", "1.2.0", "s", nil),
		lockedEntry("bar", "2.1.3", "s", nil),
	})

	_, stale := r.Graph().Find("old")
	assert.False(t, stale, "entries from the previous graph must not survive")

	entries := r.Graph().Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "bar", entries[0].Name.String())
	assert.Equal(t, "foo", entries[1].Name.String())
}

func TestLockRecord_Trusted(t *testing.T) {
	manifest := func(deps ...*domain.Dependency) *domain.Manifest {
		return &domain.Manifest{Path: "/proj/larder.yaml", Dependencies: deps}
	}

	t.Run("identical declarations and satisfying graph", func(t *testing.T) {
		dep := declaredDep(t, "foo", ">= 1.0.0", nil)
		r := lockedRecord(t,
			[]*domain.Dependency{dep},
			[]domain.LockedEntry{lockedEntry("foo", "1.2.0", "s", nil)},
		)
		assert.True(t, r.Trusted(manifest(dep)))
	})

	t.Run("dependency never locked", func(t *testing.T) {
		r := domain.NewLockRecord()
		assert.False(t, r.Trusted(manifest(declaredDep(t, "foo", ">= 1.0.0", nil))))
	})

	t.Run("constraint text changed", func(t *testing.T) {
		r := lockedRecord(t,
			[]*domain.Dependency{declaredDep(t, "foo", ">= 1.0.0", nil)},
			[]domain.LockedEntry{lockedEntry("foo", "1.2.0", "s", nil)},
		)
		assert.False(t, r.Trusted(manifest(declaredDep(t, "foo", ">= 1.1.0", nil))))
	})

	t.Run("location changed", func(t *testing.T) {
		r := lockedRecord(t,
			[]*domain.Dependency{declaredDep(t, "foo", ">= 1.0.0", nil)},
			[]domain.LockedEntry{lockedEntry("foo", "1.2.0", "s", nil)},
		)
		moved := declaredDep(t, "foo", ">= 1.0.0", domain.SCMLocation{URL: "https://example.com/foo.git"})
		assert.False(t, r.Trusted(manifest(moved)))
	})

	t.Run("graph entry missing", func(t *testing.T) {
		dep := declaredDep(t, "foo", ">= 1.0.0", nil)
		r := domain.NewLockRecord()
		r.SetDeclared([]*domain.Dependency{dep})
		assert.False(t, r.Trusted(manifest(dep)))
	})

	t.Run("locked version violates constraint", func(t *testing.T) {
		dep := declaredDep(t, "foo", ">= 2.0.0", nil)
		r := domain.NewLockRecord()
		r.SetDeclared([]*domain.Dependency{dep})
		r.SetGraph([]domain.LockedEntry{lockedEntry("foo", "1.2.0", "s", nil)})
		assert.False(t, r.Trusted(manifest(dep)))
	})

	t.Run("transitive edge dangling", func(t *testing.T) {
		dep := declaredDep(t, "foo", ">= 1.0.0", nil)
		r := lockedRecord(t,
			[]*domain.Dependency{dep},
			[]domain.LockedEntry{
				lockedEntry("foo", "1.2.0", "s", map[string]string{"libx": ">= 0.3.0"}),
			},
		)
		assert.False(t, r.Trusted(manifest(dep)), "edge to an unlocked package cannot be trusted")
	})

	t.Run("transitive edge satisfied", func(t *testing.T) {
		dep := declaredDep(t, "foo", ">= 1.0.0", nil)
		r := lockedRecord(t,
			[]*domain.Dependency{dep},
			[]domain.LockedEntry{
				lockedEntry("foo", "1.2.0", "s", map[string]string{"libx": ">= 0.3.0"}),
				lockedEntry("libx", "0.3.5", "s", nil),
			},
		)
		assert.True(t, r.Trusted(manifest(dep)))
	})

	t.Run("transitive edge violated", func(t *testing.T) {
		dep := declaredDep(t, "foo", ">= 1.0.0", nil)
		r := lockedRecord(t,
			[]*domain.Dependency{dep},
			[]domain.LockedEntry{
				lockedEntry("foo", "1.2.0", "s", map[string]string{"libx": ">= 0.4.0"}),
				lockedEntry("libx", "0.3.5", "s", nil),
			},
		)
		assert.False(t, r.Trusted(manifest(dep)))
	})

	t.Run("extra graph entries do not block trust", func(t *testing.T) {
		dep := declaredDep(t, "foo", ">= 1.0.0", nil)
		r := lockedRecord(t,
			[]*domain.Dependency{dep},
			[]domain.LockedEntry{
				lockedEntry("foo", "1.2.0", "s", nil),
				lockedEntry("leftover", "9.9.9", "s", nil),
			},
		)
		assert.True(t, r.Trusted(manifest(dep)))
	})
}

func TestDeclaredEntry_Matches(t *testing.T) {
	entry := domain.DeclaredEntry{
		Name:       domain.NewInternedString("foo"),
		Constraint: mustConstraint(t, ">= 1.0.0"),
		Location:   domain.RegistryLocation{},
	}

	assert.True(t, entry.Matches(declaredDep(t, "foo", ">= 1.0.0", nil)))
	assert.True(t, entry.Matches(declaredDep(t, "foo", ">= 1.0.0", domain.RegistryLocation{})))
	assert.False(t, entry.Matches(declaredDep(t, "foo", ">= 1.0.1", nil)))
	assert.False(t, entry.Matches(declaredDep(t, "bar", ">= 1.0.0", nil)))
	assert.False(t, entry.Matches(declaredDep(t, "foo", ">= 1.0.0", domain.PathLocation{Path: "/x"})))
}

func TestOutdatedDependencyError(t *testing.T) {
	err := &domain.OutdatedDependencyError{
		Locked:   lockedEntry("foo", "1.2.0", "s", nil),
		Declared: *declaredDep(t, "foo", ">= 2.0.0", nil),
	}

	assert.Contains(t, err.Error(), "foo")
	assert.Contains(t, err.Error(), "1.2.0")
	assert.Contains(t, err.Error(), ">= 2.0.0")
	assert.Equal(t, err.Error(), err.Message())
}
