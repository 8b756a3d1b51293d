package solver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/larder/internal/adapters/solver"
	"go.trai.ch/larder/internal/core/domain"
)

func published(name, version string, edges map[string]string) domain.PackageVersion {
	return domain.PackageVersion{
		Name:         domain.NewInternedString(name),
		Version:      version,
		Dependencies: edges,
		SourceID:     "https://packages.example.com",
	}
}

func universe(t *testing.T, pvs ...domain.PackageVersion) *domain.Universe {
	t.Helper()
	u := domain.NewUniverse()
	u.AddAll(pvs)
	return u
}

func dep(t *testing.T, name, expr string) *domain.Dependency {
	t.Helper()
	c, err := domain.ParseConstraint(expr)
	require.NoError(t, err)
	return &domain.Dependency{Name: domain.NewInternedString(name), Constraint: c}
}

// locked flattens a result into name → locked version.
func locked(deps []*domain.Dependency) map[string]string {
	out := make(map[string]string, len(deps))
	for _, d := range deps {
		out[d.Name.String()] = d.LockedVersion
	}
	return out
}

func TestResolveChoosesNewestSatisfying(t *testing.T) {
	u := universe(t,
		published("alpha", "1.0.0", nil),
		published("alpha", "1.2.0", nil),
		published("alpha", "2.0.0", nil),
	)

	res := solver.NewResolver().NewResolution(u)
	resolved, err := res.Resolve(context.Background(), []*domain.Dependency{dep(t, "alpha", "^1.0.0")})
	require.NoError(t, err)

	require.Equal(t, map[string]string{"alpha": "1.2.0"}, locked(resolved))
}

func TestResolveWalksTransitiveChain(t *testing.T) {
	u := universe(t,
		published("alpha", "1.2.0", map[string]string{"beta": ">= 1.0.0"}),
		published("beta", "1.0.4", map[string]string{"gamma": "~2.1"}),
		published("gamma", "2.1.3", nil),
		published("gamma", "2.2.0", nil),
	)

	res := solver.NewResolver().NewResolution(u)
	resolved, err := res.Resolve(context.Background(), []*domain.Dependency{dep(t, "alpha", ">= 1.0.0")})
	require.NoError(t, err)

	require.Equal(t, map[string]string{
		"alpha": "1.2.0",
		"beta":  "1.0.4",
		"gamma": "2.1.3",
	}, locked(resolved))

	// Results come back name-sorted with input identity preserved.
	require.Equal(t, "alpha", resolved[0].Name.String())
	require.Equal(t, "beta", resolved[1].Name.String())
	require.Equal(t, "gamma", resolved[2].Name.String())
}

func TestResolveIntersectsDiamondConstraints(t *testing.T) {
	u := universe(t,
		published("left", "1.0.0", map[string]string{"shared": ">= 1.1.0"}),
		published("right", "1.0.0", map[string]string{"shared": "< 1.3.0"}),
		published("shared", "1.0.0", nil),
		published("shared", "1.2.5", nil),
		published("shared", "1.4.0", nil),
	)

	res := solver.NewResolver().NewResolution(u)
	resolved, err := res.Resolve(context.Background(), []*domain.Dependency{
		dep(t, "left", ">= 1.0.0"),
		dep(t, "right", ">= 1.0.0"),
	})
	require.NoError(t, err)

	require.Equal(t, "1.2.5", locked(resolved)["shared"])
}

func TestResolveDowngradesOnLateConstraint(t *testing.T) {
	// zebra sorts after apple, so apple is first picked at 2.0.0 and must
	// be re-picked once zebra's edge arrives.
	u := universe(t,
		published("apple", "2.0.0", nil),
		published("apple", "1.5.0", nil),
		published("zebra", "1.0.0", map[string]string{"apple": "< 2.0.0"}),
	)

	res := solver.NewResolver().NewResolution(u)
	resolved, err := res.Resolve(context.Background(), []*domain.Dependency{
		dep(t, "apple", ">= 1.0.0"),
		dep(t, "zebra", ">= 1.0.0"),
	})
	require.NoError(t, err)

	require.Equal(t, map[string]string{
		"apple": "1.5.0",
		"zebra": "1.0.0",
	}, locked(resolved))
}

func TestResolveRespectsPins(t *testing.T) {
	u := universe(t,
		published("alpha", "1.2.0", map[string]string{"tools": ">= 0.5.0"}),
		// The registry also publishes tools, but the pin must win.
		published("tools", "9.9.9", nil),
		published("beta", "1.0.4", nil),
	)

	res := solver.NewResolver().NewResolution(u)
	res.Pin(domain.PackageVersion{
		Name:         domain.NewInternedString("tools"),
		Version:      "0.9.0",
		SourceID:     "git:https://git.example/tools.git#abc123",
		Dependencies: map[string]string{"beta": ">= 1.0.0"},
	})

	tools := dep(t, "tools", ">= 0.0.0")
	tools.LockedVersion = "0.9.0"

	resolved, err := res.Resolve(context.Background(), []*domain.Dependency{
		dep(t, "alpha", ">= 1.0.0"),
		tools,
	})
	require.NoError(t, err)

	require.Equal(t, map[string]string{
		"alpha": "1.2.0",
		"beta":  "1.0.4",
		"tools": "0.9.0",
	}, locked(resolved))
}

func TestResolvePinConflict(t *testing.T) {
	u := universe(t,
		published("alpha", "1.2.0", map[string]string{"tools": ">= 2.0.0"}),
	)

	res := solver.NewResolver().NewResolution(u)
	res.Pin(domain.PackageVersion{
		Name:    domain.NewInternedString("tools"),
		Version: "0.9.0",
	})

	tools := dep(t, "tools", ">= 0.0.0")
	tools.LockedVersion = "0.9.0"

	_, err := res.Resolve(context.Background(), []*domain.Dependency{
		dep(t, "alpha", ">= 1.0.0"),
		tools,
	})
	require.ErrorIs(t, err, domain.ErrNoSolution)
}

func TestResolveFailures(t *testing.T) {
	t.Run("unknown package", func(t *testing.T) {
		res := solver.NewResolver().NewResolution(universe(t))
		_, err := res.Resolve(context.Background(), []*domain.Dependency{dep(t, "ghost", ">= 1.0.0")})
		require.ErrorIs(t, err, domain.ErrPackageNotFound)
	})

	t.Run("no satisfying version", func(t *testing.T) {
		u := universe(t, published("alpha", "1.0.0", nil))
		res := solver.NewResolver().NewResolution(u)
		_, err := res.Resolve(context.Background(), []*domain.Dependency{dep(t, "alpha", ">= 2.0.0")})
		require.ErrorIs(t, err, domain.ErrNoSolution)
	})

	t.Run("conflicting ranges", func(t *testing.T) {
		u := universe(t,
			published("left", "1.0.0", map[string]string{"shared": ">= 2.0.0"}),
			published("right", "1.0.0", map[string]string{"shared": "< 2.0.0"}),
			published("shared", "1.0.0", nil),
			published("shared", "2.0.0", nil),
		)
		res := solver.NewResolver().NewResolution(u)
		_, err := res.Resolve(context.Background(), []*domain.Dependency{
			dep(t, "left", ">= 1.0.0"),
			dep(t, "right", ">= 1.0.0"),
		})
		require.ErrorIs(t, err, domain.ErrNoSolution)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		u := universe(t, published("alpha", "1.0.0", nil))
		res := solver.NewResolver().NewResolution(u)
		_, err := res.Resolve(ctx, []*domain.Dependency{dep(t, "alpha", ">= 1.0.0")})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestResolveLeavesInputIdentityIntact(t *testing.T) {
	u := universe(t, published("alpha", "1.2.0", nil))

	alpha := dep(t, "alpha", ">= 1.0.0")
	alpha.Location = domain.SCMLocation{URL: "https://git.example/alpha.git"}

	res := solver.NewResolver().NewResolution(u)
	resolved, err := res.Resolve(context.Background(), []*domain.Dependency{alpha})
	require.NoError(t, err)

	require.Same(t, alpha, resolved[0])
	require.Equal(t, "1.2.0", alpha.LockedVersion)
	require.Equal(t, domain.SCMLocation{URL: "https://git.example/alpha.git"}, resolved[0].Location)
}
