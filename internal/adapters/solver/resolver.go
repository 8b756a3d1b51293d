// Package solver implements deterministic constraint resolution over a
// package universe. The resolver picks the newest version satisfying every
// accumulated constraint and iterates until no pick changes; it does not
// backtrack, so over-constrained graphs fail rather than explore
// alternatives.
package solver

import (
	"context"
	"maps"
	"slices"

	"go.trai.ch/larder/internal/core/domain"
	"go.trai.ch/larder/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Resolver = (*Resolver)(nil)

// Resolver implements ports.Resolver.
type Resolver struct{}

// NewResolver creates a resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// NewResolution implements ports.Resolver.
func (r *Resolver) NewResolution(universe *domain.Universe) ports.Resolution {
	return &resolution{
		universe: universe,
		pins:     make(map[string]domain.PackageVersion),
	}
}

type resolution struct {
	universe *domain.Universe
	pins     map[string]domain.PackageVersion
}

// Pin implements ports.Resolution. Pinned packages keep their exact version
// and dependency edges even when the universe has no entry for them, which
// is how repository and path content joins resolution.
func (r *resolution) Pin(pkg domain.PackageVersion) {
	r.pins[pkg.Name.String()] = pkg
}

// Resolve implements ports.Resolution.
func (r *resolution) Resolve(ctx context.Context, deps []*domain.Dependency) ([]*domain.Dependency, error) {
	s := &resolveState{
		universe:    r.universe,
		pins:        r.pins,
		constraints: make(map[string][]domain.VersionConstraint),
		seenEdges:   make(map[string]bool),
		picked:      make(map[string]domain.PackageVersion),
	}

	for _, dep := range deps {
		s.constraints[dep.Name.String()] = append(s.constraints[dep.Name.String()], dep.Constraint)
	}

	if err := s.run(ctx); err != nil {
		return nil, err
	}

	return s.result(deps), nil
}

type resolveState struct {
	universe    *domain.Universe
	pins        map[string]domain.PackageVersion
	constraints map[string][]domain.VersionConstraint
	seenEdges   map[string]bool
	picked      map[string]domain.PackageVersion
}

// run repeats full passes over all constrained names until a pass changes
// nothing. Names are visited in sorted order so resolution is reproducible.
func (s *resolveState) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		changed := false
		for _, name := range slices.Sorted(maps.Keys(s.constraints)) {
			pick, err := s.pick(name)
			if err != nil {
				return err
			}
			if prev, ok := s.picked[name]; ok && prev.Key() == pick.Key() {
				continue
			}
			s.picked[name] = pick
			changed = true
			if err := s.addEdges(pick); err != nil {
				return err
			}
		}
		if !changed {
			return nil
		}
	}
}

// pick chooses the version for one package: its pin when one exists, else
// the newest universe version satisfying every constraint seen so far.
func (s *resolveState) pick(name string) (domain.PackageVersion, error) {
	constraints := s.constraints[name]

	if pin, ok := s.pins[name]; ok {
		for _, c := range constraints {
			if !c.SatisfiedBy(pin.Version) {
				return domain.PackageVersion{}, zerr.With(zerr.With(zerr.With(domain.ErrNoSolution,
					"package", name),
					"pinned", pin.Version),
					"constraint", c.String())
			}
		}
		return pin, nil
	}

candidates:
	for _, pv := range s.universe.VersionsOf(name) {
		for _, c := range constraints {
			if !c.SatisfiedBy(pv.Version) {
				continue candidates
			}
		}
		return pv, nil
	}

	if !s.universe.HasPackage(name) {
		return domain.PackageVersion{}, zerr.With(domain.ErrPackageNotFound, "package", name)
	}
	return domain.PackageVersion{}, zerr.With(zerr.With(domain.ErrNoSolution,
		"package", name),
		"constraints", constraintExprs(constraints))
}

// addEdges registers a pick's dependency edges as constraints. Every edge is
// added once; constraints accumulated from an abandoned pick stay in force.
func (s *resolveState) addEdges(pick domain.PackageVersion) error {
	for _, depName := range slices.Sorted(maps.Keys(pick.Dependencies)) {
		expr := pick.Dependencies[depName]
		key := pick.Key() + "->" + depName
		if s.seenEdges[key] {
			continue
		}
		s.seenEdges[key] = true

		constraint, err := domain.ParseConstraint(expr)
		if err != nil {
			return zerr.With(zerr.With(zerr.With(err,
				"package", pick.Name.String()),
				"version", pick.Version),
				"dependency", depName)
		}
		s.constraints[depName] = append(s.constraints[depName], constraint)
	}
	return nil
}

// result maps picks back onto the input dependencies and wraps every
// discovered transitive package in a fresh dependency, sorted by name.
func (s *resolveState) result(deps []*domain.Dependency) []*domain.Dependency {
	resolved := make([]*domain.Dependency, 0, len(s.picked))
	inputs := make(map[string]bool, len(deps))

	for _, dep := range deps {
		name := dep.Name.String()
		inputs[name] = true
		dep.LockedVersion = s.picked[name].Version
		resolved = append(resolved, dep)
	}

	for name, pick := range s.picked {
		if inputs[name] {
			continue
		}
		resolved = append(resolved, &domain.Dependency{
			Name:          pick.Name,
			Constraint:    domain.AnyVersion(),
			LockedVersion: pick.Version,
		})
	}

	domain.SortDependencies(resolved)
	return resolved
}

func constraintExprs(constraints []domain.VersionConstraint) []string {
	exprs := make([]string, len(constraints))
	for i, c := range constraints {
		exprs[i] = c.String()
	}
	return exprs
}
