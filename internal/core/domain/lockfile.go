package domain

import (
	"maps"
	"slices"
)

// LockVersion is the current lock record schema version.
const LockVersion = 1

// DeclaredEntry is the lock record's snapshot of one manifest declaration:
// the name, constraint, and location a dependency had when the lock was
// written.
type DeclaredEntry struct {
	Name       InternedString
	Constraint VersionConstraint
	Location   Location
}

// Matches reports whether a manifest dependency still carries the same
// declaration this entry was locked under.
func (e DeclaredEntry) Matches(dep *Dependency) bool {
	if e.Name != dep.Name {
		return false
	}
	if !e.Constraint.Equal(dep.Constraint) {
		return false
	}
	return LocationsEqual(e.Location, dep.Location)
}

// LockedEntry is one materialized package in the lock graph: an exact
// version, the source that provided it, and its dependency edges.
type LockedEntry struct {
	Name         InternedString
	Version      string
	SourceID     string
	Dependencies map[string]string
}

// LockGraph is the full set of materialized packages recorded by the last
// successful install, keyed by package name.
type LockGraph struct {
	entries map[string]LockedEntry
}

// NewLockGraph creates an empty LockGraph.
func NewLockGraph() *LockGraph {
	return &LockGraph{entries: make(map[string]LockedEntry)}
}

// Find returns the locked entry for a package name.
func (g *LockGraph) Find(name string) (LockedEntry, bool) {
	e, ok := g.entries[name]
	return e, ok
}

// Add inserts or replaces the entry for its package name.
func (g *LockGraph) Add(e LockedEntry) {
	g.entries[e.Name.String()] = e
}

// Remove drops the entry for a package name if present.
func (g *LockGraph) Remove(name string) {
	delete(g.entries, name)
}

// Entries returns all locked entries ordered by package name.
func (g *LockGraph) Entries() []LockedEntry {
	names := slices.Sorted(maps.Keys(g.entries))
	entries := make([]LockedEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, g.entries[name])
	}
	return entries
}

// Len returns the number of locked entries.
func (g *LockGraph) Len() int {
	return len(g.entries)
}

// complete reports whether every dependency edge of every entry points at a
// locked entry satisfying the edge's constraint. A graph with dangling or
// violated edges cannot be trusted for lock-only installation.
func (g *LockGraph) complete() bool {
	for _, entry := range g.entries {
		for depName, expr := range entry.Dependencies {
			locked, ok := g.entries[depName]
			if !ok {
				return false
			}
			constraint, err := ParseConstraint(expr)
			if err != nil {
				return false
			}
			if !constraint.SatisfiedBy(locked.Version) {
				return false
			}
		}
	}
	return true
}

// LockRecord is the persistent outcome of dependency resolution: the
// declarations it was computed from and the graph of exact versions it
// produced. A fresh record (no lock file yet) is empty but usable.
type LockRecord struct {
	declared map[string]DeclaredEntry
	graph    *LockGraph
}

// NewLockRecord creates an empty LockRecord.
func NewLockRecord() *LockRecord {
	return &LockRecord{
		declared: make(map[string]DeclaredEntry),
		graph:    NewLockGraph(),
	}
}

// Graph returns the record's lock graph.
func (r *LockRecord) Graph() *LockGraph {
	return r.graph
}

// Declared returns the locked declaration for a package name.
func (r *LockRecord) Declared(name string) (DeclaredEntry, bool) {
	e, ok := r.declared[name]
	return e, ok
}

// DeclaredNames returns the names of all locked declarations, sorted.
func (r *LockRecord) DeclaredNames() []string {
	return slices.Sorted(maps.Keys(r.declared))
}

// Unlock removes a package from the record: both its declaration and its
// graph entry. Unlocking an unknown name is a no-op.
func (r *LockRecord) Unlock(name string) {
	delete(r.declared, name)
	r.graph.Remove(name)
}

// UnlockAll clears the whole record, forcing the next install to resolve
// from scratch.
func (r *LockRecord) UnlockAll() {
	r.declared = make(map[string]DeclaredEntry)
	r.graph = NewLockGraph()
}

// SetDeclared replaces the declaration snapshot with one entry per given
// dependency.
func (r *LockRecord) SetDeclared(deps []*Dependency) {
	r.declared = make(map[string]DeclaredEntry, len(deps))
	for _, dep := range deps {
		r.declared[dep.Name.String()] = DeclaredEntry{
			Name:       dep.Name,
			Constraint: dep.Constraint,
			Location:   LocationOrRegistry(dep.Location),
		}
	}
}

// SetGraph replaces the lock graph wholesale. Entries for packages that are
// no longer part of the install disappear with the old graph.
func (r *LockRecord) SetGraph(entries []LockedEntry) {
	r.graph = NewLockGraph()
	for _, e := range entries {
		r.graph.Add(e)
	}
}

// RestoreDeclared inserts one locked declaration during deserialization.
func (r *LockRecord) RestoreDeclared(e DeclaredEntry) {
	r.declared[e.Name.String()] = e
}

// RestoreGraph inserts one locked graph entry during deserialization.
func (r *LockRecord) RestoreGraph(e LockedEntry) {
	r.graph.Add(e)
}

// Trusted reports whether the record can satisfy the manifest without
// re-resolving: every manifest dependency is declared identically in the
// record, has a graph entry whose version satisfies the current constraint,
// and the graph's own edges are complete.
func (r *LockRecord) Trusted(m *Manifest) bool {
	for _, dep := range m.Dependencies {
		name := dep.Name.String()
		decl, ok := r.declared[name]
		if !ok || !decl.Matches(dep) {
			return false
		}
		locked, ok := r.graph.Find(name)
		if !ok {
			return false
		}
		if !dep.Constraint.SatisfiedBy(locked.Version) {
			return false
		}
	}
	return r.graph.complete()
}
