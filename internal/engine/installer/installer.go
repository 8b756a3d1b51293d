package installer

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/larder/internal/core/domain"
	"go.trai.ch/larder/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Installer orchestrates an install run: it reconciles the lock record
// against the manifest, builds the package universe, resolves versions when
// the lock cannot be trusted, and materializes every dependency into the
// content store.
type Installer struct {
	downloader ports.Downloader
	store      ports.ContentStore
	resolver   ports.Resolver
	scm        ports.ScmFetcher
	lockStore  ports.LockfileStore
	reporter   ports.Reporter
	logger     ports.Logger
}

// NewInstaller creates a new Installer with the given dependencies.
func NewInstaller(
	downloader ports.Downloader,
	store ports.ContentStore,
	resolver ports.Resolver,
	scm ports.ScmFetcher,
	lockStore ports.LockfileStore,
	reporter ports.Reporter,
	logger ports.Logger,
) *Installer {
	return &Installer{
		downloader: downloader,
		store:      store,
		resolver:   resolver,
		scm:        scm,
		lockStore:  lockStore,
		reporter:   reporter,
		logger:     logger,
	}
}

// Run performs a full install for the manifest. The lock record is mutated
// in memory along the way and persisted exactly once, at the very end, and
// only if every prior step succeeded. On failure the on-disk lock keeps its
// previous content.
func (i *Installer) Run(
	ctx context.Context,
	manifest *domain.Manifest,
	record *domain.LockRecord,
	sources []ports.Source,
) error {
	state := &installRunState{
		i:          i,
		manifest:   manifest,
		record:     record,
		sources:    sources,
		provenance: make(map[string]string),
	}

	if err := state.reconcile(); err != nil {
		return err
	}

	var (
		preResolution []*domain.Dependency
		installed     []*domain.Dependency
		err           error
	)
	if record.Trusted(manifest) {
		i.logger.Info("lock file is up to date, installing from lock")
		preResolution, installed, err = state.installFromLock(ctx)
	} else {
		i.logger.Info("resolving dependency versions")
		preResolution, installed, err = state.installFromUniverse(ctx)
	}
	if err != nil {
		return err
	}

	record.SetGraph(state.lockEntries(installed))
	record.SetDeclared(state.declaredSubset(preResolution))

	if err := i.lockStore.Save(manifest.LockPath(), record); err != nil {
		return err
	}

	i.logger.Info(fmt.Sprintf("installed %d packages", len(installed)))
	return nil
}

type installRunState struct {
	i        *Installer
	manifest *domain.Manifest
	record   *domain.LockRecord
	sources  []ports.Source

	// provenance maps package names to the source that satisfied them
	// during this run. Names absent here fall back to the prior graph
	// entry when lock entries are rebuilt.
	provenance map[string]string
}

// reconcile brings the lock record into agreement with the manifest before
// any install decision is made. Dependencies no longer declared are
// unlocked. A locked version that violates its currently declared
// constraint aborts the run: the constraint changed after locking, and the
// caller must update the package rather than have it silently re-resolved.
func (state *installRunState) reconcile() error {
	for _, name := range state.record.DeclaredNames() {
		dep, declared := state.manifest.Dependency(name)
		if !declared {
			state.record.Unlock(name)
			continue
		}

		entry, locked := state.record.Graph().Find(name)
		if !locked {
			// Nothing to validate yet, the first resolution creates it.
			continue
		}

		if !dep.Constraint.SatisfiedBy(entry.Version) {
			return &domain.OutdatedDependencyError{Locked: entry, Declared: *dep}
		}
	}
	return nil
}

// installFromLock materializes the locked entries as-is. The universe build
// is skipped entirely when every entry is already in the store.
func (state *installRunState) installFromLock(ctx context.Context) ([]*domain.Dependency, []*domain.Dependency, error) {
	deps := state.lockedDependencies()
	state.markMaterialized(deps)

	if !allDownloaded(deps) {
		if _, err := state.buildUniverse(ctx); err != nil {
			return nil, nil, err
		}
	}

	installed, err := state.installAll(ctx, deps)
	if err != nil {
		return nil, nil, err
	}
	return deps, installed, nil
}

// installFromUniverse re-resolves the dependency set and materializes the
// result. SCM dependencies are fetched before the universe is built: their
// embedded manifests may carry constraints that must be visible to the
// resolver.
func (state *installRunState) installFromUniverse(ctx context.Context) ([]*domain.Dependency, []*domain.Dependency, error) {
	deps := state.preResolutionSet()

	if err := state.fetchScmDependencies(ctx, deps); err != nil {
		return nil, nil, err
	}

	universe, err := state.buildUniverse(ctx)
	if err != nil {
		return nil, nil, err
	}

	resolution := state.i.resolver.NewResolution(universe)
	for _, dep := range deps {
		if !dep.Downloaded || dep.Cached == nil {
			continue
		}
		resolution.Pin(domain.PackageVersion{
			Name:         dep.Name,
			Version:      dep.Cached.Version,
			Dependencies: dep.Cached.Dependencies,
			SourceID:     state.provenance[dep.Name.String()],
		})
	}

	resolved, err := resolution.Resolve(ctx, deps)
	if err != nil {
		return nil, nil, err
	}

	installed, err := state.installAll(ctx, resolved)
	if err != nil {
		return nil, nil, err
	}
	return deps, installed, nil
}

// preResolutionSet merges the manifest's declared dependencies with the
// prior lock graph, de-duplicated by name. Manifest entries win so that an
// edited declaration always reaches the resolver; graph-only entries join
// with an open constraint and compete for the newest satisfying version.
func (state *installRunState) preResolutionSet() []*domain.Dependency {
	seen := make(map[string]struct{}, len(state.manifest.Dependencies))
	deps := make([]*domain.Dependency, 0, len(state.manifest.Dependencies))

	for _, dep := range state.manifest.Dependencies {
		if _, dup := seen[dep.Name.String()]; dup {
			continue
		}
		seen[dep.Name.String()] = struct{}{}
		deps = append(deps, dep)
	}

	for _, entry := range state.record.Graph().Entries() {
		if _, dup := seen[entry.Name.String()]; dup {
			continue
		}
		seen[entry.Name.String()] = struct{}{}
		deps = append(deps, &domain.Dependency{
			Name:       entry.Name,
			Constraint: domain.AnyVersion(),
		})
	}

	return deps
}

// lockedDependencies builds the dependency set for the trusted path from
// the lock graph. Declared dependencies reuse the manifest's objects so
// constraints, locations, and any materialization done at manifest load
// are carried along; graph-only entries are transitive and registry-sourced.
func (state *installRunState) lockedDependencies() []*domain.Dependency {
	entries := state.record.Graph().Entries()
	deps := make([]*domain.Dependency, 0, len(entries))

	for _, entry := range entries {
		if dep, ok := state.manifest.Dependency(entry.Name.String()); ok {
			if dep.LockedVersion == "" {
				dep.LockedVersion = entry.Version
			}
			deps = append(deps, dep)
			continue
		}
		deps = append(deps, &domain.Dependency{
			Name:          entry.Name,
			Constraint:    domain.AnyVersion(),
			LockedVersion: entry.Version,
		})
	}

	return deps
}

// markMaterialized flags every dependency whose exact locked version is
// already present in the content store.
func (state *installRunState) markMaterialized(deps []*domain.Dependency) {
	for _, dep := range deps {
		if dep.Downloaded {
			continue
		}
		if pkg, ok := state.i.store.Lookup(dep.Name.String(), dep.LockedVersion); ok {
			dep.Materialize(pkg)
		}
	}
}

func allDownloaded(deps []*domain.Dependency) bool {
	for _, dep := range deps {
		if !dep.Downloaded {
			return false
		}
	}
	return true
}

// fetchScmDependencies materializes every SCM-located dependency through
// the fetcher and imports the checkout into the store. The resolved
// revision, not the declared ref, is recorded as provenance.
func (state *installRunState) fetchScmDependencies(ctx context.Context, deps []*domain.Dependency) error {
	for _, dep := range deps {
		loc, ok := dep.Location.(domain.SCMLocation)
		if !ok || dep.Downloaded {
			continue
		}
		if err := state.fetchScm(ctx, dep, loc); err != nil {
			return err
		}
	}
	return nil
}

func (state *installRunState) fetchScm(ctx context.Context, dep *domain.Dependency, loc domain.SCMLocation) error {
	name := dep.Name.String()
	ctx, span := state.i.reporter.Session(ctx, "fetch "+name)

	stage, revision, err := state.i.scm.Fetch(ctx, loc)
	if err != nil {
		span.Complete(err)
		return err
	}

	pkg, err := state.i.store.Import(ctx, name, "", stage)
	if err != nil {
		span.Complete(err)
		return err
	}

	dep.Materialize(pkg)
	state.provenance[name] = domain.SCMLocation{URL: loc.URL, Ref: revision}.String()
	span.Complete(nil)
	return nil
}

type sourceResult struct {
	source ports.Source
	err    error
}

// buildUniverse fetches every source's index concurrently and merges them
// in configured order after all fetches have finished. An unreachable
// catalog is contained: the source is reported and skipped. Any other
// failure kind aborts the run.
func (state *installRunState) buildUniverse(ctx context.Context) (*domain.Universe, error) {
	ctx, span := state.i.reporter.Session(ctx, "build universe")

	results := make([]sourceResult, len(state.sources))
	g, gctx := errgroup.WithContext(ctx)
	for idx, src := range state.sources {
		g.Go(func() error {
			err := src.BuildUniverse(gctx)
			if err != nil && !errors.Is(err, domain.ErrCatalogUnavailable) {
				return err
			}
			results[idx] = sourceResult{source: src, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.Complete(err)
		return nil, err
	}

	universe := domain.NewUniverse()
	for _, res := range results {
		if res.err != nil {
			state.i.reporter.Warn(fmt.Sprintf("source %s is unreachable, skipping", res.source.ID()))
			state.i.logger.Warn(fmt.Sprintf("skipping unreachable source %s", res.source.ID()))
			continue
		}
		universe.AddAll(res.source.Universe())
	}

	span.Log(fmt.Sprintf("%d packages, %d versions", universe.PackageCount(), universe.VersionCount()))
	span.Complete(nil)
	return universe, nil
}

// installAll materializes every dependency in name order so install logs
// and side effects stay reproducible across runs.
func (state *installRunState) installAll(ctx context.Context, deps []*domain.Dependency) ([]*domain.Dependency, error) {
	domain.SortDependencies(deps)
	for _, dep := range deps {
		if _, err := state.install(ctx, dep); err != nil {
			return nil, err
		}
	}
	return deps, nil
}

// install materializes a single dependency. Already-materialized
// dependencies return their cached package without touching the network or
// the store. Everything else is satisfied by the first configured source
// that can serve the locked version.
func (state *installRunState) install(ctx context.Context, dep *domain.Dependency) (*domain.CachedPackage, error) {
	name := dep.Name.String()
	ctx, span := state.i.reporter.Session(ctx, "install "+name)

	if dep.Downloaded {
		if loc, ok := dep.Location.(domain.PathLocation); ok {
			state.provenance[name] = loc.String()
		}
		span.Cached()
		return dep.Cached, nil
	}

	remote, sourceID, err := state.lookupSource(dep)
	if err != nil {
		span.Complete(err)
		return nil, err
	}

	span.Log("downloading " + remote.URL)
	stage, err := state.i.downloader.Download(ctx, remote)
	if err != nil {
		span.Complete(err)
		return nil, err
	}

	pkg, err := state.i.store.Import(ctx, name, remote.Version, stage)
	if err != nil {
		span.Complete(err)
		return nil, err
	}

	dep.Materialize(pkg)
	state.provenance[name] = sourceID
	span.Complete(nil)
	return pkg, nil
}

// lookupSource finds the first configured source that can serve the
// dependency at its locked version.
func (state *installRunState) lookupSource(dep *domain.Dependency) (domain.RemotePackage, string, error) {
	name := dep.Name.String()
	for _, src := range state.sources {
		remote, err := src.PackageFor(name, dep.LockedVersion)
		if err == nil {
			return remote, src.ID(), nil
		}
	}
	return domain.RemotePackage{}, "", zerr.With(domain.ErrPackageNotFound,
		"package", name,
		"version", dep.LockedVersion,
	)
}

// lockEntries converts the materialized set into lock graph entries.
// Provenance recorded during this run wins; packages that were never
// re-fetched keep the source recorded by the prior lock.
func (state *installRunState) lockEntries(deps []*domain.Dependency) []domain.LockedEntry {
	entries := make([]domain.LockedEntry, 0, len(deps))
	for _, dep := range deps {
		name := dep.Name.String()

		sourceID := state.provenance[name]
		if sourceID == "" {
			if prior, ok := state.record.Graph().Find(name); ok {
				sourceID = prior.SourceID
			}
		}

		entry := domain.LockedEntry{
			Name:     dep.Name,
			Version:  dep.LockedVersion,
			SourceID: sourceID,
		}
		if dep.Cached != nil {
			entry.Version = dep.Cached.Version
			entry.Dependencies = dep.Cached.Dependencies
		}
		entries = append(entries, entry)
	}
	return entries
}

// declaredSubset filters the pre-resolution set down to the dependencies
// the manifest declares by name, excluding transitive-only entries from the
// lock's top level.
func (state *installRunState) declaredSubset(deps []*domain.Dependency) []*domain.Dependency {
	declared := make([]*domain.Dependency, 0, len(deps))
	for _, dep := range deps {
		if state.manifest.Declares(dep.Name.String()) {
			declared = append(declared, dep)
		}
	}
	return declared
}
