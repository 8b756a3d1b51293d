// Package app implements the application layer for larder.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.trai.ch/larder/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/larder/internal/core/domain"
	"go.trai.ch/larder/internal/core/ports"
	"go.trai.ch/larder/internal/engine/installer"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	manifests ports.ManifestLoader
	lockStore ports.LockfileStore
	sources   ports.SourceFactory
	installer *installer.Installer
	logger    ports.Logger
	settings  *config.Settings
}

// New creates a new App instance.
func New(
	manifests ports.ManifestLoader,
	lockStore ports.LockfileStore,
	sources ports.SourceFactory,
	core *installer.Installer,
	log ports.Logger,
	settings *config.Settings,
) *App {
	return &App{
		manifests: manifests,
		lockStore: lockStore,
		sources:   sources,
		installer: core,
		logger:    log,
		settings:  settings,
	}
}

// InstallOptions configuration for the Install method.
type InstallOptions struct {
	// Dir is where the manifest search starts. Empty means the current
	// working directory.
	Dir string
}

// Install materializes every dependency the manifest declares and persists
// the resulting lock file.
func (a *App) Install(ctx context.Context, opts InstallOptions) error {
	// 1. Load the manifest and its lock record
	manifest, record, err := a.load(opts.Dir)
	if err != nil {
		return err
	}

	// 2. Build one source per declared catalog
	sources := a.sources.ForManifest(manifest)

	// 3. Run the install core
	if err := a.installer.Run(ctx, manifest, record, sources); err != nil {
		return zerr.Wrap(err, "install failed")
	}

	return nil
}

// UpdateOptions configuration for the Update method.
type UpdateOptions struct {
	// Dir is where the manifest search starts. Empty means the current
	// working directory.
	Dir string
}

// Update unlocks the named dependencies so they can move to newer satisfying
// versions, then re-runs the install. With no names every dependency is
// unlocked.
func (a *App) Update(ctx context.Context, names []string, opts UpdateOptions) error {
	manifest, record, err := a.load(opts.Dir)
	if err != nil {
		return err
	}

	if len(names) == 0 {
		record.UnlockAll()
	} else {
		for _, name := range names {
			if !manifest.Declares(name) {
				return zerr.With(domain.ErrDependencyNotDeclared, "package", name)
			}
			record.Unlock(name)
		}
	}

	sources := a.sources.ForManifest(manifest)
	if err := a.installer.Run(ctx, manifest, record, sources); err != nil {
		return zerr.Wrap(err, "update failed")
	}

	return nil
}

// OutdatedOptions configuration for the Outdated method.
type OutdatedOptions struct {
	// Dir is where the manifest search starts. Empty means the current
	// working directory.
	Dir string
}

// Outdated reports newer satisfying versions for locked dependencies. It
// touches neither the store nor the lock file.
func (a *App) Outdated(ctx context.Context, opts OutdatedOptions) ([]domain.OutdatedPackage, error) {
	manifest, record, err := a.load(opts.Dir)
	if err != nil {
		return nil, err
	}

	sources := a.sources.ForManifest(manifest)
	outdated, err := a.installer.Outdated(ctx, manifest, record, sources)
	if err != nil {
		return nil, zerr.Wrap(err, "outdated check failed")
	}

	return outdated, nil
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Store bool
	Cache bool
}

// Clean removes cache directories and, when asked, the content store.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	var errs error

	// Helper to remove a directory and log the action
	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	if options.Cache {
		remove(a.settings.CatalogCachePath(), "catalog cache")
		remove(a.settings.ScmCachePath(), "repository cache")
		remove(a.settings.StashPath(), "download stash")
	}

	if options.Store {
		remove(a.settings.StorePath(), "content store")
	}

	return errs
}

// load finds the manifest starting at dir and reads the lock record sitting
// next to it. A missing lock file loads as an empty record.
func (a *App) load(dir string) (*domain.Manifest, *domain.LockRecord, error) {
	if dir == "" {
		dir = "."
	}

	manifest, err := a.manifests.Load(dir)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load manifest")
	}

	record, err := a.lockStore.Load(manifest.LockPath())
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load lock file")
	}

	return manifest, record, nil
}
