// Package manifest finds and loads the project manifest file.
package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/larder/internal/adapters/pkgmeta"
	"go.trai.ch/larder/internal/core/domain"
	"go.trai.ch/larder/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ManifestLoader = (*Loader)(nil)

// Loader implements ports.ManifestLoader over YAML manifest files.
type Loader struct {
	defaultSource string
}

// NewLoader creates a manifest loader. defaultSource is the catalog used by
// manifests that declare no sources of their own.
func NewLoader(defaultSource string) *Loader {
	return &Loader{defaultSource: defaultSource}
}

// manifestFile is the on-disk schema of a manifest. Dependencies stay a raw
// node so declaration order is preserved and duplicates can be rejected;
// plain map decoding would silently keep the last entry.
type manifestFile struct {
	Sources      []string  `yaml:"sources"`
	Dependencies yaml.Node `yaml:"dependencies"`
}

// depSpec is one dependency declaration. It accepts the short form, a bare
// constraint string, and the long form, a mapping with optional location
// fields.
type depSpec struct {
	Constraint string
	Path       string
	Git        string
	Ref        string
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *depSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return value.Decode(&d.Constraint)
	case yaml.MappingNode:
		var long struct {
			Constraint string `yaml:"constraint"`
			Path       string `yaml:"path"`
			Git        string `yaml:"git"`
			Ref        string `yaml:"ref"`
		}
		if err := value.Decode(&long); err != nil {
			return err
		}
		d.Constraint = long.Constraint
		d.Path = long.Path
		d.Git = long.Git
		d.Ref = long.Ref
		return nil
	default:
		return zerr.With(zerr.New("dependency must be a constraint string or a mapping"), "line", value.Line)
	}
}

// Load searches cwd and its parents for a manifest file and parses it.
func (l *Loader) Load(cwd string) (*domain.Manifest, error) {
	path, err := l.find(cwd)
	if err != nil {
		return nil, err
	}
	return l.loadFile(path)
}

func (l *Loader) find(cwd string) (string, error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.Wrap(err, "failed to absolutize working directory")
	}

	for {
		candidate := filepath.Join(dir, domain.ManifestFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", zerr.With(zerr.With(domain.ErrManifestNotFound,
				"name", domain.ManifestFileName),
				"start", cwd)
		}
		dir = parent
	}
}

func (l *Loader) loadFile(path string) (*domain.Manifest, error) {
	//nolint:gosec // Path was discovered under the user's working directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrManifestReadFailed, err), "path", path)
	}

	var raw manifestFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrManifestParseFailed, err), "path", path)
	}

	m := &domain.Manifest{
		Path:    path,
		Sources: l.sources(raw.Sources),
	}

	deps, err := l.dependencies(&raw.Dependencies, m.Dir())
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	m.Dependencies = deps

	return m, nil
}

// sources returns the declared sources with duplicates dropped, or the
// default source when none are declared.
func (l *Loader) sources(declared []string) []string {
	if len(declared) == 0 {
		return []string{l.defaultSource}
	}
	sources := make([]string, 0, len(declared))
	for _, url := range declared {
		if url == "" || slices.Contains(sources, url) {
			continue
		}
		sources = append(sources, url)
	}
	return sources
}

func (l *Loader) dependencies(node *yaml.Node, dir string) ([]*domain.Dependency, error) {
	if node.Kind == 0 || node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, zerr.With(domain.ErrManifestParseFailed,
			"reason", "dependencies must be a mapping of name to declaration",
		)
	}

	deps := make([]*domain.Dependency, 0, len(node.Content)/2)
	seen := make(map[string]bool)

	for i := 0; i+1 < len(node.Content); i += 2 {
		var name string
		if err := node.Content[i].Decode(&name); err != nil || name == "" {
			return nil, zerr.With(zerr.With(domain.ErrManifestParseFailed,
				"reason", "dependency name must be a string"),
				"line", node.Content[i].Line)
		}
		if seen[name] {
			return nil, zerr.With(domain.ErrDuplicateDependency, "dependency", name)
		}
		seen[name] = true

		var spec depSpec
		if err := node.Content[i+1].Decode(&spec); err != nil {
			return nil, zerr.With(errors.Join(domain.ErrManifestParseFailed, err), "dependency", name)
		}

		dep, err := l.dependency(name, spec, dir)
		if err != nil {
			return nil, err
		}
		deps = append(deps, dep)
	}

	return deps, nil
}

func (l *Loader) dependency(name string, spec depSpec, dir string) (*domain.Dependency, error) {
	if spec.Path != "" && spec.Git != "" {
		return nil, zerr.With(zerr.With(domain.ErrManifestInvalid,
			"dependency", name),
			"reason", "path and git are mutually exclusive")
	}
	if spec.Ref != "" && spec.Git == "" {
		return nil, zerr.With(zerr.With(domain.ErrManifestInvalid,
			"dependency", name),
			"reason", "ref requires git")
	}

	constraint := domain.AnyVersion()
	if spec.Constraint != "" {
		parsed, err := domain.ParseConstraint(spec.Constraint)
		if err != nil {
			return nil, zerr.With(errors.Join(domain.ErrManifestInvalid, err), "dependency", name)
		}
		constraint = parsed
	}

	dep := &domain.Dependency{
		Name:       domain.NewInternedString(name),
		Constraint: constraint,
	}

	switch {
	case spec.Git != "":
		dep.Location = domain.SCMLocation{URL: spec.Git, Ref: spec.Ref}
	case spec.Path != "":
		dep.Location = domain.PathLocation{Path: spec.Path}
		if err := l.materializePath(dep, spec.Path, dir); err != nil {
			return nil, err
		}
	}

	return dep, nil
}

// materializePath reads the package content a path dependency points at.
// Path dependencies are materialized at load time: their content is already
// in place on disk and never goes through the store.
func (l *Loader) materializePath(dep *domain.Dependency, declared, dir string) error {
	pkgDir := declared
	if !filepath.IsAbs(pkgDir) {
		pkgDir = filepath.Join(dir, pkgDir)
	}

	if info, err := os.Stat(pkgDir); err != nil || !info.IsDir() {
		return zerr.With(zerr.With(domain.ErrPathMissing,
			"dependency", dep.Name.String()),
			"path", pkgDir)
	}

	meta, err := pkgmeta.Read(pkgDir)
	if err != nil {
		return err
	}
	if meta.Name != dep.Name.String() {
		return zerr.With(zerr.With(domain.ErrMetadataMismatch,
			"expected", dep.Name.String()),
			"found", meta.Name)
	}

	dep.Materialize(&domain.CachedPackage{
		Name:         dep.Name,
		Version:      meta.Version,
		Path:         pkgDir,
		Dependencies: meta.Dependencies,
	})
	return nil
}
