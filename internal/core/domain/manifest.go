package domain

import "path/filepath"

// Manifest is the loaded project manifest: the catalog sources to consult,
// in priority order, and the project's declared dependencies. It is a plain
// value produced once by the loader; nothing about it is lazy.
type Manifest struct {
	// Path is the absolute path of the manifest file.
	Path string

	// Sources lists catalog base URLs in priority order.
	Sources []string

	// Dependencies are the declared dependencies, unique by name.
	Dependencies []*Dependency
}

// Dir returns the project root, the directory holding the manifest file.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

// LockPath returns the path of the lock file belonging to this manifest.
func (m *Manifest) LockPath() string {
	return filepath.Join(m.Dir(), LockFileName)
}

// Dependency returns the declared dependency with the given name.
func (m *Manifest) Dependency(name string) (*Dependency, bool) {
	for _, dep := range m.Dependencies {
		if dep.Name.String() == name {
			return dep, true
		}
	}
	return nil, false
}

// Declares reports whether the manifest declares a dependency by name.
func (m *Manifest) Declares(name string) bool {
	_, ok := m.Dependency(name)
	return ok
}
