package ports

import "poetry2uv/internal/types"

type ManifestPort interface {
	LoadManifest(path string) (types.PoetryManifest, error)
}

// ProjectNamePort resolves the declared project name of a sibling
// project referenced by a path dependency. The boolean reports whether
// a manifest with a usable name was found.
type ProjectNamePort interface {
	LookupProjectName(dir string) (string, bool, error)
}
