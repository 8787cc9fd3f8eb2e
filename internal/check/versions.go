package check

import "sync"

// Versions tracks the latest known version of every file, last write wins.
//
// Editors call Set whenever a file changes, [Run] drops the results of any file
// whose version is no longer the latest once it has finished checking it.
type Versions struct {
	latest map[string]int
	mu     sync.RWMutex
}

// NewVersions returns an empty [Versions].
func NewVersions() *Versions {
	return &Versions{latest: make(map[string]int)}
}

// Set records version as the latest version of path.
func (v *Versions) Set(path string, version int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.latest[path] = version
}

// Latest returns the latest version of path and whether one is known.
func (v *Versions) Latest(path string) (int, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	version, ok := v.latest[path]

	return version, ok
}

// IsLatest reports whether version is the latest version of path, a path with
// no known version is always up to date.
func (v *Versions) IsLatest(path string, version int) bool {
	latest, ok := v.Latest(path)
	return !ok || latest == version
}
