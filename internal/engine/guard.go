package engine

import (
	"os"
	"sync"
)

// partials tracks output paths an engine subprocess may be mid-write on.
// The supervisor registers a path just before launch and releases it once
// the invocation reaches a terminal state (by which point the supervisor's
// own cleanup has run). The entrypoint drains the registry on a force-quit
// signal, so partial files never survive a hard teardown of the host
// process either.
var partials = struct {
	mu    sync.Mutex
	paths map[string]struct{}
}{paths: make(map[string]struct{})}

// trackPartial records path as potentially partial and returns its release
// function.
func trackPartial(path string) func() {
	partials.mu.Lock()
	partials.paths[path] = struct{}{}
	partials.mu.Unlock()

	return func() {
		partials.mu.Lock()
		delete(partials.paths, path)
		partials.mu.Unlock()
	}
}

// RemovePartials deletes every tracked partial output file and clears the
// registry. Called from the interruption signal path only; normal returns
// clean up through the supervisor itself.
func RemovePartials() []string {
	partials.mu.Lock()
	defer partials.mu.Unlock()

	var removed []string
	for path := range partials.paths {
		if err := os.Remove(path); err == nil {
			removed = append(removed, path)
		}
		delete(partials.paths, path)
	}
	return removed
}
