//go:build linux

package watcher

import (
	"golang.org/x/sys/unix"
)

// Registry maps watch handles issued by inotify back to the directories they were
// issued for. It belongs to a single Watcher and needs no locking.
type Registry struct {
	fd      int
	handles map[int]string
}

func newRegistry(fd int) *Registry {
	return &Registry{
		fd:      fd,
		handles: make(map[int]string),
	}
}

// Register starts watching path for the fixed interest set and returns the handle.
func (r *Registry) Register(path string) (int, error) {
	wd, err := unix.InotifyAddWatch(r.fd, path, WatchMask)
	if err != nil {
		return -1, &RegistrationError{Path: path, Err: err}
	}

	// The kernel hands out the same handle when a directory is watched twice.
	// The first registered spelling keeps it.
	if _, ok := r.handles[wd]; !ok {
		r.handles[wd] = path
	}

	return wd, nil
}

// Resolve returns the directory registered for handle.
func (r *Registry) Resolve(handle int) (string, bool) {
	path, ok := r.handles[handle]
	return path, ok
}
