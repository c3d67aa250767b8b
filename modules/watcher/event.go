package watcher

import (
	"path/filepath"
)

const (
	KindDirectory = "directory"
	KindFile      = "file"
)

// Condition flags as laid out in the inotify ABI. They are duplicated here so that
// decoding and rendering do not depend on the Linux build of x/sys.
const (
	FlagOpen          uint32 = 0x00000020
	FlagCloseWrite    uint32 = 0x00000008
	FlagCloseNoWrite  uint32 = 0x00000010
	FlagMovedFrom     uint32 = 0x00000040
	FlagMovedTo       uint32 = 0x00000080
	FlagQueueOverflow uint32 = 0x00004000
	FlagIgnored       uint32 = 0x00008000
	FlagIsDir         uint32 = 0x40000000
)

// WatchMask is the fixed interest set registered for every directory.
const WatchMask = FlagOpen | FlagCloseWrite | FlagCloseNoWrite | FlagMovedFrom | FlagMovedTo

var conditions = []struct {
	flag  uint32
	label string
}{
	{FlagOpen, "IN_OPEN"},
	{FlagCloseNoWrite, "IN_CLOSE_NOWRITE"},
	{FlagCloseWrite, "IN_CLOSE_WRITE"},
	{FlagMovedFrom, "IN_MOVED_FROM"},
	{FlagMovedTo, "IN_MOVED_TO"},
}

// Event is a single decoded notification record.
type Event struct {
	// Dir is the watched directory the record was reported for. It is empty when
	// the watch handle could not be resolved.
	Dir    string
	Name   string
	Mask   uint32
	Cookie uint32
	IsDir  bool
}

func (e Event) Has(flag uint32) bool {
	return e.Mask&flag != 0
}

func (e Event) Resolved() bool {
	return e.Dir != ""
}

// Conditions returns the labels of the watched conditions present in the mask,
// always in the same order.
func (e Event) Conditions() []string {
	var labels []string
	for _, c := range conditions {
		if e.Has(c.flag) {
			labels = append(labels, c.label)
		}
	}

	return labels
}

func (e Event) Kind() string {
	if e.IsDir {
		return KindDirectory
	}

	return KindFile
}

// Path joins the watched directory and the entry name. It returns an empty string
// for unresolved events.
func (e Event) Path() string {
	if !e.Resolved() {
		return ""
	}

	return filepath.Join(e.Dir, e.Name)
}
