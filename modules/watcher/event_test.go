package watcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvent_Conditions(t *testing.T) {
	tests := []struct {
		name string
		mask uint32
		want []string
	}{
		{"none", 0, nil},
		{"open", FlagOpen, []string{"IN_OPEN"}},
		{"canonical order", FlagMovedTo | FlagCloseWrite | FlagOpen, []string{"IN_OPEN", "IN_CLOSE_WRITE", "IN_MOVED_TO"}},
		{"close variants", FlagCloseWrite | FlagCloseNoWrite, []string{"IN_CLOSE_NOWRITE", "IN_CLOSE_WRITE"}},
		{"moves", FlagMovedFrom | FlagMovedTo | FlagIsDir, []string{"IN_MOVED_FROM", "IN_MOVED_TO"}},
		{"unwatched bits only", FlagIgnored | FlagQueueOverflow, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Event{Mask: tt.mask}.Conditions())
		})
	}
}

func TestEvent_KindAndPath(t *testing.T) {
	e := Event{Dir: "/tmp/a", Name: "b.txt", Mask: FlagOpen}
	assert.True(t, e.Resolved())
	assert.Equal(t, KindFile, e.Kind())
	assert.Equal(t, "/tmp/a/b.txt", e.Path())

	e = Event{Name: "sub", Mask: FlagOpen | FlagIsDir, IsDir: true}
	assert.False(t, e.Resolved())
	assert.Equal(t, KindDirectory, e.Kind())
	assert.Empty(t, e.Path())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "initializing", StateInitializing.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "terminating", StateTerminating.String())
	assert.Equal(t, "unknown", State(42).String())
}
