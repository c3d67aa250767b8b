//go:build linux

package watcher

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"
)

const (
	InitFlags = unix.IN_NONBLOCK |
		unix.IN_CLOEXEC
	CancelReadyFlags = unix.POLLIN |
		unix.POLLHUP |
		unix.POLLERR |
		unix.POLLNVAL
	ChannelFailFlags = unix.POLLERR |
		unix.POLLNVAL
)

// Watcher reads inotify records for a fixed set of directories until a line arrives
// on the cancellation descriptor. It owns the inotify descriptor, the registry and
// the read buffer; all of them are used from a single goroutine.
type Watcher struct {
	fd       int
	cancelFd int
	registry *Registry
	sink     Sink
	buf      []byte
	state    State

	poll func(fds []unix.PollFd, timeout int) (int, error)
}

// New opens the notification channel and watches every path in order. Registration is
// all or nothing: on the first failure the channel is closed again, which releases the
// watches added so far, and a *RegistrationError naming the path is returned.
func New(paths []string, cancelFd int, sink Sink) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("no paths to watch")
	}

	fd, err := unix.InotifyInit1(InitFlags)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize watcher: %w", err)
	}

	w := Watcher{
		fd:       fd,
		cancelFd: cancelFd,
		registry: newRegistry(fd),
		sink:     sink,
		buf:      make([]byte, BufferSize),
		state:    StateInitializing,
		poll:     unix.Poll,
	}

	for _, path := range paths {
		wd, err := w.registry.Register(path)
		if err != nil {
			_ = unix.Close(fd)
			return nil, err
		}

		log.Debug().Str("path", path).Int("wd", wd).Msg("added watch")
	}

	w.state = StateRunning

	return &w, nil
}

func (w *Watcher) State() State {
	return w.state
}

// Run blocks until the cancellation descriptor delivers a line, emitting every decoded
// record to the sink on the way. It returns nil on cancellation and a *WaitError,
// *ChannelReadError or emit error on the first fatal condition.
func (w *Watcher) Run() error {
	if w.state != StateRunning {
		return fmt.Errorf("watcher is %s", w.state)
	}

	fds := []unix.PollFd{
		{Fd: int32(w.cancelFd), Events: unix.POLLIN},
		{Fd: int32(w.fd), Events: unix.POLLIN},
	}

	for w.state == StateRunning {
		err := w.wait(fds)
		if err != nil {
			return err
		}

		// Cancellation is checked first so that nothing is emitted after the line was read
		if fds[0].Revents&CancelReadyFlags != 0 {
			w.consumeLine()
			w.state = StateTerminating
			break
		}

		if fds[1].Revents&ChannelFailFlags != 0 {
			return &ChannelReadError{Err: fmt.Errorf("poll returned events %#x", fds[1].Revents)}
		}

		if fds[1].Revents&unix.POLLIN != 0 {
			err = w.drain()
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// Close releases the notification channel and with it every watch. Calling it more than
// once is a no-op.
func (w *Watcher) Close() error {
	if w.fd < 0 {
		return nil
	}

	err := unix.Close(w.fd)
	w.fd = -1
	w.state = StateTerminating
	if err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}

	return nil
}

// wait blocks without timeout until one of fds is ready. Interrupted waits are retried.
func (w *Watcher) wait(fds []unix.PollFd) error {
	for {
		_, err := w.poll(fds, -1)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return &WaitError{Err: err}
		}

		return nil
	}
}

// consumeLine discards input one byte at a time up to and including the first newline,
// or until nothing more can be read.
func (w *Watcher) consumeLine() {
	var b [1]byte

	for {
		n, err := unix.Read(w.cancelFd, b[:])
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil || n <= 0 || b[0] == '\n' {
			return
		}
	}
}

// drain reads and emits records until the channel has nothing pending.
func (w *Watcher) drain() error {
	for {
		n, err := unix.Read(w.fd, w.buf)
		if errors.Is(err, unix.EAGAIN) {
			return nil
		}
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return &ChannelReadError{Err: err}
		}
		if n <= 0 {
			return nil
		}

		err = decodeEvents(w.buf[:n], w.registry.Resolve, w.emit)
		if err != nil {
			return err
		}
	}
}

func (w *Watcher) emit(e Event) error {
	if e.Has(FlagQueueOverflow) {
		log.Warn().Msg("event queue overflowed, events were dropped by the kernel")
	}
	if e.Has(FlagIgnored) {
		log.Info().Str("path", e.Dir).Msg("watch was removed by the kernel")
	}

	log.Debug().
		Str("dir", e.Dir).
		Str("name", e.Name).
		Uint32("mask", e.Mask).
		Uint32("cookie", e.Cookie).
		Msg("received event")

	err := w.sink.Emit(e)
	if err != nil {
		return fmt.Errorf("failed to emit event: %w", err)
	}

	return nil
}
