package watcher

import (
	"errors"
	"fmt"
)

var ErrUnsupported = errors.New("directory watching is only supported on linux")

// RegistrationError reports a directory that could not be watched.
type RegistrationError struct {
	Path string
	Err  error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("failed to watch '%s': %v", e.Path, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// ChannelReadError reports a read from the notification channel that cannot be retried,
// or a span that could not be decoded.
type ChannelReadError struct {
	Err error
}

func (e *ChannelReadError) Error() string {
	return fmt.Sprintf("failed to read events: %v", e.Err)
}

func (e *ChannelReadError) Unwrap() error {
	return e.Err
}

// WaitError reports a failed wait that was not caused by a signal.
type WaitError struct {
	Err error
}

func (e *WaitError) Error() string {
	return fmt.Sprintf("failed to wait for input: %v", e.Err)
}

func (e *WaitError) Unwrap() error {
	return e.Err
}
