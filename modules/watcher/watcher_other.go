//go:build !linux

package watcher

type Watcher struct{}

func New(_ []string, _ int, _ Sink) (*Watcher, error) {
	return nil, ErrUnsupported
}

func (w *Watcher) State() State {
	return StateTerminating
}

func (w *Watcher) Run() error {
	return ErrUnsupported
}

func (w *Watcher) Close() error {
	return nil
}
