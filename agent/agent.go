package agent

import (
	"errors"
	"fmt"
	"io"

	"github.com/Leantar/dirwatch/modules/report"
	"github.com/Leantar/dirwatch/modules/watcher"
	"github.com/rs/zerolog/log"
)

const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

var ErrNoPaths = errors.New("at least one directory must be watched")

type Config struct {
	Paths            []string `yaml:"paths"`
	LogLevel         string   `yaml:"log_level"`
	LogFormat        string   `yaml:"log_format"`
	HashOnCloseWrite bool     `yaml:"hash_on_close_write"`
}

func (c Config) Validate() error {
	if len(c.Paths) == 0 {
		return ErrNoPaths
	}

	for i, path := range c.Paths {
		if path == "" {
			return fmt.Errorf("path %d is empty", i)
		}
	}

	switch c.LogFormat {
	case "", LogFormatJSON, LogFormatConsole:
	default:
		return fmt.Errorf("unknown log format '%s'", c.LogFormat)
	}

	return nil
}

// Agent prints events for the configured directories until a line is read from the
// cancellation descriptor.
type Agent struct {
	conf     Config
	cancelFd int
	out      io.Writer
}

func New(config Config, cancelFd int, out io.Writer) *Agent {
	return &Agent{
		conf:     config,
		cancelFd: cancelFd,
		out:      out,
	}
}

// Run watches every configured directory and blocks until cancellation. The
// notification channel is released before Run returns, whatever the outcome.
func (a *Agent) Run() (err error) {
	err = a.conf.Validate()
	if err != nil {
		return err
	}

	printer := report.NewPrinter(a.out, a.conf.HashOnCloseWrite)

	w, err := watcher.New(a.conf.Paths, a.cancelFd, printer)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := w.Close()
		if err == nil {
			err = closeErr
		}
	}()

	log.Info().Msg("press ENTER key to exit")
	log.Info().Strs("paths", a.conf.Paths).Msg("listening for events")

	err = w.Run()
	if err != nil {
		return err
	}

	log.Info().Msg("listening for events stopped")

	return nil
}
