// Package report renders watcher events as one human readable line each.
package report

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/Leantar/dirwatch/models"
	"github.com/Leantar/dirwatch/modules/watcher"
	"github.com/rs/zerolog/log"
)

// Printer writes events in the form
//
//	IN_OPEN: IN_CLOSE_WRITE: /watched/dir/name [file]
//
// and flushes after every line.
type Printer struct {
	w    *bufio.Writer
	hash bool

	// Reads performed for hashing are reported by the kernel like any other access.
	// Pending counts them per path so their open and close records can be skipped.
	pending map[string]*selfRead
}

type selfRead struct {
	opens  int
	closes int
}

// NewPrinter returns a Printer writing to out. With hash set, lines for files closed
// after writing carry the blake3 digest of the file content, and the open and close
// records caused by reading the file for that digest are not printed.
func NewPrinter(out io.Writer, hash bool) *Printer {
	return &Printer{
		w:       bufio.NewWriter(out),
		hash:    hash,
		pending: make(map[string]*selfRead),
	}
}

func (p *Printer) Emit(e watcher.Event) error {
	if p.ownRead(e) {
		return nil
	}

	_, err := p.w.WriteString(Format(e))
	if err != nil {
		return err
	}

	if p.hash && e.Has(watcher.FlagCloseWrite) && !e.IsDir && e.Resolved() && e.Name != "" {
		sum, ok := p.digest(e.Path())
		if ok {
			_, err = p.w.WriteString(" blake3=" + sum)
			if err != nil {
				return err
			}
		}
	}

	err = p.w.WriteByte('\n')
	if err != nil {
		return err
	}

	return p.w.Flush()
}

// digest hashes path and records the read it performed on it.
func (p *Printer) digest(path string) (string, bool) {
	obj, err := models.NewFsObject(path)

	// The file was opened unless stat or open failed
	if err == nil || errors.Is(err, models.ErrRead) {
		r, ok := p.pending[path]
		if !ok {
			r = &selfRead{}
			p.pending[path] = r
		}
		r.opens++
		r.closes++
	}

	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to hash file")
		return "", false
	}

	return obj.Hash, true
}

// ownRead reports whether e is the open or close record of a read done by digest.
// The first matching records after the read are attributed to it.
func (p *Printer) ownRead(e watcher.Event) bool {
	if len(p.pending) == 0 || e.IsDir || !e.Resolved() {
		return false
	}

	path := e.Path()
	r, ok := p.pending[path]
	if !ok {
		return false
	}

	switch {
	case e.Mask&watcher.WatchMask == watcher.FlagOpen && r.opens > 0:
		r.opens--
	case e.Mask&watcher.WatchMask == watcher.FlagCloseNoWrite && r.closes > 0:
		r.closes--
	default:
		return false
	}

	if r.opens == 0 && r.closes == 0 {
		delete(p.pending, path)
	}

	return true
}

// Format renders e without a trailing newline. Unresolved events omit the directory.
func Format(e watcher.Event) string {
	var sb strings.Builder

	for _, label := range e.Conditions() {
		sb.WriteString(label)
		sb.WriteString(": ")
	}

	if e.Resolved() {
		sb.WriteString(e.Dir)
		if !strings.HasSuffix(e.Dir, "/") {
			sb.WriteByte('/')
		}
	}

	sb.WriteString(e.Name)
	sb.WriteString(" [")
	sb.WriteString(e.Kind())
	sb.WriteString("]")

	return sb.String()
}
