package watcher

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	// SizeofRecordHeader is the fixed part of a record: wd, mask, cookie and name length.
	SizeofRecordHeader = 16

	// NameMax is the longest path component the kernel will report in a record.
	NameMax = 255

	// BufferSize is the size of the read buffer owned by the loop. Every record fits
	// into it as long as no entry name exceeds NameMax (plus its NUL terminator).
	BufferSize = 4096
)

// Fails to compile if a maximal record does not fit into the read buffer.
var _ [BufferSize - (SizeofRecordHeader + NameMax + 1)]struct{}

var ErrShortRecord = errors.New("record exceeds read span")

type rawEvent struct {
	Wd     int32
	Mask   uint32
	Cookie uint32
	Len    uint32
}

// decoder walks a span of concatenated records returned by a single read.
type decoder struct {
	span []byte
	rd   *bytes.Reader
	off  int
}

func newDecoder(span []byte) *decoder {
	return &decoder{
		span: span,
		rd:   bytes.NewReader(span),
	}
}

// next returns the header and the entry name of the record at the cursor and advances
// past it. It returns io.EOF once the cursor reaches the end of the span.
func (d *decoder) next() (rawEvent, string, error) {
	var raw rawEvent

	if d.off >= len(d.span) {
		return raw, "", io.EOF
	}
	if len(d.span)-d.off < SizeofRecordHeader {
		return raw, "", fmt.Errorf("failed to read header at offset %d: %w", d.off, ErrShortRecord)
	}

	err := binary.Read(d.rd, binary.NativeEndian, &raw)
	if err != nil {
		return raw, "", fmt.Errorf("failed to read header at offset %d: %w", d.off, err)
	}

	start := d.off + SizeofRecordHeader
	if uint64(raw.Len) > uint64(len(d.span)-start) {
		return raw, "", fmt.Errorf("failed to read name of %d bytes at offset %d: %w", raw.Len, start, ErrShortRecord)
	}
	end := start + int(raw.Len)

	// The name is NUL terminated and padded to an alignment boundary
	name := d.span[start:end]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}

	d.off = end
	_, err = d.rd.Seek(int64(end), io.SeekStart)
	if err != nil {
		return raw, "", fmt.Errorf("failed to set new offset: %w", err)
	}

	return raw, string(name), nil
}

// decodeEvents decodes every record of span in order and hands each one to fn together
// with the path resolved for its watch handle. Decoding failures are returned as
// *ChannelReadError, errors from fn are returned unchanged.
func decodeEvents(span []byte, resolve func(int) (string, bool), fn func(Event) error) error {
	d := newDecoder(span)

	for {
		raw, name, err := d.next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return &ChannelReadError{Err: err}
		}

		// An unknown handle still produces an event, just without a directory
		dir, _ := resolve(int(raw.Wd))

		err = fn(Event{
			Dir:    dir,
			Name:   name,
			Mask:   raw.Mask,
			Cookie: raw.Cookie,
			IsDir:  raw.Mask&FlagIsDir != 0,
		})
		if err != nil {
			return err
		}
	}
}
