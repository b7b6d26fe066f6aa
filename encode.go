package ldif

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
)

// Encoder writes entries to an LDIF stream. Configuration is validated and
// the version header emitted when the Encoder is constructed; each
// WriteEntry then renders one record followed by a blank separator line.
// Close must be called to flush buffered and compressed output; it never
// closes the caller's writer.
type Encoder struct {
	w   *bufio.Writer
	cc  io.Closer
	cfg writeConfig
	n   int
}

// NewEncoder returns an Encoder writing to w. Invalid line widths, negative
// versions, and unknown compressions are rejected here, before any output.
func NewEncoder(w io.Writer, opts ...WriteOption) (*Encoder, error) {
	cfg := writeConfig{
		lineWidth:   76,
		version:     1,
		hasVersion:  true,
		compression: CompNone,
		warn:        discardWarning,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.lineWidth != 0 && cfg.lineWidth < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrLineWidth, cfg.lineWidth)
	}
	if cfg.hasVersion && cfg.version < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrVersion, cfg.version)
	}
	cw, closer, err := newCompressedWriter(w, cfg.compression)
	if err != nil {
		return nil, err
	}
	e := &Encoder{w: bufio.NewWriter(cw), cc: closer, cfg: cfg}
	if cfg.hasVersion {
		if err := e.writeLine("version: " + strconv.Itoa(cfg.version)); err != nil {
			return nil, err
		}
		if err := e.writeLine(""); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// WriteEntry renders entry and a trailing blank line. The entry must have at
// least one valid attribute. The input is never mutated.
func (e *Encoder) WriteEntry(entry *Entry) error {
	if entry == nil || len(entry.Attributes) == 0 {
		return fmt.Errorf("%w: empty entry", ErrInvalidValue)
	}
	for _, attr := range entry.Attributes {
		if err := attr.validate(); err != nil {
			return err
		}
		line, warn := renderAttrLine(attr)
		if warn != nil {
			e.cfg.warn(*warn)
		}
		if err := e.writeLine(line); err != nil {
			return err
		}
	}
	if err := e.writeLine(""); err != nil {
		return err
	}
	e.n++
	return nil
}

// Count returns the number of entries written so far.
func (e *Encoder) Count() int { return e.n }

// Close flushes buffered output and finalizes the compression frame, if any.
// The underlying writer stays open.
func (e *Encoder) Close() error {
	if err := e.w.Flush(); err != nil {
		return err
	}
	if e.cc != nil {
		return e.cc.Close()
	}
	return nil
}

func (e *Encoder) writeLine(line string) error {
	return writeFolded(e.w, line, e.cfg.lineWidth)
}

// Encode writes entries to w and returns the number of entries written. It
// is NewEncoder, WriteEntry for each entry, then Close.
func Encode(w io.Writer, entries []*Entry, opts ...WriteOption) (int, error) {
	enc, err := NewEncoder(w, opts...)
	if err != nil {
		return 0, err
	}
	for _, entry := range entries {
		if err := enc.WriteEntry(entry); err != nil {
			return enc.Count(), err
		}
	}
	if err := enc.Close(); err != nil {
		return enc.Count(), err
	}
	return enc.Count(), nil
}

// renderAttrLine produces the logical line for attr, picking the marker from
// the value variant. Unsafe text falls back to base64 and reports a warning.
func renderAttrLine(attr Attribute) (string, *Warning) {
	desc := attr.Description()
	switch v := attr.Value.(type) {
	case Binary:
		return desc + ":: " + base64.StdEncoding.EncodeToString(v), nil
	case *URL:
		return desc + ":< " + v.String(), nil
	case Text:
		if isSafeText(string(v)) {
			return desc + ": " + string(v), nil
		}
		w := Warning{
			Code:    WarnUnsafeText,
			Message: fmt.Sprintf("value of %q base64-encoded for lossless transport", desc),
		}
		return desc + ":: " + base64.StdEncoding.EncodeToString([]byte(v)), &w
	}
	// Unreachable: Value is a closed sum and validate rejects nil.
	return "", nil
}

// isSafeText implements the RFC 2849 SAFE-STRING rule. The first byte is
// restricted further than the rest: a leading space, colon, or '<' would be
// read back as folding or marker syntax.
func isSafeText(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x80 || c == 0 || c == '\r' || c == '\n' {
			return false
		}
		if i == 0 && (c == ' ' || c == ':' || c == '<') {
			return false
		}
	}
	return true
}
