package ldif

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// Decoder reads entries from an LDIF stream one at a time. It is a lazy,
// single-pass reader: the underlying stream is consumed incrementally as the
// caller pulls entries, and iteration cannot be restarted. A Decoder must
// not be shared between goroutines.
type Decoder struct {
	cfg   readConfig
	un    *lineUnfolder
	first bool
	err   error
}

// NewDecoder returns a Decoder reading from r. Configuration problems
// (unknown compression, malformed compressed header) are reported here,
// before any entry is parsed.
func NewDecoder(r io.Reader, opts ...ReadOption) (*Decoder, error) {
	cfg := readConfig{
		limits:      defaultLimits(),
		skipVersion: true,
		compression: CompAuto,
		warn:        discardWarning,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	cr, err := newCompressedReader(r, cfg.compression)
	if err != nil {
		return nil, err
	}
	return &Decoder{
		cfg:   cfg,
		un:    newLineUnfolder(cr, cfg.limits.MaxLineLen),
		first: true,
	}, nil
}

// Next returns the next entry, or io.EOF once the stream is exhausted and no
// entry is pending. A yielded entry always has at least one attribute; an
// unterminated final record (no trailing blank line) is still yielded. Any
// other error is fatal and repeated by subsequent calls.
func (d *Decoder) Next() (*Entry, error) {
	if d.err != nil {
		return nil, d.err
	}
	entry := &Entry{}
	for {
		line, err := d.un.next()
		if err == io.EOF {
			d.err = io.EOF
			if len(entry.Attributes) > 0 {
				return d.yield(entry), nil
			}
			return nil, io.EOF
		}
		if err != nil {
			d.err = err
			return nil, err
		}
		if line == "" {
			if len(entry.Attributes) > 0 {
				return d.yield(entry), nil
			}
			// Consecutive blank lines between records.
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		attr, err := parseAttrLine(line)
		if err != nil {
			d.err = err
			return nil, err
		}
		skip := d.first && d.cfg.skipVersion && isVersionHeader(attr)
		d.first = false
		if skip {
			continue
		}
		if len(entry.Attributes) >= d.cfg.limits.MaxEntryAttributes {
			d.err = fmt.Errorf("%w: entry exceeds %d attributes", ErrLimitExceeded, d.cfg.limits.MaxEntryAttributes)
			return nil, d.err
		}
		entry.Attributes = append(entry.Attributes, attr)
	}
}

func (d *Decoder) yield(entry *Entry) *Entry {
	if !strings.EqualFold(entry.Attributes[0].Key, "dn") {
		d.cfg.warn(Warning{
			Code:    WarnFirstKeyNotDN,
			Message: fmt.Sprintf("entry starts with %q, expected dn", entry.Attributes[0].Key),
		})
	}
	return entry
}

// Decode reads every entry from r. It is NewDecoder followed by draining
// Next; see Decoder for the incremental interface.
func Decode(r io.Reader, opts ...ReadOption) ([]*Entry, error) {
	dec, err := NewDecoder(r, opts...)
	if err != nil {
		return nil, err
	}
	var entries []*Entry
	for {
		e, err := dec.Next()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
}

// parseAttrLine splits one logical line into an attribute. Exactly one space
// after each marker is treated as separator; further spaces are value
// content.
func parseAttrLine(line string) (Attribute, error) {
	desc, rest, ok := strings.Cut(line, ":")
	if !ok {
		return Attribute{}, fmt.Errorf("%w: %q", ErrMissingColon, line)
	}
	key, optStr, hasOpts := strings.Cut(desc, ";")
	if key == "" {
		return Attribute{}, fmt.Errorf("%w: %q", ErrEmptyKey, line)
	}
	attr := Attribute{Key: key}
	if hasOpts {
		attr.Options = strings.Split(optStr, ";")
		for _, opt := range attr.Options {
			if opt == "" {
				return Attribute{}, fmt.Errorf("%w: %q", ErrEmptyOption, line)
			}
		}
	}
	rest = strings.TrimPrefix(rest, " ")
	switch {
	case strings.HasPrefix(rest, ":"):
		data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(rest[1:], " "))
		if err != nil {
			return Attribute{}, fmt.Errorf("%w: key %q: %v", ErrInvalidBase64, key, err)
		}
		attr.Value = Binary(data)
	case strings.HasPrefix(rest, "<"):
		attr.Value = ParseURL(strings.TrimPrefix(rest[1:], " "))
	default:
		attr.Value = Text(rest)
	}
	return attr, nil
}

// isVersionHeader reports whether attr is a plain "version: <digits>" line.
func isVersionHeader(attr Attribute) bool {
	if !strings.EqualFold(attr.Key, "version") || len(attr.Options) > 0 {
		return false
	}
	t, ok := attr.Value.(Text)
	if !ok || t == "" {
		return false
	}
	for i := 0; i < len(t); i++ {
		if t[i] < '0' || t[i] > '9' {
			return false
		}
	}
	return true
}
