package ldif

import (
	"fmt"
	"strings"
)

// Attribute is a single key/value pair of an entry. Options holds the
// semicolon-delimited tags of the attribute description (for example
// "lang-en" in "cn;lang-en"), or nil when there are none.
type Attribute struct {
	Key     string
	Options []string
	Value   Value
}

// Description renders the attribute description as it appears on the wire:
// the key followed by ";"-joined options.
func (a Attribute) Description() string {
	if len(a.Options) == 0 {
		return a.Key
	}
	return a.Key + ";" + strings.Join(a.Options, ";")
}

func (a Attribute) validate() error {
	if a.Key == "" {
		return ErrEmptyKey
	}
	for _, opt := range a.Options {
		if opt == "" {
			return fmt.Errorf("%w: key %q", ErrEmptyOption, a.Key)
		}
	}
	if a.Value == nil {
		return fmt.Errorf("%w: nil value for key %q", ErrInvalidValue, a.Key)
	}
	return nil
}

// Entry is one LDIF record: an ordered list of attributes. Insertion order
// is significant and preserved through decode and encode. By convention the
// first attribute key is "dn"; the decoder reports a deviation as a warning
// rather than an error.
type Entry struct {
	Attributes []Attribute
}

// Append adds a key/value pair without options. The key must be non-empty
// and the value non-nil.
func (e *Entry) Append(key string, value Value) error {
	return e.AppendAttribute(Attribute{Key: key, Value: value})
}

// AppendAttribute adds attr after validating its key, options, and value.
func (e *Entry) AppendAttribute(attr Attribute) error {
	if err := attr.validate(); err != nil {
		return err
	}
	e.Attributes = append(e.Attributes, attr)
	return nil
}

// GetFirst returns the value of the first attribute whose key matches name,
// or an error wrapping ErrAttributeNotFound.
func (e *Entry) GetFirst(name string, caseSensitive bool) (Value, error) {
	for _, a := range e.Attributes {
		if matchKey(a.Key, name, caseSensitive) {
			return a.Value, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrAttributeNotFound, name)
}

// GetAll returns the values of every attribute whose key matches name, in
// order. The result is empty, never an error, when nothing matches.
func (e *Entry) GetAll(name string, caseSensitive bool) []Value {
	var vals []Value
	for _, a := range e.Attributes {
		if matchKey(a.Key, name, caseSensitive) {
			vals = append(vals, a.Value)
		}
	}
	return vals
}

// DN returns the first "dn" value as text. Attribute names are matched
// case-insensitively.
func (e *Entry) DN() (string, error) {
	v, err := e.GetFirst("dn", false)
	if err != nil {
		return "", err
	}
	return valueText(v), nil
}

// Controls returns all "control" values.
func (e *Entry) Controls() []Value {
	return e.GetAll("control", false)
}

// ChangeType returns the first "changetype" value as text, or "add" when the
// entry carries none.
func (e *Entry) ChangeType() string {
	v, err := e.GetFirst("changetype", false)
	if err != nil {
		return "add"
	}
	return valueText(v)
}

func matchKey(key, name string, caseSensitive bool) bool {
	if caseSensitive {
		return key == name
	}
	return strings.EqualFold(key, name)
}
