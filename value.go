package ldif

// Value is an attribute value: exactly one of [Text], [Binary], or [*URL].
// The set of variants is closed; consumers switch exhaustively.
type Value interface {
	isValue()
}

// Text is a plain UTF-8 attribute value.
type Text string

// Binary is a raw byte attribute value. It is written base64-encoded.
type Binary []byte

func (Text) isValue()   {}
func (Binary) isValue() {}
func (*URL) isValue()   {}

// valueText renders a value as text: Text verbatim, Binary decoded as UTF-8
// bytes, URL as its source text.
func valueText(v Value) string {
	switch v := v.(type) {
	case Text:
		return string(v)
	case Binary:
		return string(v)
	case *URL:
		return v.String()
	default:
		return ""
	}
}
