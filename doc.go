// Package ldif reads and writes LDIF (LDAP Data Interchange Format) streams
// as defined by RFC 2849.
//
// An LDIF stream is a sequence of entries separated by blank lines. Each
// entry is an ordered list of attribute lines of the form
//
//	name[;option...]: value
//	name[;option...]:: base64-value
//	name[;option...]:< url
//
// Long lines may be folded across physical lines: a physical line beginning
// with a single space continues the previous line. The package reconstructs
// logical lines losslessly on read and folds them to a configurable width on
// write.
//
// # Values
//
// Attribute values are a closed sum over three variants: [Text] for plain
// UTF-8 strings, [Binary] for raw bytes, and [URL] for external references.
// On write, text that cannot be emitted verbatim without changing meaning on
// re-parse (leading space, leading colon, non-ASCII bytes, embedded newlines,
// and so on) falls back to base64 automatically and reports a [Warning]
// through the configured handler.
//
// # Basic Usage
//
// To read entries one at a time:
//
//	f, _ := os.Open("people.ldif")
//	defer f.Close()
//	dec, err := ldif.NewDecoder(f)
//	for {
//		entry, err := dec.Next()
//		if err == io.EOF {
//			break
//		}
//		// ...
//	}
//
// To write entries:
//
//	n, err := ldif.Encode(w, entries, ldif.WithLineWidth(76))
//
// # Compression
//
// Streams may be transparently compressed with gzip, Zstandard, LZ4, or
// Brotli (see [Compression]). On read, gzip, Zstandard, and LZ4 input is
// detected automatically from frame magic; Brotli frames carry no magic and
// must be requested explicitly with [WithReadCompression].
//
// # Security Considerations
//
// Decoding enforces configurable [Limits] on logical line length and
// attributes per entry, so a hostile stream (folded without bound, or one
// endless record) cannot force unbounded allocation.
package ldif
