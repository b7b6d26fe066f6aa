package ldif

// WarningCode identifies the condition behind an advisory Warning.
type WarningCode int

const (
	// WarnFirstKeyNotDN reports a decoded entry whose first attribute key is
	// not "dn".
	WarnFirstKeyNotDN WarningCode = iota + 1
	// WarnUnsafeText reports a text value that was base64-encoded on write
	// because it failed the safe-string rule.
	WarnUnsafeText
)

// Warning is an advisory condition observed during decoding or encoding.
// Warnings never interrupt processing; they are delivered synchronously to
// the handler configured with WithWarningHandler.
type Warning struct {
	Code    WarningCode
	Message string
}

func discardWarning(Warning) {}

type readConfig struct {
	limits      Limits
	skipVersion bool
	compression Compression
	warn        func(Warning)
}

type ReadOption func(*readConfig)

func WithReadLimits(l Limits) ReadOption {
	return func(c *readConfig) { c.limits = l }
}

// WithSkipVersionHeader controls whether a leading "version: N" line is
// dropped instead of decoded as an ordinary attribute. Enabled by default.
func WithSkipVersionHeader(v bool) ReadOption {
	return func(c *readConfig) { c.skipVersion = v }
}

// WithReadCompression selects the input codec. The default, CompAuto, sniffs
// gzip, Zstandard, and LZ4 frames and otherwise reads plain text.
func WithReadCompression(comp Compression) ReadOption {
	return func(c *readConfig) { c.compression = comp }
}

func WithWarningHandler(fn func(Warning)) ReadOption {
	return func(c *readConfig) { c.warn = fn }
}

type writeConfig struct {
	lineWidth   int
	version     int
	hasVersion  bool
	compression Compression
	warn        func(Warning)
}

type WriteOption func(*writeConfig)

// WithLineWidth sets the physical line width used when folding. Zero
// disables folding entirely; widths below 2 are rejected by NewEncoder. The
// default is 76, per RFC 2849.
func WithLineWidth(n int) WriteOption {
	return func(c *writeConfig) { c.lineWidth = n }
}

// WithVersion sets the value of the leading "version: N" record. The default
// is 1; negative values are rejected by NewEncoder.
func WithVersion(n int) WriteOption {
	return func(c *writeConfig) { c.version, c.hasVersion = n, true }
}

// WithoutVersionHeader suppresses the leading version record.
func WithoutVersionHeader() WriteOption {
	return func(c *writeConfig) { c.hasVersion = false }
}

// WithCompression selects the output codec. The default is CompNone.
func WithCompression(comp Compression) WriteOption {
	return func(c *writeConfig) { c.compression = comp }
}

// WithWarningHandlerOnWrite installs the handler for encode-side warnings.
func WithWarningHandlerOnWrite(fn func(Warning)) WriteOption {
	return func(c *writeConfig) { c.warn = fn }
}
