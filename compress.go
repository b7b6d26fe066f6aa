package ldif

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the stream codec wrapped around the LDIF text.
type Compression uint16

const (
	CompNone Compression = 0x0
	CompGzip Compression = 0x1
	CompZSTD Compression = 0x2
	CompLZ4  Compression = 0x3
	CompBR   Compression = 0x4

	// CompAuto is valid on read only: gzip, Zstandard, and LZ4 frames are
	// recognized by magic bytes, anything else is read as plain text. Brotli
	// frames carry no magic and need an explicit CompBR.
	CompAuto Compression = 0xF
)

func (c Compression) String() string {
	switch c {
	case CompNone:
		return "none"
	case CompGzip:
		return "gzip"
	case CompZSTD:
		return "zstd"
	case CompLZ4:
		return "lz4"
	case CompBR:
		return "brotli"
	case CompAuto:
		return "auto"
	default:
		return fmt.Sprintf("compression(%d)", uint16(c))
	}
}

// ParseCompression maps a codec name, as printed by String, back to a
// Compression value.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none":
		return CompNone, nil
	case "gzip":
		return CompGzip, nil
	case "zstd":
		return CompZSTD, nil
	case "lz4":
		return CompLZ4, nil
	case "brotli":
		return CompBR, nil
	case "auto":
		return CompAuto, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrCompression, name)
	}
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// newCompressedReader wraps r with the decompressor for comp. CompAuto
// sniffs the frame magic first.
func newCompressedReader(r io.Reader, comp Compression) (io.Reader, error) {
	if comp == CompAuto {
		br := bufio.NewReader(r)
		comp = sniffCompression(br)
		r = br
	}
	switch comp {
	case CompNone:
		return r, nil
	case CompGzip:
		return gzip.NewReader(r)
	case CompZSTD:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	case CompLZ4:
		return lz4.NewReader(r), nil
	case CompBR:
		return brotli.NewReader(r), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrCompression, comp)
	}
}

func sniffCompression(br *bufio.Reader) Compression {
	head, _ := br.Peek(4)
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		return CompZSTD
	case bytes.HasPrefix(head, lz4Magic):
		return CompLZ4
	case bytes.HasPrefix(head, gzipMagic):
		return CompGzip
	default:
		return CompNone
	}
}

// newCompressedWriter wraps w with the compressor for comp. The returned
// closer finalizes the compression frame without closing w; it is nil for
// CompNone.
func newCompressedWriter(w io.Writer, comp Compression) (io.Writer, io.Closer, error) {
	switch comp {
	case CompNone:
		return w, nil, nil
	case CompGzip:
		zw := gzip.NewWriter(w)
		return zw, zw, nil
	case CompZSTD:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, nil, err
		}
		return zw, zw, nil
	case CompLZ4:
		zw := lz4.NewWriter(w)
		return zw, zw, nil
	case CompBR:
		zw := brotli.NewWriter(w)
		return zw, zw, nil
	default:
		return nil, nil, fmt.Errorf("%w: %d", ErrCompression, comp)
	}
}
