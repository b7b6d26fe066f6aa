package ldif

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// lineUnfolder reassembles logical lines from folded physical lines. A
// physical line starting with exactly one space continues the current
// logical line; the space is removed and the remainder appended with no
// separator. It is a single forward pass over the underlying reader.
type lineUnfolder struct {
	r           *bufio.Reader
	pending     string
	havePending bool
	maxLine     int
}

func newLineUnfolder(r io.Reader, maxLine int) *lineUnfolder {
	return &lineUnfolder{r: bufio.NewReader(r), maxLine: maxLine}
}

// next returns the next logical line, or io.EOF once the input is exhausted.
// An empty physical line yields an empty logical line; it is never a
// continuation. A final line without a trailing newline is still delivered.
func (u *lineUnfolder) next() (string, error) {
	for {
		raw, err := u.readPhysicalLine()
		if err != nil {
			if err != io.EOF {
				return "", err
			}
			if u.havePending {
				line := u.pending
				u.pending, u.havePending = "", false
				return line, nil
			}
			return "", io.EOF
		}
		line := strings.TrimRight(raw, "\r\n")
		var out string
		var emit bool
		switch {
		case !u.havePending:
			u.pending, u.havePending = line, true
		case strings.HasPrefix(line, " "):
			u.pending += line[1:]
		default:
			out, emit = u.pending, true
			u.pending = line
		}
		if len(u.pending) > u.maxLine {
			return "", fmt.Errorf("%w: logical line exceeds %d bytes", ErrLimitExceeded, u.maxLine)
		}
		if emit {
			return out, nil
		}
	}
}

// readPhysicalLine reads one newline-terminated line in buffer-sized chunks,
// checking the accumulated length against maxLine per chunk. An unterminated
// or endless line therefore fails after at most maxLine plus one buffer of
// input instead of being held in memory whole. Clean end of input is io.EOF;
// a final line without a newline is returned like any other.
func (u *lineUnfolder) readPhysicalLine() (string, error) {
	var line []byte
	for {
		chunk, err := u.r.ReadSlice('\n')
		line = append(line, chunk...)
		switch err {
		case nil:
			return string(line), nil
		case bufio.ErrBufferFull:
			if len(line) > u.maxLine {
				return "", fmt.Errorf("%w: physical line exceeds %d bytes", ErrLimitExceeded, u.maxLine)
			}
		case io.EOF:
			if len(line) > 0 {
				return string(line), nil
			}
			return "", io.EOF
		default:
			return "", err
		}
	}
}

// writeFolded emits line as one or more physical lines of at most width
// bytes, continuations prefixed with one space. Width zero disables folding.
// Unfolding the output reproduces line exactly.
func writeFolded(w io.Writer, line string, width int) error {
	if width == 0 || len(line) <= width {
		return writeLn(w, line)
	}
	if err := writeLn(w, line[:width]); err != nil {
		return err
	}
	for rest := line[width:]; len(rest) > 0; {
		n := min(width-1, len(rest))
		if err := writeLn(w, " "+rest[:n]); err != nil {
			return err
		}
		rest = rest[n:]
	}
	return nil
}

func writeLn(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
