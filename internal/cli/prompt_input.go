package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// askYesNo prints message to out and reads one answer line from in. Only
// "y" and "yes" confirm; an empty answer, EOF or a read error count as no.
func askYesNo(in io.Reader, out io.Writer, message string) bool {
	if out != nil {
		fmt.Fprint(out, message)
	}
	text, err := readAnswer(in)
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// readAnswer reads up to LF or CR so Enter works in cooked and raw modes.
// It reads a byte at a time to leave the rest of in unconsumed.
func readAnswer(in io.Reader) (string, error) {
	if in == nil {
		return "", io.EOF
	}
	var (
		buf []byte
		one [1]byte
	)
	for {
		n, err := in.Read(one[:])
		if n > 0 {
			if one[0] == '\n' || one[0] == '\r' {
				return string(buf), nil
			}
			buf = append(buf, one[0])
		}
		if err != nil {
			if errors.Is(err, io.EOF) && len(buf) > 0 {
				return string(buf), nil
			}
			return string(buf), err
		}
	}
}
