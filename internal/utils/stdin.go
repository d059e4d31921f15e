package utils

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// ReadLine reads one line from r and strips the line terminator.
// It returns io.EOF only when the input ended before any character was read.
func ReadLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
