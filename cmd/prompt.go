package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// lineReader reads answers for the line-mode commands.
type lineReader struct {
	in  *bufio.Reader
	out io.Writer
}

func newLineReader(in io.Reader, out io.Writer) *lineReader {
	return &lineReader{in: bufio.NewReader(in), out: out}
}

// ask prints label and returns the trimmed reply. io.EOF is returned only
// when the input ends before any text.
func (l *lineReader) ask(label string) (string, error) {
	fmt.Fprint(l.out, label)
	line, err := l.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return line, nil
}

// choose asks until the reply names one of n options, by letter (a, b, ...)
// or by 1-based number, and returns its index.
func (l *lineReader) choose(label string, n int) (int, error) {
	for {
		reply, err := l.ask(label)
		if err != nil {
			return 0, err
		}
		if i, ok := optionIndex(reply, n); ok {
			return i, nil
		}
		fmt.Fprintf(l.out, "Enter a letter between a and %c.\n", 'a'+rune(n-1))
	}
}

func optionIndex(reply string, n int) (int, bool) {
	reply = strings.ToLower(reply)
	if len(reply) == 1 && reply[0] >= 'a' && int(reply[0]-'a') < n {
		return int(reply[0] - 'a'), true
	}
	if i, err := strconv.Atoi(reply); err == nil && i >= 1 && i <= n {
		return i - 1, true
	}
	return 0, false
}
