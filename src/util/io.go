package util

import (
	"bufio"
	"errors"
	"io"
	"os"
	"time"
)

// ReadSource reads source code from a file named by opt.Src, or from stdin
// if no file was given. Analysis runs single-threaded and sequential
// (see DESIGN.md), so unlike the Writer/ListenWrite machinery this
// replaces, there is never more than one reader or writer live at once.
func ReadSource(opt Options) (string, error) {
	if len(opt.Src) > 0 {
		b, err := os.ReadFile(opt.Src)
		return string(b), err
	}

	c := make(chan string)
	cerr := make(chan error)
	go func() {
		defer close(c)
		defer close(cerr)
		reader := bufio.NewReader(os.Stdin)
		text, err := reader.ReadString(0)
		if err == nil || errors.Is(err, io.EOF) {
			c <- text
		} else {
			cerr <- err
		}
	}()

	select {
	case <-time.After(500 * time.Millisecond):
		return "", errors.New("expected input from stdin, got none")
	case s := <-c:
		return s, nil
	case err := <-cerr:
		return "", err
	}
}

// WriteOutput writes s to path, or to stdout when path is empty.
func WriteOutput(path, s string) error {
	if path == "" {
		_, err := os.Stdout.WriteString(s)
		return err
	}
	return os.WriteFile(path, []byte(s), 0644)
}
