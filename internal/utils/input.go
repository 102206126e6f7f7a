package utils

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

type readResult struct {
	line string
	err  error
}

// ReadUserInput reads one trimmed line from r. It returns ErrUserInitiatedExit
// if the context is cancelled while waiting, or if the input is closed.
func ReadUserInput(ctx context.Context, r *bufio.Reader) (string, error) {
	resChan := make(chan readResult, 1)
	go func() {
		line, err := r.ReadString('\n')
		resChan <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrUserInitiatedExit
	case res := <-resChan:
		if res.err != nil {
			if errors.Is(res.err, io.EOF) {
				if strings.TrimSpace(res.line) != "" {
					return strings.TrimSpace(res.line), nil
				}
				return "", ErrUserInitiatedExit
			}
			return "", fmt.Errorf("failed to read user input: %w", res.err)
		}
		return strings.TrimSpace(res.line), nil
	}
}
