package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// TerminalPrompt reads a secret from stdin without echoing it.
func TerminalPrompt(out io.Writer) func(label string) (string, error) {
	return func(label string) (string, error) {
		fmt.Fprintf(out, "%s: ", label)
		raw, err := readPasswordNoEcho(os.Stdin)
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
		}
		return string(raw), nil
	}
}

func (appCtx *Context) promptPassword(label string) (string, error) {
	if appCtx.Prompt == nil {
		return "", errors.New("password prompt unavailable, pass --password")
	}
	return appCtx.Prompt(label)
}
