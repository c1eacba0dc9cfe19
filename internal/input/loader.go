// Package input resolves free text given on the command line, in a file or on
// standard input.
package input

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Stdin is the File value that reads standard input.
const Stdin = "-"

// Source describes where a piece of text comes from.
type Source struct {
	// Name is used in error messages to give more context about the text.
	Name string
	// Value is text given inline through a flag.
	Value string
	// File points to a file holding the text. When set it takes precedence
	// over Value.
	File string
}

// Load returns the text of src. An empty result is not an error; callers
// decide whether blank text is acceptable.
func Load(src Source) (string, error) {
	return load(src, os.Stdin)
}

func load(src Source, stdin io.Reader) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "input"
	}

	file := strings.TrimSpace(src.File)
	switch file {
	case "":
		return src.Value, nil
	case Stdin:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading %s from stdin: %w", name, err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		return string(data), nil
	}
}
