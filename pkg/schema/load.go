package schema

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/agentstation/rostermerge/pkg/errors"
)

// Load parses a field alias config. Each non-blank line that does not start
// with '#' has the form
//
//	key: label1, label2, ...
//
// where label1 is the display label and the rest are aliases.
func Load(r io.Reader) (*Registry, error) {
	registry := newRegistry(8)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		if lineNo == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}

		line := strings.TrimSpace(text)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		field, err := parseLine(lineNo, line)
		if err != nil {
			return nil, err
		}
		if err := registry.add(field); err != nil {
			if cfe, ok := err.(*errors.ConfigFormatError); ok {
				cfe.Line, cfe.Text = lineNo, line
			}
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapIO("read", "schema", err)
	}

	if err := registry.checkRequired(); err != nil {
		return nil, err
	}
	return registry, nil
}

// LoadFile reads and parses a field alias config file.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("schema", path)
		}
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	return Load(f)
}

// parseLine parses one "key: label, label" definition.
func parseLine(lineNo int, line string) (Field, error) {
	key, rest, found := strings.Cut(line, ":")
	if !found {
		return Field{}, errors.NewConfigFormatError(lineNo, line, "missing ':' separator")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return Field{}, errors.NewConfigFormatError(lineNo, line, "empty field key")
	}

	var labels []string
	for _, label := range strings.Split(rest, ",") {
		if label = strings.TrimSpace(label); label != "" {
			labels = append(labels, label)
		}
	}
	if len(labels) == 0 {
		return Field{}, errors.NewConfigFormatError(lineNo, line, "no labels after ':'")
	}

	return Field{Key: key, Label: labels[0], Aliases: labels[1:]}, nil
}
