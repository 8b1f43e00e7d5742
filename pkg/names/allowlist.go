package names

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agentstation/rostermerge/pkg/errors"
)

// AllowList is the set of canonical name keys search mode reconciles.
type AllowList struct {
	keys  map[Key]struct{}
	order []Key
}

// NewAllowList builds an allow-list from already canonical keys.
func NewAllowList(keys ...Key) *AllowList {
	a := &AllowList{keys: make(map[Key]struct{}, len(keys))}
	for _, k := range keys {
		a.add(k)
	}
	return a
}

func (a *AllowList) add(k Key) {
	if _, dup := a.keys[k]; dup {
		return
	}
	a.keys[k] = struct{}{}
	a.order = append(a.order, k)
}

// Contains reports whether the key is on the list.
func (a *AllowList) Contains(k Key) bool {
	_, ok := a.keys[k]
	return ok
}

// Len returns the number of distinct names.
func (a *AllowList) Len() int {
	return len(a.order)
}

// Keys returns the names in the order they were first listed.
func (a *AllowList) Keys() []Key {
	return append([]Key(nil), a.order...)
}

// ParseAllowList reads one name per line, exactly two whitespace separated
// tokens (first name, last name). Blank lines are skipped.
func ParseAllowList(r io.Reader) (*AllowList, error) {
	a := NewAllowList()

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		tokens := strings.Fields(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if len(tokens) == 0 {
			continue
		}
		if len(tokens) != 2 {
			return nil, errors.NewValidationError(
				fmt.Sprintf("names line %d", lineNo),
				scanner.Text(),
				fmt.Sprintf("expected first and last name, got %d tokens", len(tokens)),
			)
		}
		a.add(NewKey(tokens[0], tokens[1]))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapIO("read", "names", err)
	}
	return a, nil
}

// LoadAllowList reads an allow-list file.
func LoadAllowList(path string) (*AllowList, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("names file", path)
		}
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	return ParseAllowList(f)
}
