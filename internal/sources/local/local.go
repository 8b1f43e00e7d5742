// Package local discovers spreadsheet files under a directory and reads them
// in lexical walk order.
package local

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/rostermerge/internal/sources/csv"
	"github.com/agentstation/rostermerge/internal/sources/xlsx"
	"github.com/agentstation/rostermerge/pkg/constants"
	"github.com/agentstation/rostermerge/pkg/errors"
	"github.com/agentstation/rostermerge/pkg/logging"
	"github.com/agentstation/rostermerge/pkg/records"
	"github.com/agentstation/rostermerge/pkg/sources"
)

// Source walks a directory tree for .xlsx and .csv files.
type Source struct {
	root   string
	logger *zerolog.Logger
}

// New creates a new local source rooted at root.
func New(root string, opts ...Option) *Source {
	s := &Source{root: root}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Option configures a local source.
type Option func(*Source)

// WithLogger sets the logger used to report discovered files.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Source) {
		s.logger = logger
	}
}

// ID returns the root directory.
func (s *Source) ID() sources.ID {
	return sources.ID(s.root)
}

// Supported reports whether a file name has a readable extension.
// Office lock files ("~$name.xlsx") are not.
func Supported(name string) bool {
	if strings.HasPrefix(filepath.Base(name), "~$") {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case constants.ExtXLSX, constants.ExtCSV:
		return true
	}
	return false
}

// Files lists the readable files under the root, relative to it, in lexical
// walk order.
func (s *Source) Files() ([]string, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("directory", s.root)
		}
		return nil, errors.WrapIO("stat", s.root, err)
	}
	if !info.IsDir() {
		return nil, &errors.ValidationError{Field: "root", Value: s.root, Message: "not a directory"}
	}

	var files []string
	err = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !Supported(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, errors.WrapIO("walk", s.root, err)
	}
	return files, nil
}

// Open returns the reader for one file, chosen by extension. name is the
// file id reported on its sheets.
func Open(path, name string) (sources.Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case constants.ExtXLSX:
		return xlsx.New(path, xlsx.WithName(name)), nil
	case constants.ExtCSV:
		return csv.New(path, csv.WithName(name)), nil
	}
	return nil, &errors.ResourceError{
		Operation: "open",
		Resource:  "file",
		ID:        path,
		Message:   "unsupported extension",
		Err:       errors.ErrUnsupportedFormat,
	}
}

// Sheets yields the sheets of every discovered file in turn.
func (s *Source) Sheets(ctx context.Context) iter.Seq2[records.RawSheet, error] {
	return func(yield func(records.RawSheet, error) bool) {
		logger := s.logger
		if logger == nil {
			logger = logging.FromContext(ctx)
		}

		files, err := s.Files()
		if err != nil {
			yield(records.RawSheet{}, err)
			return
		}
		logger.Debug().Str("root", s.root).Int("files", len(files)).Msg("Discovered input files")

		for _, rel := range files {
			src, err := Open(filepath.Join(s.root, filepath.FromSlash(rel)), rel)
			if err != nil {
				yield(records.RawSheet{}, err)
				return
			}

			logger.Debug().Str("file", rel).Msg("Reading file")
			for sheet, err := range src.Sheets(ctx) {
				if !yield(sheet, err) || err != nil {
					return
				}
			}
		}
	}
}
