// Package file reads the offers data file from the local filesystem,
// trying a fixed list of candidate locations.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when none of the candidate paths exist.
var ErrNotFound = errors.New("data source not found")

type Source struct {
	// Path, when set, is tried before the default candidates.
	Path string
}

func New(path string) *Source {
	return &Source{Path: path}
}

func (s *Source) Name() string { return "file" }

// candidates returns the ordered list of locations to probe, relative
// to the working directory. The first existing one wins.
func (s *Source) candidates() []string {
	paths := []string{}
	if strings.TrimSpace(s.Path) != "" {
		paths = append(paths, s.Path)
	}
	return append(paths,
		"data.json",
		filepath.Join("..", "data.json"),
		filepath.Join("backend", "data.json"),
	)
}

func (s *Source) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.resolve()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("file: read %s: %w", path, err)
	}
	return data, nil
}

func (s *Source) resolve() (string, error) {
	for _, p := range s.candidates() {
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: data.json not in expected locations", ErrNotFound)
}
