package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// indexFileName is the optional catalogue at the root of a template tree.
const indexFileName = "index.yaml"

// indexFile mirrors index.yaml: the catalogue of templates in the tree.
type indexFile struct {
	Templates []indexEntry `yaml:"templates"`
}

type indexEntry struct {
	Platform string `yaml:"platform"`
	Command  string `yaml:"command"`
	Path     string `yaml:"path"`
}

// FSSource serves template text from a filesystem tree. When the tree's
// root holds an index.yaml it maps (platform, command) pairs to file paths;
// entries absent from the index, or the whole tree when no index exists,
// fall back to the <platform>/<command>.textfsm path convention.
type FSSource struct {
	fsys  fs.FS
	paths map[cacheKey]string
}

// NewFSSource creates a source over fsys, loading index.yaml when present.
func NewFSSource(fsys fs.FS) (*FSSource, error) {
	s := &FSSource{fsys: fsys, paths: make(map[cacheKey]string)}

	data, err := fs.ReadFile(fsys, indexFileName)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", indexFileName, err)
	}

	var idx indexFile
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", indexFileName, err)
	}
	for _, e := range idx.Templates {
		if e.Platform == "" || e.Command == "" || e.Path == "" {
			return nil, fmt.Errorf("parsing %s: entry needs platform, command and path", indexFileName)
		}
		s.paths[cacheKey{platform: e.Platform, command: e.Command}] = e.Path
	}
	return s, nil
}

// Template implements Source.
func (s *FSSource) Template(_ context.Context, platform, command string) (string, error) {
	path, ok := s.paths[cacheKey{platform: platform, command: command}]
	if !ok {
		path = platform + "/" + command + ".textfsm"
	}

	data, err := fs.ReadFile(s.fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s/%s", ErrTemplateNotFound, platform, command)
	}
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", path, err)
	}
	return string(data), nil
}
