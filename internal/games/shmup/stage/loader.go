package stage

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

//go:embed stages/*.yaml
var builtin embed.FS

// Loader reads stage files from a directory, or from the built-in set when
// Root is empty.
type Loader struct {
	Root   string
	fsys   fs.FS
	logger *log.Logger
}

// NewLoader creates a loader for root. An empty root selects the built-in
// stages. A nil logger discards tile problems.
func NewLoader(root string, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	l := &Loader{Root: root, logger: logger}
	if root == "" {
		sub, err := fs.Sub(builtin, "stages")
		if err != nil {
			panic(err) // embed pattern guarantees the directory
		}
		l.fsys = sub
	} else {
		l.fsys = os.DirFS(root)
	}
	return l
}

// LoadAll recursively scans and loads all stage files.
// Invalid files are logged and skipped. Stages are sorted by ID.
func (l *Loader) LoadAll() ([]*Stage, error) {
	var stages []*Stage

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsStageFile(p) {
			return nil
		}
		st, err := l.load(p)
		if err != nil {
			l.logger.Warn("skipping stage file", "path", p, "err", err)
			return nil
		}
		stages = append(stages, st)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("stage: walking %s: %w", l.describe(), err)
	}

	sort.Slice(stages, func(i, j int) bool {
		return stages[i].ID < stages[j].ID
	})
	return stages, nil
}

// LoadFile loads a single stage file given by its path on disk.
func (l *Loader) LoadFile(p string) (*Stage, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("stage: reading %s: %w", p, err)
	}
	return l.parse(data, p)
}

// LoadByID loads a specific stage by ID.
func (l *Loader) LoadByID(id string) (*Stage, error) {
	stages, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	for _, st := range stages {
		if st.ID == id {
			return st, nil
		}
	}
	return nil, fmt.Errorf("stage: not found: %s", id)
}

// ListIDs returns all stage IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	stages, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(stages))
	for i, st := range stages {
		ids[i] = st.ID
	}
	return ids, nil
}

// load reads a file from the loader's file system.
func (l *Loader) load(p string) (*Stage, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("stage: reading %s: %w", p, err)
	}
	full := p
	if l.Root != "" {
		full = filepath.Join(l.Root, filepath.FromSlash(p))
	}
	return l.parse(data, full)
}

// parse decodes a stage and logs tile problems.
func (l *Loader) parse(data []byte, p string) (*Stage, error) {
	st, problems, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("stage: parsing %s: %w", p, err)
	}
	for _, pr := range problems {
		l.logger.Warn("skipping tile", "stage", st.ID, "problem", pr.String())
	}
	st.FilePath = p
	return st, nil
}

func (l *Loader) describe() string {
	if l.Root == "" {
		return "built-in stages"
	}
	return l.Root
}

// IsStageFile reports whether a path has a stage file extension.
func IsStageFile(p string) bool {
	ext := strings.ToLower(path.Ext(filepath.ToSlash(p)))
	return ext == ".yaml" || ext == ".yml"
}
