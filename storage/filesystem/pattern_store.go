package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/revelaction/relex/match"
	"github.com/revelaction/relex/storage"
)

const patternExt = ".yaml"

// PatternStore keeps one pattern set per YAML file, named after the file.
type PatternStore struct {
	root string
}

var _ storage.PatternRepository = (*PatternStore)(nil)

func NewPatternStore(root string) *PatternStore {
	return &PatternStore{root: root}
}

func (ps *PatternStore) ReadAll() (match.Library, error) {
	names, err := ps.names()
	if err != nil {
		return nil, err
	}

	lib := match.Library{}
	for _, n := range names {
		set, err := ps.Read(n)
		if err != nil {
			return nil, err
		}

		lib = append(lib, set)
	}

	return lib, nil
}

func (ps *PatternStore) names() ([]string, error) {
	files, err := os.ReadDir(ps.root)
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != patternExt {
			continue
		}

		names = append(names, strings.TrimSuffix(file.Name(), patternExt))
	}

	return names, nil
}

func (ps *PatternStore) Read(name string) (match.PatternSet, error) {
	buf, err := os.ReadFile(filepath.Join(ps.root, name+patternExt))
	if err != nil {
		if os.IsNotExist(err) {
			return match.PatternSet{}, fmt.Errorf("pattern set %q: %w", name, storage.ErrNotFound)
		}
		return match.PatternSet{}, err
	}

	var set match.PatternSet
	if err := yaml.Unmarshal(buf, &set); err != nil {
		return match.PatternSet{}, fmt.Errorf("pattern set %q: %w", name, err)
	}

	set.Name = name
	return set, nil
}

func (ps *PatternStore) Write(set match.PatternSet) error {
	if set.Name == "" {
		return fmt.Errorf("pattern set without name")
	}

	buf, err := yaml.Marshal(set)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(ps.root, 0o755); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(ps.root, set.Name+patternExt), buf, 0644)
}
