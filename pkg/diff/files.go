package diff

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

func (d *Differ) DiffPaths(oldPath, newPath string, opts *Options) ([]Result, error) {
	oldInfo, err := os.Stat(oldPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", oldPath, err)
	}
	newInfo, err := os.Stat(newPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", newPath, err)
	}

	if oldInfo.IsDir() != newInfo.IsDir() {
		return nil, fmt.Errorf("cannot compare directory with file: %s, %s", oldPath, newPath)
	}

	if oldInfo.IsDir() {
		return d.diffDirs(oldPath, newPath, opts)
	}
	return d.diffFiles(oldPath, newPath, opts)
}

func (d *Differ) diffFiles(oldPath, newPath string, opts *Options) ([]Result, error) {
	oldValue, err := LoadFile(oldPath)
	if err != nil {
		return nil, err
	}
	newValue, err := LoadFile(newPath)
	if err != nil {
		return nil, err
	}
	return d.Diff(oldValue, newValue, opts)
}

// diffDirs compares files of the same name across two directories. Results are
// prefixed with the file name; files present on only one side are reported as
// whole-document additions or removals.
func (d *Differ) diffDirs(oldDir, newDir string, opts *Options) ([]Result, error) {
	oldFiles, err := listComparableFiles(oldDir)
	if err != nil {
		return nil, err
	}
	newFiles, err := listComparableFiles(newDir)
	if err != nil {
		return nil, err
	}

	names := make(map[string]bool)
	for name := range oldFiles {
		names[name] = true
	}
	for name := range newFiles {
		names[name] = true
	}
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	var results []Result
	for _, name := range sorted {
		_, inOld := oldFiles[name]
		_, inNew := newFiles[name]

		switch {
		case inOld && !inNew:
			value, err := LoadFile(oldFiles[name])
			if err != nil {
				return nil, err
			}
			results = append(results, Removed{Path: name, Value: value})
		case !inOld && inNew:
			value, err := LoadFile(newFiles[name])
			if err != nil {
				return nil, err
			}
			results = append(results, Added{Path: name, Value: value})
		default:
			oldValue, err := LoadFile(oldFiles[name])
			if err != nil {
				return nil, err
			}
			newValue, err := LoadFile(newFiles[name])
			if err != nil {
				return nil, err
			}
			compareChild(name, "", oldValue, newValue, opts, &results)
		}
	}

	if opts == nil || opts.PathFilter == nil {
		return results, nil
	}
	filtered := make([]Result, 0, len(results))
	for _, r := range results {
		if opts.matchesFilter(r.DiffPath()) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

func listComparableFiles(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	files := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".json", ".yaml", ".yml":
			files[entry.Name()] = filepath.Join(dir, entry.Name())
		}
	}
	return files, nil
}

// LoadFile parses a JSON or YAML document into a Value. The format is chosen
// by file extension.
func LoadFile(path string) (Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var raw interface{}
	switch filepath.Ext(path) {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported file type: %s (supported: .json, .yaml, .yml)", path)
	}

	value, err := FromAny(normalizeYAML(raw))
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", path, err)
	}
	return value, nil
}

// normalizeYAML rewrites yaml.v3 map[interface{}]interface{} nodes (emitted
// for non-scalar keys in older documents) into string-keyed maps so FromAny
// accepts them.
func normalizeYAML(v interface{}) interface{} {
	switch val := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(val))
		for key, elem := range val {
			out[fmt.Sprintf("%v", key)] = normalizeYAML(elem)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for key, elem := range val {
			out[key] = normalizeYAML(elem)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, elem := range val {
			out[i] = normalizeYAML(elem)
		}
		return out
	default:
		return v
	}
}
