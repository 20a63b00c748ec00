package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	loc "github.com/benSepanski/lockPlacementBenchmarks/analysis/location"
	"github.com/benSepanski/lockPlacementBenchmarks/analysis/program"
)

// LoadResult contains a monitor loaded from a model description together
// with its atomic segments.
type LoadResult struct {
	Monitor  *program.Class
	Segments []program.AtomicSegment
}

// Method returns the method of the monitor with the given simple name.
func (res LoadResult) Method(t *testing.T, name string) *program.Method {
	t.Helper()
	for _, m := range res.Monitor.Methods() {
		if m.Name() == res.Monitor.Name()+"."+name {
			return m
		}
	}
	t.Fatalf("No method %s in %s", name, res.Monitor.Name())
	return nil
}

// Loc parses a location in the context of the named method.
func (res LoadResult) Loc(t *testing.T, method, text string) loc.Location {
	t.Helper()
	l, err := res.Monitor.ParseLocation(res.Method(t, method), text)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func loadResult(t *testing.T, classes []*program.Class, err error) []LoadResult {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}

	res := make([]LoadResult, 0, len(classes))
	for _, c := range classes {
		segs, err := c.Segments()
		if err != nil {
			t.Fatalf("Segments of %s: %v", c.Name(), err)
		}
		res = append(res, LoadResult{Monitor: c, Segments: segs})
	}
	return res
}

// LoadMonitorFromSource loads the single monitor described by content.
func LoadMonitorFromSource(t *testing.T, content string) LoadResult {
	t.Helper()
	classes, err := program.Load(strings.NewReader(content))
	res := loadResult(t, classes, err)
	if len(res) != 1 {
		t.Fatalf("Expected a single monitor, found %d", len(res))
	}
	return res[0]
}

// LoadExampleMonitors loads every monitor of the given example file.
func LoadExampleMonitors(t *testing.T, path string) []LoadResult {
	t.Helper()
	classes, err := program.LoadFile(path)
	return loadResult(t, classes, err)
}

// ListExamples returns the paths of the model files in the examples
// directory under pathToRoot, sorted by name.
func ListExamples(t *testing.T, pathToRoot string) []string {
	t.Helper()
	dir := filepath.Join(pathToRoot, "examples")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	var paths []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".yaml" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths
}

// ExampleName strips the directory and extension of an example path.
func ExampleName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
