package driven

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alorle/iptv-aggregator/internal/reference"
)

const referenceExt = ".txt"

// ReferenceFileLoader reads classification lists from plain text files, one
// channel name per line. It implements the driven.ReferenceLoader port.
type ReferenceFileLoader struct {
	nationalFile  string
	regionalFiles []string
	regionalDir   string
}

// NewReferenceFileLoader creates a loader. Regional lists come from the
// explicit files plus every *.txt in regionalDir other than the national file.
// A region is named after its file, without the extension.
func NewReferenceFileLoader(nationalFile string, regionalFiles []string, regionalDir string) *ReferenceFileLoader {
	return &ReferenceFileLoader{
		nationalFile:  nationalFile,
		regionalFiles: regionalFiles,
		regionalDir:   regionalDir,
	}
}

// LoadNational reads the national list. An unset path yields an empty set.
func (l *ReferenceFileLoader) LoadNational(ctx context.Context) (reference.Set, error) {
	if err := ctx.Err(); err != nil {
		return reference.Set{}, err
	}
	if l.nationalFile == "" {
		return reference.Set{}, nil
	}
	return readSetFile(l.nationalFile)
}

// LoadRegional reads every regional list. Unreadable files become empty sets
// and are reported together in the returned error.
func (l *ReferenceFileLoader) LoadRegional(ctx context.Context) (reference.Regional, error) {
	if err := ctx.Err(); err != nil {
		return reference.Regional{}, err
	}

	var errs []error

	files, err := l.discover()
	if err != nil {
		errs = append(errs, err)
	}
	files = append(files, l.regionalFiles...)

	// Files sharing a base name feed the same region; an unreadable one
	// contributes nothing.
	sets := make(map[string]reference.Set, len(files))
	for _, path := range files {
		set, err := readSetFile(path)
		if err != nil {
			errs = append(errs, err)
		}
		name := regionName(path)
		sets[name] = sets[name].Union(set)
	}

	return reference.NewRegional(sets), errors.Join(errs...)
}

// discover lists the *.txt files of the regional directory, skipping the
// national file.
func (l *ReferenceFileLoader) discover() ([]string, error) {
	if l.regionalDir == "" {
		return nil, nil
	}

	dirEntries, err := os.ReadDir(l.regionalDir)
	if err != nil {
		return nil, fmt.Errorf("%w: regional directory %s: %v", reference.ErrFileMissing, l.regionalDir, err)
	}

	var files []string
	for _, de := range dirEntries {
		if de.IsDir() || !strings.EqualFold(filepath.Ext(de.Name()), referenceExt) {
			continue
		}
		path := filepath.Join(l.regionalDir, de.Name())
		if l.nationalFile != "" && samePath(path, l.nationalFile) {
			continue
		}
		files = append(files, path)
	}
	return files, nil
}

func readSetFile(path string) (reference.Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return reference.Set{}, fmt.Errorf("%w: %v", reference.ErrFileMissing, err)
	}
	defer f.Close()

	set, err := reference.ParseSet(f)
	if err != nil {
		return reference.Set{}, fmt.Errorf("%w: %s: %v", reference.ErrFileMissing, path, err)
	}
	return set, nil
}

func regionName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
