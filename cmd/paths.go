package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const featureExt = ".feature"

// resolvePaths expands arguments into feature file paths. Directories are
// walked for *.feature files and globs are expanded, each sorted. A plain
// path is kept even when missing so the loader reports it. A trailing
// :line[:line...] restricts that file to the scenarios at those lines.
func resolvePaths(args []string) ([]string, map[string][]int, error) {
	var paths []string
	lines := map[string][]int{}

	for _, arg := range args {
		arg, argLines, err := splitLineSpec(arg)
		if err != nil {
			return nil, nil, err
		}

		var found []string
		switch {
		case strings.ContainsAny(arg, "*?["):
			found, err = filepath.Glob(arg)
			if err != nil {
				return nil, nil, fmt.Errorf("expanding %s: %w", arg, err)
			}
			sort.Strings(found)
		case isDir(arg):
			found, err = walkFeatures(arg)
			if err != nil {
				return nil, nil, err
			}
		default:
			found = []string{arg}
		}

		for _, p := range found {
			p = filepath.ToSlash(p)
			if len(argLines) > 0 {
				lines[p] = append(lines[p], argLines...)
			}
			paths = append(paths, p)
		}
	}
	return paths, lines, nil
}

// splitLineSpec splits "path:3:9" into the path and its line numbers.
func splitLineSpec(arg string) (string, []int, error) {
	parts := strings.Split(arg, ":")
	end := len(parts)
	for end > 1 {
		if _, err := strconv.Atoi(parts[end-1]); err != nil {
			break
		}
		end--
	}
	if end == len(parts) {
		return arg, nil, nil
	}

	lines := make([]int, 0, len(parts)-end)
	for _, s := range parts[end:] {
		n, _ := strconv.Atoi(s)
		if n < 1 {
			return "", nil, fmt.Errorf("invalid line %q in %s", s, arg)
		}
		lines = append(lines, n)
	}
	return strings.Join(parts[:end], ":"), lines, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func walkFeatures(root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == featureExt {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	sort.Strings(found)
	return found, nil
}
