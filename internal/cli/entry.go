package cli

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/nulink/pkg/errors"
	"github.com/arthur-debert/nulink/pkg/paths"
)

// resolveEntry picks the project or solution to work on. Without flags the
// single solution in dir wins, then the single project.
func resolveEntry(project, solution, dir string) (string, bool, error) {
	switch {
	case project != "" && solution != "":
		return "", false, errors.New(errors.ErrInvalidInput, MsgErrBothEntries)
	case project != "":
		if !paths.IsProjectFile(project) {
			return "", false, errors.Newf(errors.ErrInvalidInput, MsgErrNotProject, project)
		}
		return absPath(project, dir), false, nil
	case solution != "":
		if !paths.IsSolutionFile(solution) {
			return "", false, errors.Newf(errors.ErrInvalidInput, MsgErrNotSolution, solution)
		}
		return absPath(solution, dir), true, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", dir)
	}

	var solutions, projects []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch {
		case paths.IsSolutionFile(e.Name()):
			solutions = append(solutions, e.Name())
		case paths.IsProjectFile(e.Name()):
			projects = append(projects, e.Name())
		}
	}
	sort.Strings(solutions)
	sort.Strings(projects)

	switch {
	case len(solutions) == 1:
		return filepath.Join(dir, solutions[0]), true, nil
	case len(solutions) > 1:
		return "", false, errors.Newf(errors.ErrInvalidInput, MsgErrManyEntries, "solution", dir).
			WithDetail("candidates", solutions)
	case len(projects) == 1:
		return filepath.Join(dir, projects[0]), false, nil
	case len(projects) > 1:
		return "", false, errors.Newf(errors.ErrInvalidInput, MsgErrManyEntries, "project", dir).
			WithDetail("candidates", projects)
	}
	return "", false, errors.Newf(errors.ErrInvalidInput, MsgErrNoEntry, dir)
}

// absPath expands ~ and resolves path against dir
func absPath(path, dir string) string {
	path = paths.ExpandHome(path)
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	return filepath.Clean(path)
}
