package workspace

import (
	"bufio"
	"bytes"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/nulink/pkg/errors"
	"github.com/arthur-debert/nulink/pkg/logging"
	"github.com/arthur-debert/nulink/pkg/paths"
	"github.com/arthur-debert/nulink/pkg/types"
	"github.com/beevik/etree"
)

// slnProjectLine matches
// Project("{TYPE-GUID}") = "Name", "relative\path.csproj", "{PROJECT-GUID}"
var slnProjectLine = regexp.MustCompile(`^\s*Project\("\{[^}]*\}"\)\s*=\s*"([^"]*)"\s*,\s*"([^"]*)"\s*,\s*"\{[^}]*\}"`)

// LoadProjects loads the project at path, or every project of the solution
// at path when isSolution is set
func LoadProjects(fs types.FS, path string, isSolution bool) ([]Project, error) {
	logger := logging.GetLogger("workspace")

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid path %s", path)
	}

	if !isSolution {
		project, err := LoadProject(fs, abs)
		if err != nil {
			return nil, err
		}
		logger.Debug().Str("project", abs).Msg("Loaded project")
		return []Project{project}, nil
	}

	projectPaths, err := SolutionProjectPaths(fs, abs)
	if err != nil {
		return nil, err
	}

	projects := make([]Project, 0, len(projectPaths))
	for _, p := range projectPaths {
		project, err := LoadProject(fs, p)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	logger.Debug().
		Str("solution", abs).
		Int("projects", len(projects)).
		Msg("Loaded solution")
	return projects, nil
}

// SolutionProjectPaths lists the absolute paths of the projects a solution
// references, in file order. Solution folders and non-MSBuild entries are
// skipped.
func SolutionProjectPaths(fs types.FS, solutionPath string) ([]string, error) {
	data, err := fs.ReadFile(solutionPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrProjectLoad,
			"failed to read solution %s", solutionPath).WithDetail("path", solutionPath)
	}

	var rel []string
	if strings.EqualFold(filepath.Ext(solutionPath), ".slnx") {
		rel, err = parseSlnx(data)
	} else {
		rel, err = parseSln(data)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrProjectLoad,
			"failed to parse solution %s", solutionPath).WithDetail("path", solutionPath)
	}

	dir := filepath.Dir(solutionPath)
	var out []string
	for _, r := range rel {
		r = filepath.FromSlash(strings.ReplaceAll(r, `\`, "/"))
		if !paths.IsProjectFile(r) {
			continue
		}
		if !filepath.IsAbs(r) {
			r = filepath.Join(dir, r)
		}
		out = append(out, filepath.Clean(r))
	}
	return out, nil
}

func parseSln(data []byte) ([]string, error) {
	var out []string
	sawHeader := false

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "Microsoft Visual Studio Solution File") {
			sawHeader = true
			continue
		}
		if m := slnProjectLine.FindStringSubmatch(line); m != nil {
			out = append(out, m[2])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !sawHeader {
		return nil, errors.New(errors.ErrProjectLoad, "missing solution file header")
	}
	return out, nil
}

func parseSlnx(data []byte) ([]string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	if doc.SelectElement("Solution") == nil {
		return nil, errors.New(errors.ErrProjectLoad, "missing <Solution> root")
	}

	return collectSlnxProjects(doc.Root(), nil), nil
}

// collectSlnxProjects walks el depth first so nested folders keep their
// position in the file
func collectSlnxProjects(el *etree.Element, out []string) []string {
	for _, child := range el.ChildElements() {
		if child.Tag == "Project" {
			if path := child.SelectAttrValue("Path", ""); path != "" {
				out = append(out, path)
			}
			continue
		}
		out = collectSlnxProjects(child, out)
	}
	return out
}
