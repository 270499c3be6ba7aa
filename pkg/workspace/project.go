package workspace

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/nulink/pkg/errors"
	"github.com/arthur-debert/nulink/pkg/types"
	"github.com/beevik/etree"
)

// Project is a parsed MSBuild project file
type Project struct {
	// Name is the file name without extension
	Name string
	// Path is the absolute path of the project file
	Path string
	// Doc is the parsed project XML
	Doc *etree.Document
}

// Dir returns the directory holding the project file
func (p Project) Dir() string {
	return filepath.Dir(p.Path)
}

// LoadProject reads and parses a single project file
func LoadProject(fs types.FS, path string) (Project, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return Project{}, errors.Wrapf(err, errors.ErrProjectLoad,
			"failed to read project %s", path).WithDetail("path", path)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return Project{}, errors.Wrapf(err, errors.ErrProjectLoad,
			"failed to parse project %s", path).WithDetail("path", path)
	}
	if doc.SelectElement("Project") == nil {
		return Project{}, errors.Newf(errors.ErrProjectLoad,
			"%s is not an MSBuild project: missing <Project> root", path).WithDetail("path", path)
	}

	base := filepath.Base(path)
	return Project{
		Name: strings.TrimSuffix(base, filepath.Ext(base)),
		Path: path,
		Doc:  doc,
	}, nil
}
