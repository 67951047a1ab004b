package poetry

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// metadata is the subset of pyproject.toml the release flow needs. Poetry
// keeps its fields under [tool.poetry]; projects on PEP 621 metadata declare
// the same fields under [project].
type metadata struct {
	Project struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name    string `toml:"name"`
			Version string `toml:"version"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// Project is a Poetry-managed project rooted at a directory containing
// pyproject.toml, with build outputs under a dist directory.
type Project struct {
	root    string
	distDir string
	name    string
	version string
}

// Load reads pyproject.toml below root. distDir is resolved relative to
// root unless absolute. A declared [tool.poetry] table takes precedence
// over [project].
func Load(root, distDir string) (*Project, error) {
	path := filepath.Join(root, "pyproject.toml")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read pyproject.toml", goerr.V("path", path))
	}

	var meta metadata
	if err := toml.Unmarshal(raw, &meta); err != nil {
		return nil, goerr.Wrap(err, "failed to parse pyproject.toml", goerr.V("path", path))
	}

	name, version := meta.Tool.Poetry.Name, meta.Tool.Poetry.Version
	if name == "" && version == "" {
		name, version = meta.Project.Name, meta.Project.Version
	}

	if !filepath.IsAbs(distDir) {
		distDir = filepath.Join(root, distDir)
	}

	return &Project{root: root, distDir: distDir, name: name, version: version}, nil
}

// Name returns the declared package name.
func (p *Project) Name() string { return p.name }

// Version returns the declared version, empty when the field is missing.
func (p *Project) Version() string { return p.version }

var separatorRun = regexp.MustCompile(`[-_.]+`)

// EscapeName normalizes a package name the way the build backend does when
// composing wheel filenames: lowercased, with runs of "-", "_" and "."
// collapsed into a single underscore. This mirrors the wheel binary
// distribution naming contract, so locally built wheels line up with the
// patterns below.
func EscapeName(name string) string {
	return separatorRun.ReplaceAllString(strings.ToLower(name), "_")
}

// Artifacts returns the build outputs under the dist directory that match
// shortVersion: wheels named with the escaped package name and the source
// archive named with the plain package name. The merged set is sorted so
// the upload order is deterministic across runs.
func (p *Project) Artifacts(shortVersion string) ([]string, error) {
	wheelPattern := filepath.Join(p.distDir, fmt.Sprintf("%s-%s-*.whl", EscapeName(p.name), shortVersion))
	wheels, err := filepath.Glob(wheelPattern)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to glob wheel artifacts", goerr.V("pattern", wheelPattern))
	}

	sdistPattern := filepath.Join(p.distDir, fmt.Sprintf("%s-%s.tar.gz", p.name, shortVersion))
	sdists, err := filepath.Glob(sdistPattern)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to glob sdist artifacts", goerr.V("pattern", sdistPattern))
	}

	files := append(wheels, sdists...)
	sort.Strings(files)
	return files, nil
}
