package git

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pubrel/pubrel/pkg/domain/model"
)

// ConfigRelPath is where the repository configuration sits below the
// project root.
const ConfigRelPath = ".git/config"

var remoteHeaderRe = regexp.MustCompile(`^\[remote "([a-z]*)"\]$`)

type scanState int

const (
	stateLookingForHeader scanState = iota
	stateInsideSection
)

// ParseRemotes scans git configuration lines for remote sections and
// returns the declared remotes in encounter order. Within a section the
// last non-empty `url = ...` assignment wins; a section without a url is
// skipped. Unrecognized or malformed section headers are ignored, they only
// terminate the section being scanned.
func ParseRemotes(lines []string) []model.Remote {
	var remotes []model.Remote

	state := stateLookingForHeader
	var name, url string

	flush := func() {
		if url != "" {
			remotes = append(remotes, model.NewRemote(name, url))
		}
	}

	for _, line := range lines {
		if strings.HasPrefix(line, "[") {
			if state == stateInsideSection {
				flush()
				state = stateLookingForHeader
			}
			if m := remoteHeaderRe.FindStringSubmatch(line); m != nil {
				state = stateInsideSection
				name, url = m[1], ""
			}
			continue
		}

		if state != stateInsideSection {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "url = ") {
			continue
		}
		if v := strings.TrimSpace(trimmed[strings.LastIndex(trimmed, "=")+1:]); v != "" {
			url = v
		}
	}
	if state == stateInsideSection {
		flush()
	}

	return remotes
}

// RemoteSource reads remotes from the repository configuration below a
// project root.
type RemoteSource struct {
	root string
}

// NewRemoteSource creates a RemoteSource for the repository rooted at root.
func NewRemoteSource(root string) *RemoteSource {
	return &RemoteSource{root: root}
}

// Remotes parses the remotes out of .git/config. A missing configuration
// file yields an error wrapping model.ErrNotARepository.
func (s *RemoteSource) Remotes() ([]model.Remote, error) {
	path := filepath.Join(s.root, ConfigRelPath)

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(model.ErrNotARepository, "no git configuration found", goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read git configuration", goerr.V("path", path))
	}

	normalized := strings.ReplaceAll(string(raw), "\r\n", "\n")
	return ParseRemotes(strings.Split(normalized, "\n")), nil
}
