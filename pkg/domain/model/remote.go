package model

import "strings"

// Remote is a named git remote read from the repository configuration,
// together with the repository owner and name derived from its URL.
type Remote struct {
	Name      string
	URL       string
	RepoOwner string
	RepoName  string
}

// NewRemote derives the repository owner and name from url. SSH-style URLs
// (git@host:owner/repo) are split on the colon, HTTPS-style URLs take the
// last two path segments. A trailing ".git" is stripped from the repository
// name.
func NewRemote(name, url string) Remote {
	var owner, repo string
	if strings.HasPrefix(url, "git@") {
		path := url[strings.LastIndex(url, ":")+1:]
		segments := strings.Split(path, "/")
		owner = segments[0]
		if len(segments) > 1 {
			repo = segments[1]
		}
	} else {
		segments := strings.Split(url, "/")
		if len(segments) >= 2 {
			owner = segments[len(segments)-2]
			repo = segments[len(segments)-1]
		}
	}

	return Remote{
		Name:      name,
		URL:       url,
		RepoOwner: owner,
		RepoName:  strings.TrimSuffix(repo, ".git"),
	}
}

// ReleaseTagURL returns the browser-facing page of the release for tag.
func (r Remote) ReleaseTagURL(tag string) string {
	return "https://github.com/" + r.RepoOwner + "/" + r.RepoName + "/releases/tag/" + tag
}
