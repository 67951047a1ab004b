package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/pubrel/pubrel/pkg/domain/model"
)

func TestNewRemote(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		owner string
		repo  string
	}{
		{
			name:  "SSH URL with .git suffix",
			url:   "git@github.com:octocat/hello.git",
			owner: "octocat",
			repo:  "hello",
		},
		{
			name:  "SSH URL without suffix",
			url:   "git@github.com:octocat/hello",
			owner: "octocat",
			repo:  "hello",
		},
		{
			name:  "HTTPS URL with .git suffix",
			url:   "https://github.com/octocat/hello.git",
			owner: "octocat",
			repo:  "hello",
		},
		{
			name:  "HTTPS URL without suffix",
			url:   "https://github.com/octocat/hello",
			owner: "octocat",
			repo:  "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := model.NewRemote("origin", tt.url)
			gt.Value(t, remote.Name).Equal("origin")
			gt.Value(t, remote.URL).Equal(tt.url)
			gt.Value(t, remote.RepoOwner).Equal(tt.owner)
			gt.Value(t, remote.RepoName).Equal(tt.repo)
		})
	}
}

func TestRemote_ReleaseTagURL(t *testing.T) {
	remote := model.NewRemote("origin", "git@github.com:octocat/hello.git")
	gt.Value(t, remote.ReleaseTagURL("v1.0.0")).Equal("https://github.com/octocat/hello/releases/tag/v1.0.0")
}
