package github_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/pubrel/pubrel/pkg/domain/model"
	"github.com/pubrel/pubrel/pkg/infra/github"
)

var testCreds = model.Credentials{Username: "octocat", Token: "s3cr3t"}

func testRemote() model.Remote {
	return model.NewRemote("origin", "git@github.com:acme/widget.git")
}

func TestClient_CreateRelease(t *testing.T) {
	var gotBody map[string]any
	var gotPath, gotUser, gotPass string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{
			"id": 42,
			"url": "%s/repos/acme/widget/releases/42",
			"upload_url": "%s/repos/acme/widget/releases/42/assets{?name,label}"
		}`, srvURL(r), srvURL(r))
	}))
	defer srv.Close()

	client := github.New(github.WithBaseURL(srv.URL))
	release, err := client.CreateRelease(context.Background(), testRemote(), "v1.0.0", testCreds, true)
	gt.NoError(t, err)

	gt.Value(t, gotPath).Equal("/repos/acme/widget/releases")
	gt.Value(t, gotUser).Equal("octocat")
	gt.Value(t, gotPass).Equal("s3cr3t")
	gt.Value(t, gotBody["tag_name"]).Equal("v1.0.0")
	gt.Value(t, gotBody["target_commitish"]).Equal("main")
	gt.Value(t, gotBody["generate_release_notes"]).Equal(true)
	gt.Value(t, gotBody["prerelease"]).Equal(true)

	gt.Value(t, release.ID).Equal(int64(42))
	// The URI template suffix must be gone.
	gt.Value(t, release.UploadURL).Equal(srv.URL + "/repos/acme/widget/releases/42/assets")
}

func TestClient_CreateRelease_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"message":"Validation Failed"}`)
	}))
	defer srv.Close()

	client := github.New(github.WithBaseURL(srv.URL))
	_, err := client.CreateRelease(context.Background(), testRemote(), "v1.0.0", testCreds, false)
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("422")
	gt.String(t, err.Error()).Contains("Validation Failed")
}

func writeAsset(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestClient_UploadAsset_Multipart(t *testing.T) {
	const content = "wheel bytes"

	var gotName, gotContentType, gotField string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotName = r.URL.Query().Get("name")
		gotContentType = r.Header.Get("Content-Type")

		gt.NoError(t, r.ParseMultipartForm(1<<20))
		file, _, err := r.FormFile("file")
		gt.NoError(t, err)
		defer file.Close()
		data, err := io.ReadAll(file)
		gt.NoError(t, err)
		gotField = string(data)

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":7}`)
	}))
	defer srv.Close()

	path := writeAsset(t, "mypkg-1.0.0-py3-none-any.whl", content)
	release := &model.Release{ID: 42, UploadURL: srv.URL + "/uploads/42"}

	client := github.New()
	gt.NoError(t, client.UploadAsset(context.Background(), path, release, testCreds))

	gt.Value(t, gotName).Equal("mypkg-1.0.0-py3-none-any.whl")
	gt.String(t, gotContentType).Contains("multipart/form-data")
	gt.Value(t, gotField).Equal(content)
}

func TestClient_UploadAsset_RawArchive(t *testing.T) {
	const content = "archive bytes"

	var gotContentType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		data, err := io.ReadAll(r.Body)
		gt.NoError(t, err)
		gotBody = string(data)

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":8}`)
	}))
	defer srv.Close()

	path := writeAsset(t, "mypkg-1.0.0.tar.gz", content)
	release := &model.Release{ID: 42, UploadURL: srv.URL + "/uploads/42"}

	client := github.New()
	gt.NoError(t, client.UploadAsset(context.Background(), path, release, testCreds))

	// Archives go out as the raw payload, not wrapped in multipart.
	gt.Value(t, gotContentType).Equal("application/gzip")
	gt.Value(t, gotBody).Equal(content)
}

func TestClient_UploadAsset_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"message":"boom"}`)
	}))
	defer srv.Close()

	path := writeAsset(t, "mypkg-1.0.0.tar.gz", "archive bytes")
	release := &model.Release{ID: 42, UploadURL: srv.URL + "/uploads/42"}

	client := github.New()
	err := client.UploadAsset(context.Background(), path, release, testCreds)
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("500")
	gt.String(t, err.Error()).Contains("Content-Type")
	gt.String(t, err.Error()).Contains("[REDACTED]")
	if strings.Contains(err.Error(), testCreds.Token) {
		t.Error("upload failure detail leaked the token")
	}
}

func TestClient_UploadAsset_MissingFile(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	release := &model.Release{ID: 42, UploadURL: srv.URL + "/uploads/42"}

	client := github.New()
	err := client.UploadAsset(context.Background(), filepath.Join(t.TempDir(), "missing.whl"), release, testCreds)
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("doesn't exist")
	gt.Number(t, requests).Equal(0)
}

func srvURL(r *http.Request) string {
	return "http://" + r.Host
}
