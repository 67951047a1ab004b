package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pubrel/pubrel/pkg/domain/model"
	"github.com/pubrel/pubrel/pkg/utils/jsonfmt"
)

// DefaultAPIBaseURL is the GitHub REST API endpoint used unless overridden.
const DefaultAPIBaseURL = "https://api.github.com"

// Release creation is a small JSON exchange; asset payloads may be large,
// so uploads get a longer deadline.
const (
	createTimeout = 60 * time.Second
	uploadTimeout = 120 * time.Second
)

const contentTypeBinary = "application/octet-stream"

// archiveContentTypes maps archive extensions to the media type sent as a
// raw request body. GitHub corrupts these payloads when they are wrapped in
// multipart form data, while plain binary assets must be wrapped; the split
// is an empirical platform quirk and both branches have to stay as they are.
var archiveContentTypes = map[string]string{
	".gz": "application/gzip",
}

// Client talks to the GitHub REST API with basic auth. It implements
// interfaces.ReleaseHostingClient.
type Client struct {
	baseURL      string
	createClient *http.Client
	uploadClient *http.Client
	progress     bool
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL, mainly for tests and GitHub
// Enterprise deployments.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithProgress enables a byte-level progress bar while asset payloads are
// being sent.
func WithProgress(enabled bool) Option {
	return func(c *Client) {
		c.progress = enabled
	}
}

// New creates a GitHub API client.
func New(opts ...Option) *Client {
	client := &Client{
		baseURL:      DefaultAPIBaseURL,
		createClient: &http.Client{Timeout: createTimeout},
		uploadClient: &http.Client{Timeout: uploadTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type createReleaseRequest struct {
	TagName              string `json:"tag_name"`
	TargetCommitish      string `json:"target_commitish"`
	GenerateReleaseNotes bool   `json:"generate_release_notes"`
	Prerelease           bool   `json:"prerelease"`
}

type createReleaseResponse struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	UploadURL string `json:"upload_url"`
}

// CreateRelease creates a release for tag on the remote repository,
// targeting the default branch and requesting auto-generated notes. The tag
// is created server-side when it does not exist yet. Any non-201 response
// is returned as an error carrying the status code and the pretty-printed
// response body.
func (c *Client) CreateRelease(ctx context.Context, remote model.Remote, tag string, creds model.Credentials, preRelease bool) (*model.Release, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases", c.baseURL, remote.RepoOwner, remote.RepoName)

	body, err := json.Marshal(createReleaseRequest{
		TagName:              tag,
		TargetCommitish:      "main",
		GenerateReleaseNotes: true,
		Prerelease:           preRelease,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode release request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build release request", goerr.V("url", endpoint))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/vnd.github+json")
	req.SetBasicAuth(creds.Username, creds.Token)

	resp, err := c.createClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to request release creation", goerr.V("url", endpoint))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read release response")
	}

	if resp.StatusCode != http.StatusCreated {
		return nil, goerr.New(requestFailure(resp.StatusCode, raw),
			goerr.V("status", resp.StatusCode),
			goerr.V("url", endpoint),
		)
	}

	var parsed createReleaseResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, goerr.Wrap(err, "failed to decode release response")
	}

	uploadURL := parsed.UploadURL
	if i := strings.Index(uploadURL, "{"); i >= 0 {
		uploadURL = uploadURL[:i]
	}

	return &model.Release{
		ID:        parsed.ID,
		URL:       parsed.URL,
		UploadURL: uploadURL,
	}, nil
}

// UploadAsset attaches the file at path to release. Archive-typed assets go
// out as a raw body with an explicit Content-Type; everything else is sent
// as multipart form data under a field named "file" (see
// archiveContentTypes). Failures carry the status code, the pretty-printed
// response body and the outgoing request headers.
func (c *Client) UploadAsset(ctx context.Context, path string, release *model.Release, creds model.Credentials) error {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return goerr.New("Provided asset file doesn't exist or isn't a file.", goerr.V("path", path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return goerr.Wrap(err, "failed to read asset file", goerr.V("path", path))
	}

	contentType := contentTypeBinary
	if t, ok := archiveContentTypes[filepath.Ext(path)]; ok {
		contentType = t
	}

	payload := data
	if contentType == contentTypeBinary {
		payload, contentType, err = wrapMultipart(data, contentType)
		if err != nil {
			return goerr.Wrap(err, "failed to build multipart body", goerr.V("path", path))
		}
	}

	var body io.Reader = bytes.NewReader(payload)
	if c.progress {
		bar := pb.Full.Start64(int64(len(payload)))
		defer bar.Finish()
		body = bar.NewProxyReader(body)
	}

	endpoint := release.UploadURL + "?name=" + url.QueryEscape(filepath.Base(path))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return goerr.Wrap(err, "failed to build upload request", goerr.V("url", endpoint))
	}
	req.ContentLength = int64(len(payload))
	req.Header.Set("Content-Type", contentType)
	req.SetBasicAuth(creds.Username, creds.Token)

	resp, err := c.uploadClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to request asset upload", goerr.V("url", endpoint))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return goerr.Wrap(err, "failed to read upload response")
	}

	if resp.StatusCode != http.StatusCreated {
		return goerr.New(requestFailure(resp.StatusCode, raw)+"\n"+formatHeaders(req.Header),
			goerr.V("status", resp.StatusCode),
			goerr.V("asset", filepath.Base(path)),
		)
	}

	return nil
}

// wrapMultipart encodes data as multipart form data under a field named
// "file". Both the field name and the filename are literally "file".
func wrapMultipart(data []byte, contentType string) ([]byte, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": []string{`form-data; name="file"; filename="file"`},
		"Content-Type":        []string{contentType},
	})
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), mw.FormDataContentType(), nil
}

func requestFailure(status int, body []byte) string {
	return fmt.Sprintf("Request failed with status code %d:\n%s", status, jsonfmt.Pretty(body))
}

// formatHeaders renders request headers for failure diagnostics. The
// Authorization value is masked; credentials never reach any output.
func formatHeaders(header http.Header) string {
	redacted := header.Clone()
	if redacted.Get("Authorization") != "" {
		redacted.Set("Authorization", "Basic [REDACTED]")
	}

	var b strings.Builder
	for _, key := range slices.Sorted(maps.Keys(redacted)) {
		fmt.Fprintf(&b, "%s: %s\n", key, strings.Join(redacted[key], ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}
