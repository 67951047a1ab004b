package model

// Release represents a release record created on the hosting side. It lives
// only for the duration of a single run: created once, then used as the
// target for asset uploads.
type Release struct {
	// ID is the hosting-side identifier of the release
	ID int64
	// URL is the API self URL of the release
	URL string
	// UploadURL is the literal asset upload endpoint, with the URI template
	// suffix already stripped
	UploadURL string
}
