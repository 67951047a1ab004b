package model

import "strings"

// VersionInfo carries the declared project version together with the tag
// used for the release and the short form used to match build artifacts.
type VersionInfo struct {
	Full  string
	Tag   string
	Short string
}

// NormalizeVersion expands a declared version string. The tag is the version
// prefixed with "v". When the version carries a pre-release suffix, the
// short form collapses it to its first letter plus its digits (for example
// "1.2.0-alpha.3" becomes "1.2.0a3"), because build backends name artifacts
// with the compressed pre-release tag rather than the canonical version.
func NormalizeVersion(full string) VersionInfo {
	info := VersionInfo{
		Full:  full,
		Tag:   "v" + full,
		Short: full,
	}

	segments := strings.Split(full, "-")
	if len(segments) < 2 || segments[1] == "" {
		return info
	}

	var b strings.Builder
	b.WriteString(segments[0])
	b.WriteByte(segments[1][0])
	for _, c := range segments[1] {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	info.Short = b.String()

	return info
}
