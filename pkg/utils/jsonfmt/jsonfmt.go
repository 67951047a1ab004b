package jsonfmt

import (
	"bytes"
	"encoding/json"
)

// Pretty renders a raw API response body as indented JSON for human
// display. Input that is not valid JSON is returned untouched.
func Pretty(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(raw), "", "    "); err != nil {
		return string(raw)
	}
	return buf.String()
}
