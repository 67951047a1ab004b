package model

// Credentials authenticate requests against the hosting API. The token is
// tagged so that masq strips it from any log output.
type Credentials struct {
	Username string
	Token    string `masq:"secret"`
}
