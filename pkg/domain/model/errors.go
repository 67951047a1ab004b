package model

import "errors"

// ErrNotARepository indicates the project directory carries no git
// configuration to read.
var ErrNotARepository = errors.New("not a git repository")
