package validate

import "errors"

var errInvalidRef = errors.New("task id must not contain whitespace")
