package console

import "errors"

// ErrAborted is returned when input ends before a prompt is answered
var ErrAborted = errors.New("input aborted")
