package utils

import "errors"

// ErrUserInitiatedExit is returned when the user asks to quit, either by
// interrupting or by closing the input.
var ErrUserInitiatedExit = errors.New("user initiated exit")
