package repository

import "errors"

// ErrDuplicate reports a unique-key collision. Callers recover it into a
// structured outcome; every other storage error propagates as a hard failure.
var ErrDuplicate = errors.New("duplicate record")
