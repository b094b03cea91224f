package repository

import "errors"

// ErrNotFound is returned (wrapped with the entity kind) when a lookup
// matches no row. Callers test for it with errors.Is.
var ErrNotFound = errors.New("not found")
