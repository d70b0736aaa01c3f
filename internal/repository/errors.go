package repository

import "errors"

// ErrNotFound is returned by writes that matched no live row.
var ErrNotFound = errors.New("record not found")
