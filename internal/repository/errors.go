package repository

import "errors"

// ErrStoreUnavailable is returned by Ping when the backing store cannot be reached.
var ErrStoreUnavailable = errors.New("store unavailable")
