package snapshots

import "fmt"

// CacheCorruptError means a snapshot exists but cannot be used. Callers treat it as a miss.
type CacheCorruptError struct {
	Path   string
	Reason string
	Err    error
}

func (e *CacheCorruptError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("corrupt cache %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("corrupt cache %s: %s", e.Path, e.Reason)
}

func (e *CacheCorruptError) Unwrap() error {
	return e.Err
}

// CacheWriteError means a fresh payload could not be persisted.
type CacheWriteError struct {
	Path string
	Err  error
}

func (e *CacheWriteError) Error() string {
	return fmt.Sprintf("write cache %s: %v", e.Path, e.Err)
}

func (e *CacheWriteError) Unwrap() error {
	return e.Err
}
