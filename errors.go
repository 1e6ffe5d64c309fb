package mdblog

import "errors"

// Sentinel errors for library operations.
var (
	ErrPostNotFound  = errors.New("post not found")
	ErrListPosts     = errors.New("failed to list posts")
	ErrRenderPost    = errors.New("failed to render post")
	ErrInvalidOption = errors.New("invalid option")
)
