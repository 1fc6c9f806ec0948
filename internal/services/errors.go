package services

import "errors"

var (
	// ErrInvalidTarget means a reaction named both a post and a comment, or neither.
	ErrInvalidTarget = errors.New("a reaction must target either a post or a comment, not both")

	// ErrMalformedReference means a post reference is not a well-formed object ID.
	ErrMalformedReference = errors.New("malformed post reference")

	// ErrCrossPostReply means a reply names a parent comment from a different post.
	ErrCrossPostReply = errors.New("parent comment belongs to a different post")

	// ErrForbidden means the caller is neither the owner nor a moderator.
	ErrForbidden = errors.New("not allowed")

	// ErrNotFound means the referenced entity is absent or not visible to the caller.
	ErrNotFound = errors.New("not found")
)
