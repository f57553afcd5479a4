package persistence

import "errors"

var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint was violated.
	ErrDuplicate = errors.New("duplicate record")

	// ErrForeignKeyViolation indicates a referenced row does not exist.
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrConstraintViolation indicates some other database constraint
	// rejected the write.
	ErrConstraintViolation = errors.New("constraint violation")
)
