package models

import "fmt"

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrMetadata ErrorType = iota
	ErrStage
	ErrArchive
	ErrIndexGen
	ErrSigning
	ErrFileOp
	ErrInvalidConfig
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrMetadata:
		return "Metadata"
	case ErrStage:
		return "Stage"
	case ErrArchive:
		return "Archive"
	case ErrIndexGen:
		return "IndexGen"
	case ErrSigning:
		return "Signing"
	case ErrFileOp:
		return "FileOp"
	case ErrInvalidConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// BuildError represents an error during a package build
type BuildError struct {
	Type ErrorType
	Path string
	Err  error
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *BuildError) Unwrap() error {
	return e.Err
}
