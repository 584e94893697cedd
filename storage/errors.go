package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Get when no entry is stored at the
	// requested coordinates.
	ErrNotFound = errors.New("entry not found")

	// ErrOutOfRange matches any coordinate-range violation via errors.Is.
	ErrOutOfRange = errors.New("coordinate out of range")

	// ErrInvalidArgument matches any malformed-argument error (inverted
	// region bounds, negative radius) via errors.Is.
	ErrInvalidArgument = errors.New("invalid argument")
)

// CoordinateError reports a coordinate argument outside [0, Max).
type CoordinateError struct {
	Arg   string // argument name, e.g. "x" or "centerY"
	Value int
	Max   int
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("%s out of range: %d not in [0, %d)", e.Arg, e.Value, e.Max)
}

func (e *CoordinateError) Is(target error) bool { return target == ErrOutOfRange }

// RegionError reports region bounds with a minimum exceeding its maximum.
type RegionError struct {
	MinX, MinY, MaxX, MaxY int
}

func (e *RegionError) Error() string {
	return fmt.Sprintf("invalid region: min (%d,%d) exceeds max (%d,%d)", e.MinX, e.MinY, e.MaxX, e.MaxY)
}

func (e *RegionError) Is(target error) bool { return target == ErrInvalidArgument }

// RadiusError reports a negative radius.
type RadiusError struct {
	Radius int
}

func (e *RadiusError) Error() string {
	return fmt.Sprintf("invalid radius: %d is negative", e.Radius)
}

func (e *RadiusError) Is(target error) bool { return target == ErrInvalidArgument }
