package db

import "errors"

var (
	// ErrInvalidArgument is returned when a table is built with a non-positive capacity.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrKeyNotFound is returned by Get and Delete for keys absent from the table.
	ErrKeyNotFound = errors.New("key not found")
	// ErrNotFound is returned by Bucket.Replace and Bucket.Delete when no pair matches.
	ErrNotFound = errors.New("pair not found")
)
