// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidArgument marks a query the caller must fix: N <= 0, a
	// non-numeric user ID or an inverted year range.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound marks a reference title or user absent from the snapshot.
	ErrNotFound = errors.New("not found")

	// ErrNotReady is returned before the first snapshot is loaded.
	ErrNotReady = errors.New("no snapshot loaded")

	// ErrUnknownStrategy is returned for a strategy with no registered recommender.
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// InvalidArgumentf wraps ErrInvalidArgument with a formatted message.
func InvalidArgumentf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// IsInvalidArgument reports whether err is an invalid-argument condition.
func IsInvalidArgument(err error) bool { return errors.Is(err, ErrInvalidArgument) }

// IsNotFound reports whether err is a not-found condition.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// ParseUserID parses a decimal user identifier.
func ParseUserID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, InvalidArgumentf("user id %q is not numeric", s)
	}
	return id, nil
}
