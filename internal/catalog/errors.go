package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTopic is matched by every *UnknownTopicError.
var ErrUnknownTopic = errors.New("unknown topic")

// UnknownTopicError reports a lookup of a topic id the catalog does not define.
type UnknownTopicError struct {
	ID string
}

func (e *UnknownTopicError) Error() string {
	return fmt.Sprintf("unknown topic %q", e.ID)
}

func (e *UnknownTopicError) Unwrap() error { return ErrUnknownTopic }

// ValidationError collects every problem found while loading a catalog.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("catalog validation failed:\n  %s", strings.Join(e.Problems, "\n  "))
}
