// Package navigator resolves dot-delimited field paths against a parsed
// JSON value. Only object-field traversal is supported: array indexing
// and wildcard syntax are deliberately out of scope.
package navigator

import (
	"strings"

	"github.com/mcncl/jsonpick/internal/errors"
	"github.com/mcncl/jsonpick/internal/models"
)

// MissingPolicy decides what a lookup does when a segment does not
// resolve.
type MissingPolicy int

const (
	// MissingError reports a typed PathNotFoundError. This is the
	// default: callers can tell "found a null" apart from "path does
	// not exist".
	MissingError MissingPolicy = iota
	// MissingNull yields the JSON null value instead, jq-style.
	MissingNull
)

// Navigator resolves queries against a root Value.
type Navigator struct {
	missing MissingPolicy
}

// NewNavigator creates a Navigator with the default missing-path policy.
func NewNavigator() *Navigator {
	return &Navigator{missing: MissingError}
}

// NewNavigatorWithPolicy creates a Navigator with an explicit
// missing-path policy.
func NewNavigatorWithPolicy(policy MissingPolicy) *Navigator {
	return &Navigator{missing: policy}
}

// SplitQuery splits a query into its path segments. An empty query
// means identity navigation and yields no segments; any empty segment
// in a non-empty query (leading, trailing, or doubled dot) is a
// malformed query.
func SplitQuery(query string) ([]string, error) {
	if query == "" {
		return nil, nil
	}
	segments := strings.Split(query, ".")
	for _, segment := range segments {
		if segment == "" {
			return nil, errors.NewQueryError(
				"query contains an empty path segment",
				errors.ErrMalformedQuery,
			)
		}
	}
	return segments, nil
}

// Navigate resolves query against root by repeated object-field
// lookups and returns the addressed sub-value. The result is a
// reference into root's tree; root must stay alive for as long as the
// result is used. Navigation never modifies the tree.
//
// An empty query returns root unchanged. A segment that does not name
// a field of an object at that point in the traversal (including any
// attempt to descend into an array or scalar) fails according to the
// missing-path policy.
func (n *Navigator) Navigate(root *models.Value, query string) (*models.Value, error) {
	segments, err := SplitQuery(query)
	if err != nil {
		return nil, err
	}

	current := root
	for i, segment := range segments {
		child, ok := current.Field(segment)
		if !ok {
			if n.missing == MissingNull {
				return models.NewNull(), nil
			}
			return nil, &errors.PathNotFoundError{
				Segment:   segment,
				PathSoFar: strings.Join(segments[:i], "."),
			}
		}
		current = child
	}
	return current, nil
}
