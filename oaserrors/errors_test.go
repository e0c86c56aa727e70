package oaserrors

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name string
		err  *ParseError
		want string
	}{
		{
			name: "all fields",
			err: &ParseError{
				Path:    "/path/to/file.yaml",
				Line:    42,
				Column:  10,
				Message: "invalid syntax",
				Cause:   errors.New("underlying error"),
			},
			want: "parse error in /path/to/file.yaml at line 42, column 10: invalid syntax: underlying error",
		},
		{name: "minimal", err: &ParseError{}, want: "parse error"},
		{name: "path only", err: &ParseError{Path: "api.yaml"}, want: "parse error in api.yaml"},
		{name: "line only", err: &ParseError{Line: 10}, want: "parse error at line 10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}

	t.Run("unwrap and sentinel", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &ParseError{Cause: cause}
		assert.ErrorIs(t, err, cause)
		assert.ErrorIs(t, err, ErrParse)
		assert.NotErrorIs(t, err, ErrReference)
	})
}

func TestReferenceError(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		err := &ReferenceError{Ref: "#/components/schemas/Pet", Message: "target not found"}
		assert.Equal(t, "reference error: #/components/schemas/Pet: target not found", err.Error())
		assert.ErrorIs(t, err, ErrReference)
		assert.NotErrorIs(t, err, ErrCircularReference)
		assert.NotErrorIs(t, err, ErrPathTraversal)
	})

	t.Run("circular with chain", func(t *testing.T) {
		err := &ReferenceError{
			Ref:        "#/components/schemas/A",
			IsCircular: true,
			Chain:      []string{"#/components/schemas/A", "#/components/schemas/B"},
		}
		assert.Equal(t, "circular reference: #/components/schemas/A (#/components/schemas/A -> #/components/schemas/B)", err.Error())
		assert.ErrorIs(t, err, ErrReference)
		assert.ErrorIs(t, err, ErrCircularReference)
	})

	t.Run("path traversal", func(t *testing.T) {
		err := &ReferenceError{Ref: "../../etc/passwd", IsPathTraversal: true}
		assert.Equal(t, "path traversal detected: ../../etc/passwd", err.Error())
		assert.ErrorIs(t, err, ErrPathTraversal)
	})

	t.Run("depth limit cause", func(t *testing.T) {
		err := &ReferenceError{
			Ref:   "#/a",
			Cause: &ResourceLimitError{ResourceType: "ref_depth", Limit: 64},
		}
		assert.ErrorIs(t, err, ErrReference)
		assert.ErrorIs(t, err, ErrResourceLimit)

		var limitErr *ResourceLimitError
		require.ErrorAs(t, err, &limitErr)
		assert.Equal(t, int64(64), limitErr.Limit)
	})
}

func TestResourceLimitError(t *testing.T) {
	tests := []struct {
		name string
		err  *ResourceLimitError
		want string
	}{
		{name: "minimal", err: &ResourceLimitError{}, want: "resource limit exceeded"},
		{
			name: "limit and actual",
			err:  &ResourceLimitError{ResourceType: "ref_depth", Limit: 64, Actual: 65},
			want: "resource limit exceeded: ref_depth (limit: 64, actual: 65)",
		},
		{
			name: "message",
			err:  &ResourceLimitError{ResourceType: "nesting_depth", Limit: 512, Message: "tree too deep"},
			want: "resource limit exceeded: nesting_depth (limit: 512): tree too deep",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrResourceLimit)
		})
	}
}

func TestVersionError(t *testing.T) {
	err := &VersionError{Declared: "2.0", Known: []string{"3.1"}}
	assert.Equal(t, `unsupported version "2.0" (supported: 3.1)`, err.Error())
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	err = &VersionError{Message: "openapi field is not a string"}
	assert.Equal(t, "unsupported version: openapi field is not a string", err.Error())
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Option: "max-ref-depth", Value: -1, Message: "must be positive"}
	assert.Equal(t, "configuration error for max-ref-depth (value: -1): must be positive", err.Error())
	assert.ErrorIs(t, err, ErrConfig)

	cause := errors.New("boom")
	wrapped := &ConfigError{Cause: cause}
	assert.Equal(t, "configuration error: boom", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}

func TestErrorChaining(t *testing.T) {
	inner := &ReferenceError{Ref: "other.yaml", RefType: "file", Cause: os.ErrNotExist}
	outer := fmt.Errorf("resolving document: %w", inner)

	assert.ErrorIs(t, outer, ErrReference)
	assert.ErrorIs(t, outer, os.ErrNotExist)

	var refErr *ReferenceError
	require.ErrorAs(t, outer, &refErr)
	assert.Equal(t, "file", refErr.RefType)
}
