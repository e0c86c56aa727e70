// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import (
	"strconv"
	"strings"

	"github.com/go-openapi/jsonpointer"
)

// Root is the JSON Pointer addressing the whole document.
const Root = ""

// Escape encodes a single reference token.
func Escape(token string) string {
	return jsonpointer.Escape(token)
}

// Unescape decodes a single reference token.
func Unescape(token string) string {
	return jsonpointer.Unescape(token)
}

// Append returns ptr extended by the given unescaped tokens.
func Append(ptr string, tokens ...string) string {
	if len(tokens) == 0 {
		return ptr
	}
	var b strings.Builder
	b.Grow(len(ptr) + 8*len(tokens))
	b.WriteString(ptr)
	for _, tok := range tokens {
		b.WriteByte('/')
		b.WriteString(Escape(tok))
	}
	return b.String()
}

// AppendIndex returns ptr extended by an array index token.
func AppendIndex(ptr string, i int) string {
	return ptr + "/" + strconv.Itoa(i)
}

// Split returns the unescaped reference tokens of ptr.
// A leading "#" (URI fragment form) is accepted and ignored.
func Split(ptr string) []string {
	ptr = strings.TrimPrefix(ptr, "#")
	if ptr == "" {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(ptr, "/"), "/")
	for i, p := range parts {
		parts[i] = Unescape(p)
	}
	return parts
}
