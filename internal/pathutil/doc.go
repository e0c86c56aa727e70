// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

// Package pathutil provides JSON Pointer (RFC 6901) helpers used while
// walking OpenAPI documents.
//
// Pointers are plain strings. The document root is the empty pointer "",
// and every reference token is escaped ("~" becomes "~0", "/" becomes "~1"):
//
//	pathutil.Append("", "paths", "/pets", "get") // "/paths/~1pets/get"
//	pathutil.AppendIndex("/servers", 0)          // "/servers/0"
//
// [PathBuilder] offers push/pop construction for recursive traversal where
// the pointer is only materialized when needed:
//
//	path := pathutil.Get()
//	defer pathutil.Put(path)
//
//	path.Push("components")
//	path.Push("schemas")
//	// ... recurse ...
//	path.Pop()
//	path.Pop()
//
// # Output Path Sanitization
//
// [SanitizeOutputPath] validates and cleans output file paths for security.
// It resolves ".." components and rejects symlinks and directories.
package pathutil
