// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes profile validation as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/erraggy/oasprofile"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `oasprofile MCP server: checks OpenAPI 3.1 documents against a version profile (allowed keys, required keys, deprecated keywords, schema dialects).

Configuration: defaults come from OASPROFILE_* environment variables set in your MCP client config.

Key settings:
- OASPROFILE_LENIENT (default: false) reports profile violations as warnings
- OASPROFILE_NO_EXTERNAL_REFS (default: false) leaves file references unresolved
- OASPROFILE_MAX_REF_DEPTH (default: 64) bounds $ref chains
- OASPROFILE_RESULT_LIMIT (default: 100) is the default page size for findings
- OASPROFILE_CACHE_ENABLED (default: true) caches parsed documents per session

Inline content never resolves file references; pass a file path for multi-file documents.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasprofile", Version: oasprofile.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate an OpenAPI document against the profile its openapi version selects. Returns findings with JSON Pointer locations, stable codes, severities and remediation hints. Use lenient=true to downgrade profile violations to warnings. Use offset/limit to paginate through findings. Defaults are configurable via OASPROFILE_LENIENT, OASPROFILE_NO_EXTERNAL_REFS and OASPROFILE_MAX_REF_DEPTH env vars.",
	}, handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "profile",
		Description: "Describe a validation profile: its version, feature flags, and the allowed and required keys for each node kind. Omit version for the default profile. Set kind (e.g. Schema, Operation) to describe a single node kind.",
	}, handleProfile)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ResultLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ResultLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
