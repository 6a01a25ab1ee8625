// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes the swagfix migration as an MCP tool over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/swagfix/swagfix"
)

const serverInstructions = `swagfix MCP server — migrates Swagger 2.0 documents to the OpenAPI 3.0 component layout.

The migrate tool relocates the top-level definitions map to components.schemas and rewrites every $ref that points into the old location. Full mode additionally relocates securityDefinitions, parameters, and responses, and replaces the swagger version marker with openapi 3.0.3.

Configuration: defaults are configurable via SWAGFIX_* environment variables set in your MCP client config.

Key settings:
- SWAGFIX_CHANGE_LIMIT (default: 100) — default number of changes returned per call
- SWAGFIX_MAX_LIMIT (default: 1000) — hard cap on requested change limits
- SWAGFIX_FULL_DEFAULT (default: false) — enable full mode by default`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "swagfix", Version: swagfix.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "migrate",
		Description: "Migrate a Swagger 2.0 document to the OpenAPI 3.0 component layout: definitions moves to components.schemas and every #/definitions/ $ref is rewritten. Provide the document by file path or inline content. Use dry_run=true to preview changes without writing. Use full=true to also relocate securityDefinitions, parameters, and responses and stamp the openapi version. Use output to write the result to a file, or include_document=true to return it inline. Full-mode default is configurable via SWAGFIX_FULL_DEFAULT.",
	}, handleMigrate)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ChangeLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ChangeLimit
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
