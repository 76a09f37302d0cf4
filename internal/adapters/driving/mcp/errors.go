// Package mcp provides an MCP (Model Context Protocol) server adapter for ideaforge.
// It lets AI assistants run the notebook analyses and read the idea database.
package mcp

import "errors"

// ErrMissingAnalysisService is returned when the analysis service is not provided.
var ErrMissingAnalysisService = errors.New("mcp: analysis service is required")

// ErrNoDocument is returned when a tool call names neither a path nor text.
var ErrNoDocument = errors.New("mcp: either path or text is required")

// ErrIdeasUnavailable is returned by idea tools when no idea service is configured.
var ErrIdeasUnavailable = errors.New("mcp: idea database is not configured")
