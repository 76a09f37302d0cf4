package mcp

import (
	"github.com/custodia-labs/ideaforge/internal/core/ports/driven"
	"github.com/custodia-labs/ideaforge/internal/core/ports/driving"
)

// Ports aggregates the interfaces the MCP server calls.
type Ports struct {
	// Analysis runs line-level analyses.
	Analysis driving.AnalysisService

	// Ideas serves the idea database. Optional.
	Ideas driving.IdeaService

	// Loader reads documents named by path. Optional; without it tools
	// accept inline text only.
	Loader driven.DocumentLoader
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	return nil
}
