package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ideaforge/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for ideaforge resources.
	uriScheme = "ideaforge://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "ideas",
		Name:        "ideas",
		Description: "Summary of every idea in the database",
		MIMEType:    "application/json",
	}, s.handleIdeasResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "ideas/{ideaId}",
		Name:        "idea",
		Description: "One idea record with its content, equations and keywords",
		MIMEType:    "application/json",
	}, s.handleIdeaResource)
}

// handleIdeasResource lists stored ideas.
func (s *Server) handleIdeasResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Ideas == nil {
		return jsonResource(req.Params.URI, "[]"), nil
	}

	svc, err := s.ideas(ctx)
	if err != nil {
		return nil, err
	}
	ideas, err := svc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing ideas: %w", err)
	}

	type ideaInfo struct {
		ID         string  `json:"id"`
		Title      string  `json:"title"`
		Category   string  `json:"category"`
		Date       string  `json:"date"`
		Importance float64 `json:"importance_score"`
		URI        string  `json:"uri"`
	}

	infos := make([]ideaInfo, len(ideas))
	for i, idea := range ideas {
		infos[i] = ideaInfo{
			ID:         idea.ID,
			Title:      idea.Title,
			Category:   idea.Category,
			Date:       idea.Date,
			Importance: idea.ImportanceScore,
			URI:        uriScheme + "ideas/" + idea.ID,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling ideas: %w", err)
	}
	return jsonResource(req.Params.URI, string(data)), nil
}

// handleIdeaResource returns one idea record.
func (s *Server) handleIdeaResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Ideas == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// ideaforge://ideas/{ideaId}
	id := extractIdeaID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	svc, err := s.ideas(ctx)
	if err != nil {
		return nil, err
	}
	idea, err := svc.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting idea: %w", err)
	}

	data, err := json.MarshalIndent(idea, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling idea: %w", err)
	}
	return jsonResource(req.Params.URI, string(data)), nil
}

func jsonResource(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractIdeaID extracts the idea ID from a URI like ideaforge://ideas/{ideaId}.
func extractIdeaID(uri string) string {
	const prefix = uriScheme + "ideas/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
