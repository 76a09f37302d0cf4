package mcp

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ideaforge/internal/analysis/related"
	"github.com/custodia-labs/ideaforge/internal/core/domain"
	"github.com/custodia-labs/ideaforge/internal/core/ports/driving"
)

// inlineURI names documents passed as text.
const inlineURI = "inline"

// FindDuplicatesInput is the input schema for the find_duplicates tool.
type FindDuplicatesInput struct {
	Path    string `json:"path,omitempty" jsonschema:"notebook file to analyse"`
	Text    string `json:"text,omitempty" jsonschema:"notebook text, used when path is empty"`
	Context bool   `json:"context,omitempty" jsonschema:"split duplicate groups into same-context clusters"`
}

// FindDuplicatesOutput is the output schema for the find_duplicates tool.
type FindDuplicatesOutput struct {
	Groups   []domain.DuplicateGroup   `json:"groups"`
	Contexts []domain.DuplicateContext `json:"contexts,omitempty"`
	Count    int                       `json:"count"`
}

// FindSimilarInput is the input schema for the find_similar tool.
type FindSimilarInput struct {
	Path      string  `json:"path,omitempty" jsonschema:"notebook file to analyse"`
	Text      string  `json:"text,omitempty" jsonschema:"notebook text, used when path is empty"`
	Threshold float64 `json:"threshold,omitempty" jsonschema:"similarity cut-off between 0 and 1 (default from settings)"`
	Mode      string  `json:"mode,omitempty" jsonschema:"greedy or transitive (default from settings)"`
	Blended   bool    `json:"blended,omitempty" jsonschema:"blend concept overlap into the score"`
}

// FindSimilarOutput is the output schema for the find_similar tool.
type FindSimilarOutput struct {
	Groups []domain.DuplicateGroup `json:"groups"`
	Count  int                     `json:"count"`
}

// SearchConceptInput is the input schema for the search_concept tool.
type SearchConceptInput struct {
	Path         string `json:"path,omitempty" jsonschema:"notebook file to search"`
	Text         string `json:"text,omitempty" jsonschema:"notebook text, used when path is empty"`
	Term         string `json:"term" jsonschema:"the term to look for, matched case-insensitively"`
	ContextLines int    `json:"context_lines,omitempty" jsonschema:"lines of context around each mention (default 2)"`
	Windowed     bool   `json:"windowed,omitempty" jsonschema:"merge mentions that share a context window"`
}

// SearchConceptOutput is the output schema for the search_concept tool.
type SearchConceptOutput struct {
	Hits    []domain.ConceptHit   `json:"hits,omitempty"`
	Windows []domain.ContextMatch `json:"windows,omitempty"`
	Count   int                   `json:"count"`
}

// RelatedConceptsInput is the input schema for the related_concepts tool.
type RelatedConceptsInput struct {
	Path  string   `json:"path,omitempty" jsonschema:"notebook file to analyse"`
	Text  string   `json:"text,omitempty" jsonschema:"notebook text, used when path is empty"`
	Terms []string `json:"terms,omitempty" jsonschema:"terms to relate (default: catalog concepts)"`
}

// ReconcileInput is the input schema for the reconcile_versions tool.
type ReconcileInput struct {
	IDs []string `json:"ids" jsonschema:"ids of stored ideas to compare as versions of one idea"`
}

// IntegrateInput is the input schema for the integrate_idea tool.
type IntegrateInput struct {
	Text string `json:"text" jsonschema:"the new idea text"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_duplicates",
		Description: "Find lines repeated verbatim in a notebook",
	}, s.handleFindDuplicates)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_similar",
		Description: "Find groups of near-identical lines in a notebook",
	}, s.handleFindSimilar)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_concept",
		Description: "Show every mention of a term with surrounding lines",
	}, s.handleSearchConcept)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "related_concepts",
		Description: "Find concepts mentioned together inside one context window",
	}, s.handleRelatedConcepts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "reconcile_versions",
		Description: "Rank stored ideas as versions of one idea and recommend which to keep",
	}, s.handleReconcile)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "integrate_idea",
		Description: "Classify a new idea against the idea database",
	}, s.handleIntegrate)
}

// document resolves a path or inline text to a Document.
func (s *Server) document(ctx context.Context, path, text string) (*domain.Document, error) {
	if path != "" {
		if s.ports.Loader == nil {
			return nil, fmt.Errorf("mcp: cannot read %s: no document loader", path)
		}
		return s.ports.Loader.Load(ctx, path)
	}
	if text == "" {
		return nil, ErrNoDocument
	}
	return domain.NewDocumentFromText(uuid.New().String(), inlineURI, text), nil
}

func (s *Server) handleFindDuplicates(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindDuplicatesInput,
) (*mcp.CallToolResult, FindDuplicatesOutput, error) {
	doc, err := s.document(ctx, input.Path, input.Text)
	if err != nil {
		return nil, FindDuplicatesOutput{}, err
	}

	if input.Context {
		contexts, err := s.ports.Analysis.DuplicatesWithContext(ctx, doc)
		if err != nil {
			return nil, FindDuplicatesOutput{}, err
		}
		output := FindDuplicatesOutput{Groups: []domain.DuplicateGroup{}, Contexts: contexts, Count: len(contexts)}
		for _, c := range contexts {
			output.Groups = append(output.Groups, c.Group)
		}
		return nil, output, nil
	}

	groups, err := s.ports.Analysis.ExactDuplicates(ctx, doc)
	if err != nil {
		return nil, FindDuplicatesOutput{}, err
	}
	return nil, FindDuplicatesOutput{Groups: nonNil(groups), Count: len(groups)}, nil
}

func (s *Server) handleFindSimilar(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindSimilarInput,
) (*mcp.CallToolResult, FindSimilarOutput, error) {
	doc, err := s.document(ctx, input.Path, input.Text)
	if err != nil {
		return nil, FindSimilarOutput{}, err
	}

	opts := driving.SimilarOptions{
		Threshold: input.Threshold,
		Mode:      domain.ClusterMode(input.Mode),
		Blended:   input.Blended,
	}
	groups, err := s.ports.Analysis.SimilarLines(ctx, doc, opts)
	if err != nil {
		return nil, FindSimilarOutput{}, err
	}
	return nil, FindSimilarOutput{Groups: nonNil(groups), Count: len(groups)}, nil
}

func (s *Server) handleSearchConcept(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchConceptInput,
) (*mcp.CallToolResult, SearchConceptOutput, error) {
	doc, err := s.document(ctx, input.Path, input.Text)
	if err != nil {
		return nil, SearchConceptOutput{}, err
	}

	if input.Windowed {
		windows, err := s.ports.Analysis.SearchConceptWithContext(ctx, doc, input.Term)
		if err != nil {
			return nil, SearchConceptOutput{}, err
		}
		return nil, SearchConceptOutput{Windows: windows, Count: len(windows)}, nil
	}

	contextLines := input.ContextLines
	if contextLines <= 0 {
		contextLines = 2
	}
	hits, err := s.ports.Analysis.SearchConcept(ctx, doc, input.Term, contextLines)
	if err != nil {
		return nil, SearchConceptOutput{}, err
	}
	return nil, SearchConceptOutput{Hits: hits, Count: len(hits)}, nil
}

func (s *Server) handleRelatedConcepts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RelatedConceptsInput,
) (*mcp.CallToolResult, related.Result, error) {
	doc, err := s.document(ctx, input.Path, input.Text)
	if err != nil {
		return nil, related.Result{}, err
	}
	result, err := s.ports.Analysis.RelatedConcepts(ctx, doc, input.Terms)
	if err != nil {
		return nil, related.Result{}, err
	}
	return nil, result, nil
}

func (s *Server) handleReconcile(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReconcileInput,
) (*mcp.CallToolResult, domain.Recommendation, error) {
	ideas, err := s.ideas(ctx)
	if err != nil {
		return nil, domain.Recommendation{}, err
	}
	rec, err := ideas.Reconcile(ctx, input.IDs)
	if err != nil {
		return nil, domain.Recommendation{}, err
	}
	return nil, rec, nil
}

func (s *Server) handleIntegrate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IntegrateInput,
) (*mcp.CallToolResult, domain.IntegrationVerdict, error) {
	ideas, err := s.ideas(ctx)
	if err != nil {
		return nil, domain.IntegrationVerdict{}, err
	}
	verdict, err := ideas.Integrate(ctx, input.Text, nil)
	if err != nil {
		return nil, domain.IntegrationVerdict{}, err
	}
	return nil, verdict, nil
}

// ideas returns the idea service with the latest snapshot loaded, so edits
// made by other ideaforge commands are visible.
func (s *Server) ideas(ctx context.Context) (driving.IdeaService, error) {
	if s.ports.Ideas == nil {
		return nil, ErrIdeasUnavailable
	}
	if err := s.ports.Ideas.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading idea database: %w", err)
	}
	return s.ports.Ideas, nil
}

// nonNil keeps empty results serialised as [] rather than null.
func nonNil(groups []domain.DuplicateGroup) []domain.DuplicateGroup {
	if groups == nil {
		return []domain.DuplicateGroup{}
	}
	return groups
}
