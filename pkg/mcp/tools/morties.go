// Package tools provides the MCP tools that expose the Pocket Morty query engine.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/doctorew/pocket-morties/pkg/apperrors"
	"github.com/doctorew/pocket-morties/pkg/dataset"
	"github.com/doctorew/pocket-morties/pkg/logging"
	"github.com/doctorew/pocket-morties/pkg/models"
	"github.com/doctorew/pocket-morties/pkg/query"
)

// MortyToolDeps contains dependencies for the record tools.
type MortyToolDeps struct {
	Source dataset.Source
	Logger *zap.Logger
}

// RegisterMortyTools registers the read-only record tools.
func RegisterMortyTools(s *server.MCPServer, deps *MortyToolDeps) {
	registerGetPocketMortyTool(s, deps)
	registerSortedPocketMortiesTool(s, deps)
	registerSearchPocketMortiesTool(s, deps)
}

func validSortKeys() []string {
	keys := models.SortKeys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}

func readOnly() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	}
}

func (d *MortyToolDeps) fetch(ctx context.Context, tool string) ([]models.PocketMorty, error) {
	records, err := d.Source.Fetch(ctx)
	if err != nil {
		logging.WithContext(ctx, d.Logger).Error("Dataset fetch failed",
			zap.String("tool", tool), zap.Error(err))
		return nil, err
	}
	return records, nil
}

// registerGetPocketMortyTool adds get_pocket_morty, a lookup by id.
func registerGetPocketMortyTool(s *server.MCPServer, deps *MortyToolDeps) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Get one Pocket Morty by its numeric id, including stats and where it is found."),
		mcp.WithNumber(
			"id",
			mcp.Required(),
			mcp.Description("Pocket Morty id (e.g., 42)"),
		),
	}, readOnly()...)
	tool := mcp.NewTool("get_pocket_morty", opts...)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireInt("id")
		if err != nil {
			return NewErrorResult("invalid_parameters", err.Error()), nil
		}

		records, err := deps.fetch(ctx, "get_pocket_morty")
		if err != nil {
			return nil, err
		}

		m, ok := query.FindByID(records, id)
		if !ok {
			return errorResultFor(fmt.Errorf("%w: no Pocket Morty with id %d", apperrors.ErrNotFound, id), nil), nil
		}
		return jsonResult(mortyView(m))
	})
}

// registerSortedPocketMortiesTool adds sorted_pocket_morties, the tool form of
// the sortedMorties query.
func registerSortedPocketMortiesTool(s *server.MCPServer, deps *MortyToolDeps) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription(
			"List Pocket Morties ordered by a stat. " +
				"'first' returns the highest values first; 'last' returns the lowest values, lowest first. " +
				"Use 'after' with a cursor from a previous result to continue. " +
				"Example: sorted_pocket_morties(sort_by='baseatk', first=3)",
		),
		mcp.WithString(
			"sort_by",
			mcp.Required(),
			mcp.Description("Stat to order by"),
			mcp.Enum(validSortKeys()...),
		),
		mcp.WithNumber("first", mcp.Description("Optional - Number of highest records to return (default 5)"), mcp.Min(0)),
		mcp.WithNumber("last", mcp.Description("Optional - Number of lowest records to return; cannot be combined with 'first'"), mcp.Min(0)),
		mcp.WithString("after", mcp.Description("Optional - Cursor to continue after (e.g., 'cursor-12')")),
	}, readOnly()...)
	tool := mcp.NewTool("sorted_pocket_morties", opts...)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sortBy, err := req.RequireString("sort_by")
		if err != nil {
			return NewErrorResult("invalid_parameters", err.Error()), nil
		}
		page := models.PageRequest{
			First: getOptionalInt(req, "first"),
			Last:  getOptionalInt(req, "last"),
			After: trimString(req.GetString("after", "")),
		}

		// Validate before fetching so bad input never costs a download.
		if _, err := models.ParseSortKey(sortBy); err != nil {
			return errorResultFor(err, map[string]any{"valid_sort_keys": validSortKeys()}), nil
		}
		if err := page.Validate(); err != nil {
			return errorResultFor(err, nil), nil
		}

		records, err := deps.fetch(ctx, "sorted_pocket_morties")
		if err != nil {
			return nil, err
		}

		conn, err := query.SortAndPage(records, sortBy, page)
		if err != nil {
			if res := errorResultFor(err, nil); res != nil {
				return res, nil
			}
			return nil, err
		}
		return jsonResult(connectionView(conn))
	})
}

// registerSearchPocketMortiesTool adds search_pocket_morties, the tool form of
// the pocketMorties query.
func registerSearchPocketMortiesTool(s *server.MCPServer, deps *MortyToolDeps) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription(
			"Search Pocket Morties by type, rarity, dimension or location, optionally ordered by a stat. " +
				"All filters are combined with AND; each list matches any of its values. " +
				"Example: search_pocket_morties(type=['Rock'], where_found=['Citadel'], sort_by='basehp', first=10)",
		),
		mcp.WithArray("type", mcp.WithStringItems(), mcp.Description("Optional - Types to include (e.g., ['Rock', 'Paper'])")),
		mcp.WithArray("rarity", mcp.WithStringItems(), mcp.Description("Optional - Rarities to include (e.g., ['Rare'])")),
		mcp.WithArray("dimensions", mcp.WithStringItems(), mcp.Description("Optional - Dimensions to include")),
		mcp.WithArray("where_found", mcp.WithStringItems(), mcp.Description("Optional - Locations; a record matches if found in any of them")),
		mcp.WithString("sort_by", mcp.Description("Optional - Stat to order by, highest first"), mcp.Enum(validSortKeys()...)),
		mcp.WithNumber("first", mcp.Description("Optional - Page size (default 5)"), mcp.Min(0)),
		mcp.WithString("after", mcp.Description("Optional - Cursor to continue after")),
	}, readOnly()...)
	tool := mcp.NewTool("search_pocket_morties", opts...)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		f := query.Filter{
			Types:      getOptionalStrings(req, "type"),
			Rarities:   getOptionalStrings(req, "rarity"),
			Dimensions: getOptionalStrings(req, "dimensions"),
			WhereFound: getOptionalStrings(req, "where_found"),
		}
		sortBy := trimString(req.GetString("sort_by", ""))
		page := models.PageRequest{
			First: getOptionalInt(req, "first"),
			After: trimString(req.GetString("after", "")),
		}

		records, err := deps.fetch(ctx, "search_pocket_morties")
		if err != nil {
			return nil, err
		}

		conn, err := query.Search(records, f, sortBy, page)
		if err != nil {
			if res := errorResultFor(err, map[string]any{"valid_sort_keys": validSortKeys()}); res != nil {
				return res, nil
			}
			return nil, err
		}
		return jsonResult(connectionView(conn))
	})
}

// morty is a record plus its derived image links.
type morty struct {
	models.PocketMorty
	FrontImage string `json:"frontImage"`
	BackImage  string `json:"backImage"`
}

type edge struct {
	Node   morty  `json:"node"`
	Cursor string `json:"cursor"`
}

type connection struct {
	Edges    []edge          `json:"edges"`
	PageInfo models.PageInfo `json:"pageInfo"`
}

func mortyView(m models.PocketMorty) morty {
	return morty{PocketMorty: m, FrontImage: m.FrontImageURL(), BackImage: m.BackImageURL()}
}

func connectionView(conn *models.Connection) connection {
	out := connection{Edges: make([]edge, len(conn.Edges)), PageInfo: conn.PageInfo}
	for i, e := range conn.Edges {
		out.Edges[i] = edge{Node: mortyView(e.Node), Cursor: e.Cursor}
	}
	return out
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
