// Package mcp provides the stdio MCP server exposing note tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/go-ports/notekeeper/internal/buildinfo"
	"github.com/go-ports/notekeeper/internal/models"
	"github.com/go-ports/notekeeper/internal/service"
)

const filterDescription = `List notes whose timestamp lies within [start, end], both inclusive. Both bounds use the layout "YYYY-MM-DD HH:MM:SS".`

const deleteDescription = `Delete every note with the given ID. Deleting an unknown ID is not an error; "removed" reports how many notes were deleted.`

// NewServer creates and registers all note tools on a new MCP server.
// It is separate from Serve so tests can use an in-process transport.
func NewServer(svc *service.Service) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer("notekeeper", buildinfo.Version)
	registerTools(s, &tools{svc: svc})
	return s
}

// Serve starts the stdio MCP server over notesFile, blocking until stdin
// closes.
func Serve(_ context.Context, notesFile string) error {
	svc, err := service.New(notesFile)
	if err != nil {
		return fmt.Errorf("mcp: init service: %w", err)
	}
	defer svc.Close()

	return mcpserver.ServeStdio(NewServer(svc))
}

// tools serializes tool calls: the service is single-threaded and mcp-go
// may dispatch requests concurrently.
type tools struct {
	mu  sync.Mutex
	svc *service.Service
}

// registerTools wires all six tools into the server.
func registerTools(s *mcpserver.MCPServer, t *tools) {
	s.AddTool(mcp.NewTool("notes_add",
		mcp.WithDescription("Add a note. Returns the stored note with its assigned ID and timestamp."),
		mcp.WithString("title",
			mcp.Description("Note title."),
			mcp.Required(),
		),
		mcp.WithString("body",
			mcp.Description("Note body."),
		),
	), t.handleAdd)

	s.AddTool(mcp.NewTool("notes_list",
		mcp.WithDescription("List all notes in insertion order."),
	), t.handleList)

	s.AddTool(mcp.NewTool("notes_edit",
		mcp.WithDescription("Replace the title and body of the first note with the given ID and refresh its timestamp."),
		mcp.WithNumber("id",
			mcp.Description("Note ID."),
			mcp.Required(),
		),
		mcp.WithString("title",
			mcp.Description("New title."),
			mcp.Required(),
		),
		mcp.WithString("body",
			mcp.Description("New body."),
		),
	), t.handleEdit)

	s.AddTool(mcp.NewTool("notes_delete",
		mcp.WithDescription(deleteDescription),
		mcp.WithNumber("id",
			mcp.Description("Note ID."),
			mcp.Required(),
		),
	), t.handleDelete)

	s.AddTool(mcp.NewTool("notes_filter",
		mcp.WithDescription(filterDescription),
		mcp.WithString("start",
			mcp.Description("Lower bound, YYYY-MM-DD HH:MM:SS."),
			mcp.Required(),
		),
		mcp.WithString("end",
			mcp.Description("Upper bound, YYYY-MM-DD HH:MM:SS."),
			mcp.Required(),
		),
	), t.handleFilter)

	s.AddTool(mcp.NewTool("notes_search",
		mcp.WithDescription("Keyword search over note titles and bodies. Results keep insertion order."),
		mcp.WithString("query",
			mcp.Description("Search terms"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max results (default 10, 0 for all)"),
		),
	), t.handleSearch)
}

// ---------------------------------------------------------------------------
// Tool handlers
// ---------------------------------------------------------------------------

func (t *tools) handleAdd(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n, err := t.svc.Add(req.GetString("title", ""), req.GetString("body", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(n)
}

func (t *tools) handleList(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return jsonResult(noteList(t.svc.List()))
}

func (t *tools) handleEdit(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := idArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	n, err := t.svc.Edit(id, req.GetString("title", ""), req.GetString("body", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(n)
}

func (t *tools) handleDelete(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := idArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	removed, err := t.svc.Delete(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"note_id": id,
		"removed": removed,
	})
}

func (t *tools) handleFilter(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	notes, err := t.svc.FilterByDate(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(noteList(notes))
}

func (t *tools) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 10)
	if limit < 0 {
		limit = 10
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	notes, err := t.svc.Search(ctx, req.GetString("query", ""), limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(noteList(notes))
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var errMissingID = errors.New("id is required")

// idArg returns the integer "id" argument. JSON numbers arrive as float64,
// so fractional values are rejected rather than truncated.
func idArg(req mcp.CallToolRequest) (int, error) {
	raw, ok := req.GetArguments()["id"]
	if !ok || raw == nil {
		return 0, errMissingID
	}
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("id must be an integer, got %v", v)
		}
		// float64(math.MaxInt) rounds up to 2^63, so the upper bound is exclusive.
		if v < math.MinInt || v >= math.MaxInt {
			return 0, fmt.Errorf("id out of range, got %v", v)
		}
		return int(v), nil
	case int:
		return v, nil
	default:
		return 0, fmt.Errorf("id must be a number, got %T", raw)
	}
}

// noteList wraps notes with their count, never encoding a null array.
func noteList(notes []models.Note) map[string]any {
	if notes == nil {
		notes = make([]models.Note, 0)
	}
	return map[string]any{
		"count": len(notes),
		"notes": notes,
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
