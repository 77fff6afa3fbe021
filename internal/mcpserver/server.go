// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the post store for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/pistlar/internal/postservice"
)

// Server wraps the MCP server with the post tools.
type Server struct {
	mcp *server.MCPServer
	svc *postservice.Service
}

// New creates an MCP server with all post tools registered.
func New(svc *postservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Pistlar",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("list_posts",
		mcp.WithDescription("List all published posts, newest first, with slug, title, and date."),
	), s.listPosts)

	s.mcp.AddTool(mcp.NewTool("read_post",
		mcp.WithDescription("Read the raw Markdown source of a post, front-matter included."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Post slug (e.g. hello-world)")),
	), s.readPost)

	s.mcp.AddTool(mcp.NewTool("create_post",
		mcp.WithDescription("Create a new post. Provide a title and a Markdown body; "+
			"slug and date are derived when omitted."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Post title")),
		mcp.WithString("body", mcp.Required(), mcp.Description("Markdown body")),
		mcp.WithString("slug", mcp.Description("Optional explicit slug")),
		mcp.WithString("date", mcp.Description("Optional date (YYYY-MM-DD)")),
		mcp.WithString("image", mcp.Description("Optional image reference")),
	), s.createPost)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

type postSummary struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Date  string `json:"date"`
	Image string `json:"image,omitempty"`
}

func (s *Server) listPosts(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	posts, err := s.svc.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	summaries := make([]postSummary, len(posts))
	for i, p := range posts {
		summaries[i] = postSummary{
			Slug:  p.Slug,
			Title: p.Title,
			Date:  p.Date.Format("2006-01-02"),
			Image: p.Image,
		}
	}
	out, _ := json.MarshalIndent(summaries, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readPost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, _, err := s.svc.Raw(ctx, slug)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", slug)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) createPost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	body, err := req.RequireString("body")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	params := postservice.CreateParams{Title: title, Body: body}
	if v, err := req.RequireString("slug"); err == nil {
		params.Slug = v
	}
	if v, err := req.RequireString("date"); err == nil {
		params.Date = v
	}
	if v, err := req.RequireString("image"); err == nil {
		params.Image = v
	}

	post, err := s.svc.Create(ctx, params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created %s (%s)", post.Slug, post.SourcePath)), nil
}
