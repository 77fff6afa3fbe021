package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/pistlar/internal/testutil"
)

func testServer(t *testing.T) (string, *Server) {
	t.Helper()
	postsDir, _, svc := testutil.TestSite(t)
	return postsDir, New(svc)
}

// callTool invokes a tool handler directly; mcp-go has no call-tool test
// helper.
func callTool(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	var result *mcp.CallToolResult
	var err error
	switch name {
	case "list_posts":
		result, err = srv.listPosts(ctx, req)
	case "read_post":
		result, err = srv.readPost(ctx, req)
	case "create_post":
		result, err = srv.createPost(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}
	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestListPosts(t *testing.T) {
	postsDir, srv := testServer(t)
	testutil.WritePost(t, postsDir, "2024-01-01-hello.md", "---\ntitle: Hello\n---\nBody.")

	res := callTool(t, srv, "list_posts", nil)
	text := resultText(res)
	if !strings.Contains(text, `"slug": "hello"`) {
		t.Errorf("list_posts output missing post: %s", text)
	}
}

func TestReadPost(t *testing.T) {
	postsDir, srv := testServer(t)
	testutil.WritePost(t, postsDir, "2024-01-01-hello.md", "---\ntitle: Hello\n---\nRaw body here.")

	res := callTool(t, srv, "read_post", map[string]any{"slug": "hello"})
	if !strings.Contains(resultText(res), "Raw body here.") {
		t.Errorf("read_post output = %s", resultText(res))
	}

	res = callTool(t, srv, "read_post", map[string]any{"slug": "missing"})
	if !res.IsError {
		t.Error("expected error result for unknown slug")
	}
}

func TestCreatePost(t *testing.T) {
	_, srv := testServer(t)

	res := callTool(t, srv, "create_post", map[string]any{
		"title": "Made By Tool",
		"body":  "Tool body.",
		"date":  "2024-02-02",
	})
	if res.IsError {
		t.Fatalf("create_post failed: %s", resultText(res))
	}
	if !strings.Contains(resultText(res), "made-by-tool") {
		t.Errorf("create_post output = %s", resultText(res))
	}

	list := callTool(t, srv, "list_posts", nil)
	if !strings.Contains(resultText(list), "Made By Tool") {
		t.Errorf("created post missing from list: %s", resultText(list))
	}
}
