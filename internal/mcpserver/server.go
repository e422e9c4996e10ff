// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes kohl's template tooling for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/voss/kohl/internal/models"
	"github.com/voss/kohl/internal/preview"
	"github.com/voss/kohl/internal/render"
	"github.com/voss/kohl/internal/stats"
	"github.com/voss/kohl/internal/template"
)

// Server wraps the MCP server with kohl tools. stats may be nil when
// no statistics database is configured.
type Server struct {
	mcp   *server.MCPServer
	stats stats.Provider
}

// New creates a new MCP server with all kohl tools registered.
func New(statsProvider stats.Provider) *Server {
	s := &Server{stats: statsProvider}

	s.mcp = server.NewMCPServer(
		"Kohl",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("validate_template",
		mcp.WithDescription("Validate a highlight template and report errors, warnings, and suggestions. "+
			"Read the syntax first via the get_template_contract tool or the kohl://template-syntax resource."),
		mcp.WithString("template", mcp.Required(), mcp.Description("Template source to validate")),
	), s.validateTemplate)

	s.mcp.AddTool(mcp.NewTool("render_template",
		mcp.WithDescription("Render a highlight template against sample annotations and return the Markdown output."),
		mcp.WithString("template", mcp.Required(), mcp.Description("Template source to render")),
	), s.renderTemplate)

	s.mcp.AddTool(mcp.NewTool("list_template_keys",
		mcp.WithDescription("List the variables and filters highlight templates may reference."),
	), s.listTemplateKeys)

	s.mcp.AddTool(mcp.NewTool("get_template_contract",
		mcp.WithDescription("Returns the canonical highlight template syntax contract. "+
			"Call this before writing or editing templates."),
	), s.getTemplateContract)

	s.mcp.AddTool(mcp.NewTool("book_stats",
		mcp.WithDescription("Look up reading statistics for a book by title."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Exact book title")),
		mcp.WithString("authors", mcp.Description("Optional authors to narrow the lookup")),
	), s.bookStats)

	// Resource: template syntax contract.
	s.mcp.AddResource(
		mcp.NewResource("kohl://template-syntax", "Template Syntax Contract",
			mcp.WithResourceDescription("Canonical highlight template syntax that all templates must follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readTemplateContractResource,
	)

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

func (s *Server) validateTemplate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tpl, err := req.RequireString("template")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(template.Validate(tpl), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) renderTemplate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tpl, err := req.RequireString("template")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	renderer := render.NewRenderer(template.Compile(tpl), models.CommentNone, 1)
	return mcp.NewToolResultText(renderer.RenderAnnotations(preview.SampleAnnotations())), nil
}

func (s *Server) listTemplateKeys(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := "variables:\n  " + strings.Join(template.DataKeys(), "\n  ") +
		"\nfilters:\n  " + strings.Join(template.FilterNames(), "\n  ")
	return mcp.NewToolResultText(text), nil
}

func (s *Server) getTemplateContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(TemplateContract), nil
}

func (s *Server) bookStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.stats == nil {
		return mcp.NewToolResultError("no statistics database configured"), nil
	}
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	authors := ""
	if a, aErr := req.RequireString("authors"); aErr == nil {
		authors = a
	}
	bs, err := s.stats.BookStats(title, authors)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("stats lookup failed: %v", err)), nil
	}
	out, _ := json.MarshalIndent(bs, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readTemplateContractResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "kohl://template-syntax",
			MIMEType: "text/markdown",
			Text:     TemplateContract,
		},
	}, nil
}
