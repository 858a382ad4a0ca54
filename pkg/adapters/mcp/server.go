package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/csdlgen"
	"github.com/aretw0/csdlgen/internal/compiler"
	"github.com/aretw0/csdlgen/internal/logging"
	"github.com/aretw0/csdlgen/pkg/annotation"
	"github.com/aretw0/csdlgen/pkg/ports"
	"github.com/aretw0/csdlgen/pkg/typegraph"
)

// MetadataURI is the resource holding the rendered document of the configured program.
const MetadataURI = "csdl://metadata"

// RenderResponse is the structured result of render_csdl.
type RenderResponse struct {
	Document    string                 `json:"document" jsonschema_description:"The CSDL XML document"`
	Schemas     []csdlgen.SchemaInfo   `json:"schemas" jsonschema_description:"One summary per rendered Schema"`
	Diagnostics annotation.Diagnostics `json:"diagnostics" jsonschema_description:"Rejected declarations and other findings"`
}

// SchemasResponse is the structured result of list_schemas.
type SchemasResponse struct {
	Schemas []csdlgen.SchemaInfo `json:"schemas" jsonschema_description:"One summary per rendered Schema"`
}

// Server exposes CSDL rendering as an MCP Server.
type Server struct {
	source    ports.ProgramSource
	opts      []csdlgen.Option
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. source may be nil, in which case
// render_csdl requires an inline graph and the metadata resource is unavailable.
func NewServer(source ports.ProgramSource, logger *slog.Logger, opts ...csdlgen.Option) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		source:    source,
		opts:      opts,
		logger:    logger,
		mcpServer: server.NewMCPServer("csdlgen-mcp", csdlgen.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: render_csdl
	renderTool := mcp.NewTool("render_csdl",
		mcp.WithDescription("Render a type graph to an OData CSDL XML document. Without a graph argument the server's configured program is rendered."),
		mcp.WithString("graph", mcp.Description("Inline graph document (YAML or JSON, optional)")),
		mcp.WithString("format", mcp.Description("Format of the inline graph"), mcp.Enum("yaml", "json")),
		mcp.WithString("exclude", mcp.Description("Comma separated namespace prefixes to leave out (default: Cadl)")),
		mcp.WithBoolean("entity_container", mcp.Description("Emit the EntityContainer placeholder")),
		mcp.WithOutputSchema[RenderResponse](),
	)
	s.mcpServer.AddTool(renderTool, mcp.NewStructuredToolHandler(s.handleRender))

	// TOOL: list_schemas
	listTool := mcp.NewTool("list_schemas",
		mcp.WithDescription("List the Schemas the configured program renders, with type counts."),
		mcp.WithOutputSchema[SchemasResponse](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleListSchemas))
}

func (s *Server) program(ctx context.Context, args map[string]any) (*typegraph.Program, error) {
	if graph, _ := args["graph"].(string); strings.TrimSpace(graph) != "" {
		format := compiler.FormatYAML
		if f, _ := args["format"].(string); f == "json" {
			format = compiler.FormatJSON
		}
		doc, err := compiler.Parse([]byte(graph), format)
		if err != nil {
			return nil, err
		}
		return compiler.Compile(doc, "inline")
	}
	if s.source == nil {
		return nil, fmt.Errorf("no program configured; pass a graph argument")
	}
	return s.source(ctx)
}

func (s *Server) emitter(args map[string]any) *csdlgen.Emitter {
	opts := append([]csdlgen.Option{csdlgen.WithLogger(s.logger)}, s.opts...)
	if exclude, ok := args["exclude"].(string); ok {
		var prefixes []string
		for _, p := range strings.Split(exclude, ",") {
			if p = strings.TrimSpace(p); p != "" {
				prefixes = append(prefixes, p)
			}
		}
		opts = append(opts, csdlgen.WithExcludedNamespaces(prefixes...))
	}
	if enabled, ok := args["entity_container"].(bool); ok {
		opts = append(opts, csdlgen.WithEntityContainer(enabled))
	}
	return csdlgen.New(opts...)
}

func (s *Server) handleRender(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (RenderResponse, error) {
	prog, err := s.program(ctx, args)
	if err != nil {
		return RenderResponse{}, fmt.Errorf("load failed: %w", err)
	}

	res := s.emitter(args).Render(prog)
	resp := RenderResponse{
		Document:    string(res.Document),
		Schemas:     res.Schemas,
		Diagnostics: res.Diagnostics,
	}
	if resp.Diagnostics == nil {
		resp.Diagnostics = annotation.Diagnostics{}
	}
	return resp, nil
}

func (s *Server) handleListSchemas(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (SchemasResponse, error) {
	if s.source == nil {
		return SchemasResponse{}, fmt.Errorf("no program configured")
	}
	prog, err := s.source(ctx)
	if err != nil {
		return SchemasResponse{}, fmt.Errorf("load failed: %w", err)
	}
	return SchemasResponse{Schemas: s.emitter(nil).Render(prog).Schemas}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(MetadataURI, "CSDL metadata document",
		mcp.WithMIMEType("application/xml"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		if s.source == nil {
			return nil, fmt.Errorf("no program configured")
		}
		prog, err := s.source(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load program: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      MetadataURI,
				MIMEType: "application/xml",
				Text:     string(s.emitter(nil).Render(prog).Document),
			},
		}, nil
	})
}
