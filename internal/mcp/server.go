package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `bugdeck-mcp bridges this machine's bug tracker
client to agents. Tools operate with the locally stored session: run the
bugdeck TUI to log in first, and call whoami to check the session state.
Issues move between open, in_progress, and closed.`

// Config contains bridge server configuration.
type Config struct {
	Tracker  TrackerClient
	Sessions SessionManager
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) (*sdkmcp.Server, error) {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "bugdeck",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	handler := NewHandler(cfg.Tracker, cfg.Sessions)
	if err := registerTools(server, handler); err != nil {
		return nil, err
	}
	return server, nil
}

// registerTools binds the catalog to the dispatch handler.
func registerTools(server *sdkmcp.Server, handler *Handler) error {
	for _, tool := range buildToolCatalog() {
		schema, err := toSchema(tool.InputSchema)
		if err != nil {
			return fmt.Errorf("tool %s: %w", tool.Name, err)
		}

		name := tool.Name
		server.AddTool(&sdkmcp.Tool{
			Name:        name,
			Description: tool.Description,
			InputSchema: schema,
		}, func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
			args, err := json.Marshal(req.Params.Arguments)
			if err != nil {
				return nil, fmt.Errorf("marshal arguments: %w", err)
			}

			result, err := handler.Handle(ctx, name, args)
			if err != nil {
				return toolErrorResult(err), nil
			}

			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("marshal result: %w", err)
			}
			return &sdkmcp.CallToolResult{
				Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
			}, nil
		})
	}
	return nil
}

func toolErrorResult(err error) *sdkmcp.CallToolResult {
	payload := err.Error()
	if toolErr, ok := err.(*ToolError); ok {
		if data, marshalErr := json.Marshal(toolErr); marshalErr == nil {
			payload = string(data)
		}
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: payload}},
		IsError: true,
	}
}

func toSchema(m map[string]any) (*jsonschema.Schema, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	return &schema, nil
}
