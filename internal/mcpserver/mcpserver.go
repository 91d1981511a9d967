// Package mcpserver exposes smell detection as an MCP tool over stdio,
// so agents and editors can query findings without shelling out.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"

	"github.com/Hazem-khriji/Code-smell-detector/internal/scanner"
	"github.com/Hazem-khriji/Code-smell-detector/pkg/analyzer/smells"
	"github.com/Hazem-khriji/Code-smell-detector/pkg/config"
)

// Server wraps the MCP server with the detection tool registered.
type Server struct {
	server *mcp.Server
}

// NewServer creates an MCP server exposing the detect_smells tool.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "smelldetect",
			Version: version,
		},
		nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name: "detect_smells",
		Description: "Detect structural code smells (long methods, too many parameters, " +
			"deep nesting) in source files. Returns severity-ranked findings with the " +
			"measured value and threshold for each violation.",
	}, handleDetectSmells)

	return &Server{server: server}
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// DetectInput is the input for the detect_smells tool.
type DetectInput struct {
	Paths               []string `json:"paths,omitempty" jsonschema:"Paths to analyze. Defaults to current directory if empty."`
	Format              string   `json:"format,omitempty" jsonschema:"Output format: toon (default) or json."`
	LongMethodThreshold int      `json:"long_method_threshold,omitempty" jsonschema:"Line-span threshold for long methods. Default 50."`
	MaxParameters       int      `json:"max_parameters,omitempty" jsonschema:"Parameter-count threshold. Default 5."`
	MaxNestingDepth     int      `json:"max_nesting_depth,omitempty" jsonschema:"Control-nesting depth threshold. Default 4."`
}

func handleDetectSmells(ctx context.Context, req *mcp.CallToolRequest, input DetectInput) (*mcp.CallToolResult, any, error) {
	paths := input.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}

	thresholds := smells.DefaultThresholds()
	if input.LongMethodThreshold > 0 {
		thresholds.LongMethodLines = input.LongMethodThreshold
	}
	if input.MaxParameters > 0 {
		thresholds.MaxParameters = input.MaxParameters
	}
	if input.MaxNestingDepth > 0 {
		thresholds.MaxNestingDepth = input.MaxNestingDepth
	}

	files, err := scanner.New(config.DefaultConfig()).ScanPaths(paths)
	if err != nil {
		return toolError(err.Error())
	}
	if len(files) == 0 {
		return toolError("no source files found")
	}

	analyzer, err := smells.New(smells.WithThresholds(thresholds))
	if err != nil {
		return toolError(err.Error())
	}
	defer analyzer.Close()

	analysis, err := analyzer.AnalyzeProject(files, nil)
	if err != nil {
		return toolError(err.Error())
	}

	return toolResult(analysis, input.Format)
}

func toolResult(data any, format string) (*mcp.CallToolResult, any, error) {
	var text string
	switch format {
	case "json":
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return nil, nil, err
		}
		text = string(out)
	default:
		out, err := toon.Marshal(data, toon.WithIndent(2))
		if err != nil {
			return nil, nil, err
		}
		text = string(out)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}
