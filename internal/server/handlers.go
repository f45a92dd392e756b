package server

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/print-advisor-mcp/internal/complexity"
	"github.com/ironsheep/print-advisor-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_analyze_complexity").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	log := s.log.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"tool":       params.Name,
	})
	start := time.Now()

	result, err := s.executeTool(log, params.Name, params.Arguments)
	if err != nil {
		log.WithError(err).Warn("tool call failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	log.WithField("duration", time.Since(start)).Info("tool call complete")

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(log logrus.FieldLogger, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_info":
		return s.handleImageInfo(args)
	case "image_analyze_complexity":
		return s.handleAnalyzeComplexity(args)
	case "image_optimal_color_count":
		return s.handleOptimalColorCount(log, args)
	case "image_dominant_colors":
		return s.handleDominantColors(args)
	case "image_analyze_batch":
		return s.handleAnalyzeBatch(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// readImageFile reads path, refusing files larger than the decode limit.
func (s *Server) readImageFile(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("failed to open image: %s is a directory", path)
	}
	if s.maxFileBytes > 0 && info.Size() > s.maxFileBytes {
		return nil, fmt.Errorf("image file is %d bytes, limit is %d", info.Size(), s.maxFileBytes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return data, nil
}

type pathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	data, err := s.readImageFile(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Inspect(data)
}

func (s *Server) handleAnalyzeComplexity(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	data, err := s.readImageFile(a.Path)
	if err != nil {
		return nil, err
	}
	return s.analyzer.AnalyzeImageComplexity(data)
}

type optimalColorCountArgs struct {
	Path      string `json:"path"`
	Technique string `json:"technique"`
}

// handleOptimalColorCount always produces a result: read failures yield the
// same fallback as analysis failures. Only an unknown technique is an error.
func (s *Server) handleOptimalColorCount(log logrus.FieldLogger, args json.RawMessage) (interface{}, error) {
	var a optimalColorCountArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	family, err := complexity.ParseFamily(a.Technique)
	if err != nil {
		return nil, err
	}
	data, err := s.readImageFile(a.Path)
	if err != nil {
		log.WithError(err).Warn("could not read image, returning default color count")
		return s.analyzer.Fallback(err), nil
	}
	return s.analyzer.GetOptimalColorCount(data, family), nil
}

type dominantColorsArgs struct {
	Path      string `json:"path"`
	Count     int    `json:"count"`
	Tolerance int    `json:"tolerance"`
}

type dominantColorsResult struct {
	Colors    []imaging.ColorFrequency `json:"colors"`
	Tolerance int                      `json:"tolerance"`
}

func (s *Server) handleDominantColors(args json.RawMessage) (interface{}, error) {
	var a dominantColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Tolerance < 0 || a.Tolerance > 255 {
		return nil, fmt.Errorf("tolerance must be in 0-255 (got %d)", a.Tolerance)
	}
	data, err := s.readImageFile(a.Path)
	if err != nil {
		return nil, err
	}
	tolerance := a.Tolerance
	if tolerance == 0 {
		tolerance = s.analyzer.Options().Tolerance
	}
	colors, err := s.analyzer.DominantColors(data, a.Count, tolerance)
	if err != nil {
		return nil, err
	}
	return dominantColorsResult{Colors: colors, Tolerance: tolerance}, nil
}

type analyzeBatchArgs struct {
	Paths   []string `json:"paths"`
	Workers int      `json:"workers"`
}

type analyzeBatchResult struct {
	Results []complexity.BatchResult `json:"results"`
	Failed  int                      `json:"failed"`
}

// handleAnalyzeBatch reads every path, analyzes the readable ones in
// parallel and reports results in the order of Paths, keyed by path.
func (s *Server) handleAnalyzeBatch(args json.RawMessage) (interface{}, error) {
	var a analyzeBatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Paths) == 0 {
		return nil, fmt.Errorf("paths must not be empty")
	}

	results := make([]complexity.BatchResult, len(a.Paths))
	items := make([]complexity.BatchItem, 0, len(a.Paths))
	index := make([]int, 0, len(a.Paths))
	for i, p := range a.Paths {
		data, err := s.readImageFile(p)
		if err != nil {
			results[i] = complexity.BatchResult{ID: p, Err: err, Error: err.Error()}
			continue
		}
		items = append(items, complexity.BatchItem{ID: p, Data: data})
		index = append(index, i)
	}

	for j, r := range s.analyzer.AnalyzeBatch(context.Background(), items, a.Workers) {
		results[index[j]] = r
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	return analyzeBatchResult{Results: results, Failed: failed}, nil
}
