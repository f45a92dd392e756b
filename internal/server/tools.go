package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_info",
			Description: "Read an image header and return its format, dimensions, color depth and whether it has an alpha channel. The pixels are not decoded.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_analyze_complexity",
			Description: "Analyze an image for garment printing. Returns a 0-1 complexity score and level (simple, medium, complex, very_complex), the unique color count, entropy, gradient and edge metrics, dominant colors and an ordered list of recommended print techniques.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_optimal_color_count",
			Description: "Return the number of colors to reduce an image to before printing, with the chosen technique. Never fails: when the image cannot be analyzed the standard 4-color CMYK setting is returned with fallback=true.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"technique": map[string]interface{}{
						"type":        "string",
						"description": "Restrict to a technique family: 'screen-print' or 'dtf'. Empty picks the best overall.",
						"enum":        []string{"", "screen-print", "dtf"},
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dominant_colors",
			Description: "Find the most frequent colors of an image after per-channel quantization. Returns hex, RGB, HSL and the share of pixels for each color.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of colors to return (default: 5)",
						"default":     5,
					},
					"tolerance": map[string]interface{}{
						"type":        "integer",
						"description": "Quantization step per channel, 1-255 (default: 8)",
						"default":     8,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_analyze_batch",
			Description: "Analyze several images in parallel. Returns one complexity report or error per path, in the order given.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"paths": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Absolute paths to the image files",
					},
					"workers": map[string]interface{}{
						"type":        "integer",
						"description": "Parallel analyses (default: configured worker count)",
					},
				},
				"required": []string{"paths"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
