package server

import (
	"encoding/json"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"image_info",
		"image_analyze_complexity",
		"image_optimal_color_count",
		"image_dominant_colors",
		"image_analyze_batch",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("tool count: got %d, want %d", len(tools), len(expectedTools))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok || len(props) == 0 {
				t.Fatal("InputSchema has no properties")
			}

			// Every required field must be a declared property
			required, _ := tool.InputSchema["required"].([]string)
			if len(required) == 0 {
				t.Error("InputSchema declares no required fields")
			}
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required field %q is not a property", r)
				}
			}
		})
	}
}

func TestToolDefinitions_OptimalColorCountTechniques(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		if tool.Name != "image_optimal_color_count" {
			continue
		}
		props := tool.InputSchema["properties"].(map[string]interface{})
		technique, ok := props["technique"].(map[string]interface{})
		if !ok {
			t.Fatal("technique property missing")
		}
		enum, _ := technique["enum"].([]string)
		want := map[string]bool{"": true, "screen-print": true, "dtf": true}
		if len(enum) != len(want) {
			t.Fatalf("technique enum: got %v", enum)
		}
		for _, e := range enum {
			if !want[e] {
				t.Errorf("unexpected technique %q", e)
			}
		}
		return
	}
	t.Fatal("image_optimal_color_count not defined")
}

func TestToolDefinitions_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(GetToolDefinitions())
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	for _, d := range decoded {
		if _, ok := d["inputSchema"]; !ok {
			t.Errorf("tool %v: missing inputSchema key", d["name"])
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer(t)

	resp := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: 1})

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(toolsList) != len(GetToolDefinitions()) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(GetToolDefinitions()))
	}
}
