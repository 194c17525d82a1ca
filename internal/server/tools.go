package server

import (
	"strings"

	"github.com/ironsheep/image-pixelate/internal/matrix"
	"github.com/ironsheep/image-pixelate/internal/pixelate"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pixelateProperties are the arguments shared by every tool that runs the
// pixelation pipeline.
func pixelateProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the source image",
		},
		"block_width": map[string]interface{}{
			"type":        "integer",
			"description": "Block width in pixels. Default 10",
			"default":     10,
			"minimum":     1,
		},
		"block_height": map[string]interface{}{
			"type":        "integer",
			"description": "Block height in pixels. Default 10",
			"default":     10,
			"minimum":     1,
		},
		"mode": map[string]interface{}{
			"type":        "string",
			"enum":        names(pixelate.Modes()),
			"description": "Reducer family. Default color",
			"default":     string(pixelate.ModeColor),
		},
		"method": map[string]interface{}{
			"type":        "string",
			"enum":        names(pixelate.AllMethods()),
			"description": "Averaging method. Methods outside the mode's set fall back to the mode default unless strict is set",
		},
		"width": map[string]interface{}{
			"type":        "integer",
			"description": "Resize to this width before tiling. Height follows the aspect ratio when omitted",
		},
		"height": map[string]interface{}{
			"type":        "integer",
			"description": "Resize to this height before tiling. Width follows the aspect ratio when omitted",
		},
		"zoom": map[string]interface{}{
			"type":        "number",
			"description": "Zoom factor used when width and height are omitted. z>0 scales by 1+z, z<0 divides by 1-z",
		},
		"brightness": map[string]interface{}{
			"type":        "integer",
			"description": "Delta added to the HSV value channel before tiling",
		},
		"strict": map[string]interface{}{
			"type":        "boolean",
			"description": "Reject unknown or mode-inappropriate methods instead of falling back",
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	imageProps := pixelateProperties()
	imageProps["output_path"] = map[string]interface{}{
		"type":        "string",
		"description": "Optional path to also save the result. The extension selects the format",
	}

	matrixProps := pixelateProperties()
	matrixProps["kind"] = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"json", "text"},
		"description": "Document kind. Default json",
		"default":     "json",
	}
	matrixProps["format"] = map[string]interface{}{
		"type": "string",
		"description": "Layout. json: " + strings.Join(names(matrix.JSONFormats()), ", ") +
			". text: " + strings.Join(names(matrix.TextFormats()), ", ") + ". Default rgb",
		"default": "rgb",
	}

	return []Tool{
		{
			Name:        "pixelate_image",
			Description: "Pixelate an image into uniform blocks using a per-block color reduction method. Returns the result as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": imageProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "pixelate_matrix",
			Description: "Pixelate an image and export its pixel grid as a JSON matrix document or a text rendering (RGB/hex grid, glyph art, density ASCII art, color letters).",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": matrixProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "pixelate_palette",
			Description: "Extract the dominant colors of an image, optionally after pixelating it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of colors to extract. Default 5",
						"default":     5,
					},
					"block_width": map[string]interface{}{
						"type":        "integer",
						"description": "Pixelate with this block width first (with block_height)",
					},
					"block_height": map[string]interface{}{
						"type":        "integer",
						"description": "Pixelate with this block height first (with block_width)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "pixelate_methods",
			Description: "List the pixelation modes, their averaging methods and defaults.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        names(pixelate.Modes()),
						"description": "Only list this mode",
					},
				},
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

func names[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

