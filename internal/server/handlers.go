package server

import (
	"encoding/json"
	"fmt"
	"image"
	"strings"

	"github.com/ironsheep/image-pixelate/internal/imaging"
	"github.com/ironsheep/image-pixelate/internal/matrix"
	"github.com/ironsheep/image-pixelate/internal/pixelate"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "pixelate_image").
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

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "pixelate_image":
		return s.handlePixelateImage(args)
	case "pixelate_matrix":
		return s.handlePixelateMatrix(args)
	case "pixelate_palette":
		return s.handlePixelatePalette(args)
	case "pixelate_methods":
		return s.handlePixelateMethods(args)
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

// === Pixelation Handlers ===

type pixelateArgs struct {
	Path        string   `json:"path"`
	BlockWidth  int      `json:"block_width"`
	BlockHeight int      `json:"block_height"`
	Mode        string   `json:"mode"`
	Method      string   `json:"method"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Zoom        *float64 `json:"zoom"`
	Brightness  int      `json:"brightness"`
	Strict      bool     `json:"strict"`
}

// config turns tool arguments into a pipeline configuration. Omitted block
// sizes default to 10, an omitted mode to color and an omitted method to the
// mode's default.
func (a pixelateArgs) config() pixelate.Config {
	cfg := pixelate.DefaultConfig()
	if a.BlockWidth != 0 {
		cfg.BlockWidth = a.BlockWidth
	}
	if a.BlockHeight != 0 {
		cfg.BlockHeight = a.BlockHeight
	}
	if a.Mode != "" {
		cfg.Mode = pixelate.Mode(strings.ToLower(strings.TrimSpace(a.Mode)))
	}
	cfg.Method = pixelate.DefaultMethod(cfg.Mode)
	if a.Method != "" {
		cfg.Method = pixelate.Method(strings.ToLower(strings.TrimSpace(a.Method)))
	}
	cfg.Resize = imaging.ResizeSpec{Width: a.Width, Height: a.Height, Zoom: a.Zoom}
	cfg.Brightness = a.Brightness
	cfg.Strict = a.Strict
	return cfg
}

// run loads the source image through the cache and pixelates it.
func (s *Server) run(a pixelateArgs) (*pixelate.Result, pixelate.Config, error) {
	cfg := a.config()
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, cfg, err
	}
	res, err := pixelate.Process(img, cfg)
	if err != nil {
		return nil, cfg, err
	}
	return res, cfg, nil
}

// PixelateImageResult is returned by pixelate_image.
type PixelateImageResult struct {
	Mode        pixelate.Mode   `json:"mode"`
	Method      pixelate.Method `json:"method"`
	Fallback    bool            `json:"fallback"`
	BlockWidth  int             `json:"block_width"`
	BlockHeight int             `json:"block_height"`
	OutputPath  string          `json:"output_path,omitempty"`
	imaging.EncodedImage
}

type pixelateImageArgs struct {
	pixelateArgs
	OutputPath string `json:"output_path"`
}

func (s *Server) handlePixelateImage(args json.RawMessage) (interface{}, error) {
	var a pixelateImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.OutputPath != "" {
		if err := imaging.CheckSavable(a.OutputPath); err != nil {
			return nil, err
		}
	}
	res, cfg, err := s.run(a.pixelateArgs)
	if err != nil {
		return nil, err
	}

	if a.OutputPath != "" {
		if err := imaging.Save(a.OutputPath, res.Image); err != nil {
			return nil, err
		}
	}

	encoded, err := imaging.EncodePNGBase64(res.Image)
	if err != nil {
		return nil, err
	}

	return &PixelateImageResult{
		Mode:         cfg.Mode,
		Method:       res.Method,
		Fallback:     res.Fallback,
		BlockWidth:   cfg.BlockWidth,
		BlockHeight:  cfg.BlockHeight,
		OutputPath:   a.OutputPath,
		EncodedImage: *encoded,
	}, nil
}

// PixelateMatrixResult is returned by pixelate_matrix. Exactly one of
// Document and Text is set.
type PixelateMatrixResult struct {
	Kind     string          `json:"kind"`
	Format   string          `json:"format"`
	Method   pixelate.Method `json:"method"`
	Fallback bool            `json:"fallback"`
	Document interface{}     `json:"document,omitempty"`
	Text     string          `json:"text,omitempty"`
}

type pixelateMatrixArgs struct {
	pixelateArgs
	Kind   string `json:"kind"`
	Format string `json:"format"`
}

func (s *Server) handlePixelateMatrix(args json.RawMessage) (interface{}, error) {
	var a pixelateMatrixArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Kind == "" {
		a.Kind = "json"
	}
	if a.Format == "" {
		a.Format = "rgb"
	}

	out := &PixelateMatrixResult{Kind: a.Kind}
	var render func(img image.Image)

	switch a.Kind {
	case "json":
		format, err := matrix.ParseJSONFormat(a.Format)
		if err != nil {
			return nil, err
		}
		out.Format = string(format)
		render = func(img image.Image) { out.Document = matrix.JSON(img, format) }
	case "text":
		format, err := matrix.ParseTextFormat(a.Format)
		if err != nil {
			return nil, err
		}
		out.Format = string(format)
		render = func(img image.Image) { out.Text = matrix.Text(img, format) }
	default:
		return nil, fmt.Errorf("invalid kind: %s (use json or text)", a.Kind)
	}

	res, _, err := s.run(a.pixelateArgs)
	if err != nil {
		return nil, err
	}
	render(res.Image)
	out.Method = res.Method
	out.Fallback = res.Fallback
	return out, nil
}

type pixelatePaletteArgs struct {
	Path        string `json:"path"`
	Count       int    `json:"count"`
	BlockWidth  int    `json:"block_width"`
	BlockHeight int    `json:"block_height"`
}

func (s *Server) handlePixelatePalette(args json.RawMessage) (interface{}, error) {
	var a pixelatePaletteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if a.BlockWidth > 0 && a.BlockHeight > 0 {
		img = pixelate.Pixelate(img, a.BlockWidth, a.BlockHeight, pixelate.MethodMEAV, pixelate.ModeColor)
	}
	return imaging.DominantColors(img, a.Count)
}

// ModeInfo describes one mode in the pixelate_methods result.
type ModeInfo struct {
	Mode    pixelate.Mode     `json:"mode"`
	Default pixelate.Method   `json:"default"`
	Methods []pixelate.Method `json:"methods"`
}

type pixelateMethodsArgs struct {
	Mode string `json:"mode"`
}

func (s *Server) handlePixelateMethods(args json.RawMessage) (interface{}, error) {
	var a pixelateMethodsArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}

	modes := pixelate.Modes()
	if a.Mode != "" {
		mode, err := pixelate.ParseMode(a.Mode)
		if err != nil {
			return nil, err
		}
		modes = []pixelate.Mode{mode}
	}

	out := make([]ModeInfo, 0, len(modes))
	for _, m := range modes {
		out = append(out, ModeInfo{Mode: m, Default: pixelate.DefaultMethod(m), Methods: pixelate.Methods(m)})
	}
	return map[string]interface{}{"modes": out}, nil
}
