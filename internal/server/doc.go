// Package server implements the MCP (Model Context Protocol) server for the
// pixelation engine.
//
// The server speaks JSON-RPC 2.0 over stdio, one request per line on stdin
// and one response per line on stdout. Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - pixelate_image: Pixelate an image and return it as base64 PNG,
//     optionally saving it to disk
//   - pixelate_matrix: Pixelate an image and return a JSON matrix document
//     or a text rendering
//   - pixelate_palette: Dominant colors of an image, optionally pixelated first
//   - pixelate_methods: Modes, their methods and defaults
//
// Source images are decoded once and cached by path for the lifetime of the
// process.
//
// # Error Handling
//
// Tool failures are returned as JSON-RPC errors with code -32000 and the Go
// error string in data. Malformed tools/call params use -32602 and unknown
// methods -32601.
//
// # Usage
//
//	srv := server.New(version)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
