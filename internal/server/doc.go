// Package server implements the MCP (Model Context Protocol) server for print
// complexity analysis.
//
// This package provides a JSON-RPC 2.0 server that exposes the complexity
// analyzer to MCP-compatible clients, so an assistant or a palette-reduction
// pipeline can ask how many colors an artwork should be printed with.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_info: Format and dimensions from the image header
//   - image_analyze_complexity: Full complexity report with recommendations
//   - image_optimal_color_count: Color count for a technique family
//   - image_dominant_colors: Quantized color palette
//   - image_analyze_batch: Reports for many files, analyzed in parallel
//
// Every tool reads images from local paths. Files larger than the configured
// byte limit are refused before they are read.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// image_optimal_color_count is the exception: unreadable or undecodable
// images produce a normal result flagged with "fallback": true.
//
// # Logging
//
// Each tools/call is logged with a random request_id and the tool name.
// Logs go to the logger passed to New, never to stdout.
//
// # Usage
//
//	analyzer, err := complexity.NewAnalyzer(complexity.DefaultOptions(), log)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(analyzer, log, version)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
