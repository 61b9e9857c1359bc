// Package server implements the MCP (Model Context Protocol) server for numerical analysis tools.
//
// This package provides a JSON-RPC 2.0 server that exposes statistics, linear
// algebra, curve fitting and calculus operations through the MCP protocol. It
// is designed to be launched by an MCP client as a subprocess.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC messages on stdin (one per line, blank lines ignored)
//   - Output: JSON-RPC responses on stdout (one per line, flushed immediately)
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - notifications/initialized: Handshake acknowledgment (no response)
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// Every method except initialize fails with -32002 until a client has called
// initialize. Messages without an "id" member are notifications and are
// never answered.
//
// # Available Tools
//
// Statistics:
//   - calculate_statistics: Mean, median, mode, variance and more
//
// Linear Algebra:
//   - multiply_matrices: Matrix product
//   - multiply_matrix_vector: Matrix-vector product
//   - calculate_determinant: Determinant of a square matrix
//   - transpose_matrix: Swap rows and columns
//   - dot_product: Inner product of two vectors
//
// Curve Fitting:
//   - polynomial_fit: Least-squares polynomial of a given degree
//
// Calculus:
//   - numerical_differentiate: Finite-difference derivative
//   - integrate_simpson: Composite Simpson's rule
//
// Visualization:
//   - render_heatmap: Matrix as a base64 PNG heatmap
//
// # Error Handling
//
// Protocol failures are JSON-RPC error responses:
//   - -32700: the line is not valid JSON (id is null)
//   - -32600: not an object, or missing "jsonrpc":"2.0" or a string method
//   - -32601: unknown method
//   - -32002: called before initialize
//   - -32603: malformed tools/call params, unknown tool, or an internal fault
//
// A tool that rejects its arguments does not produce a JSON-RPC error. The
// call succeeds with {"error": "<message>"} as the tool result and isError
// set to true, or false when legacy_tool_errors is configured.
//
// # Usage
//
//	srv, err := server.New(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	return srv.Run(ctx, os.Stdin, os.Stdout)
package server
