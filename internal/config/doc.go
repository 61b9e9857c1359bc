// Package config loads runtime settings for the math analysis MCP server
// and builds its logger.
//
// Sources are layered, later ones winning: built-in defaults, a YAML file,
// a .env file in the working directory, MATH_MCP_* environment variables,
// and finally command-line flags applied by the caller.
//
// Example file:
//
//	server:
//	  name: MathAnalysisMCP
//	  version: 1.0.0
//	log_level: debug
//	log_format: text
//	max_message_bytes: 1048576
//	legacy_tool_errors: false
//	disabled_tools: [render_heatmap]
package config
