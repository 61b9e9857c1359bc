// Package jsonvalue implements the JSON value model used on the wire by the
// math analysis MCP server.
//
// A Value holds exactly one of seven kinds: null, bool, int, float, string,
// array or object. Integers and floats are distinct kinds and stay distinct
// through a serialize/parse round trip: "1" parses as an int, "1.0" as a
// float, and floats always serialize with a decimal point.
//
// # Ownership
//
// A Value tree owns its children. Array, Set, SetIndex and Append store deep
// copies of the values they receive, and Clone produces a fully independent
// tree. There is no way to build a cycle.
//
// # Object ordering
//
// Objects remember insertion order and Marshal writes members in that order.
// Re-setting an existing key keeps its original position. Equality ignores
// member order.
//
// # String escaping
//
// Marshal escapes only the quote, the backslash, newline, tab and carriage
// return. Any other control byte in a string, such as a raw 0x01 accepted by
// Parse, is written unescaped, so such output is not strict JSON.
//
// # Grammar
//
// Parse is a single-pass recursive-descent parser. It skips whitespace
// between tokens and ignores anything after the first complete value. Only
// the escapes \" \\ \n \t and \r are decoded; any other escaped character is
// copied through literally, and Marshal re-escapes the same set.
package jsonvalue
