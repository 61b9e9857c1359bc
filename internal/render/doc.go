// Package render draws matrices as images for the MCP server.
//
// Heatmap maps each cell of a numeric matrix onto a two-color ramp and
// returns a base64-encoded PNG, so a client can show a matrix result inline
// next to the numbers that produced it.
//
// # Layout
//
// The output image is Cols*CellSize pixels wide and Rows*CellSize pixels
// tall. Row 0 is drawn at the top and column 0 at the left, matching the
// order of the input arrays.
//
// # Color Ramp
//
// Colors are given as "#RRGGBB" and blended in CIE L*a*b* space, which keeps
// perceived brightness changing evenly across the ramp. The finite minimum
// maps to the low color and the finite maximum to the high color. NaN and
// infinite cells are painted a neutral gray.
//
// # Limits
//
// CellSize must be between 1 and MaxCellSize, and the total image area may
// not exceed MaxPixels.
package render
