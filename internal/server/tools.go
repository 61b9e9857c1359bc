package server

import (
	"github.com/ironsheep/math-analysis-mcp/internal/jsonvalue"
	"github.com/ironsheep/math-analysis-mcp/internal/render"
)

// GetToolDefinitions returns all available tools in listing order.
func GetToolDefinitions() []Tool {
	return []Tool{
		// Statistics
		{
			Name:        "calculate_statistics",
			Description: "Calculate comprehensive statistics (mean, median, mode, standard deviation, etc.) for a dataset",
			InputSchema: objectSchema([]string{"data"},
				vectorProp("data", "Numeric dataset to summarize"),
			),
			Handler: handleCalculateStatistics,
		},

		// Linear Algebra
		{
			Name:        "multiply_matrices",
			Description: "Multiply two matrices using standard matrix multiplication",
			InputSchema: objectSchema([]string{"matrix_a", "matrix_b"},
				matrixProp("matrix_a", "Left operand, rows x n"),
				matrixProp("matrix_b", "Right operand, n x cols"),
			),
			Handler: handleMultiplyMatrices,
		},
		{
			Name:        "multiply_matrix_vector",
			Description: "Multiply a matrix by a vector",
			InputSchema: objectSchema([]string{"matrix", "vector"},
				matrixProp("matrix", "Matrix with as many columns as the vector has entries"),
				vectorProp("vector", "Column vector"),
			),
			Handler: handleMultiplyMatrixVector,
		},
		{
			Name:        "calculate_determinant",
			Description: "Compute the determinant of a square matrix by cofactor expansion",
			InputSchema: objectSchema([]string{"matrix"},
				matrixProp("matrix", "Square matrix, at most 10x10"),
			),
			Handler: handleCalculateDeterminant,
		},
		{
			Name:        "transpose_matrix",
			Description: "Transpose a matrix, swapping rows and columns",
			InputSchema: objectSchema([]string{"matrix"},
				matrixProp("matrix", "Matrix to transpose"),
			),
			Handler: handleTransposeMatrix,
		},
		{
			Name:        "dot_product",
			Description: "Compute the dot product of two vectors of equal length",
			InputSchema: objectSchema([]string{"vector_a", "vector_b"},
				vectorProp("vector_a", "First vector"),
				vectorProp("vector_b", "Second vector"),
			),
			Handler: handleDotProduct,
		},

		// Curve Fitting
		{
			Name:        "polynomial_fit",
			Description: "Fit a polynomial of specified degree to data points using least squares",
			InputSchema: objectSchema([]string{"x_values", "y_values", "degree"},
				vectorProp("x_values", "Sample x coordinates"),
				vectorProp("y_values", "Sample y coordinates, same length as x_values"),
				scalarProp("degree", "integer", "Polynomial degree; needs at least degree+1 points"),
			),
			Handler: handlePolynomialFit,
		},

		// Calculus
		{
			Name:        "numerical_differentiate",
			Description: "Compute numerical derivative of discrete data points",
			InputSchema: objectSchema([]string{"y_values", "step_size"},
				vectorProp("y_values", "Equally spaced samples"),
				scalarProp("step_size", "number", "Spacing between samples"),
			),
			Handler: handleNumericalDifferentiate,
		},
		{
			Name:        "integrate_simpson",
			Description: "Integrate equally spaced samples with composite Simpson's rule",
			InputSchema: objectSchema([]string{"y_values", "step_size"},
				vectorProp("y_values", "Equally spaced samples; odd count, at least 3"),
				scalarProp("step_size", "number", "Spacing between samples"),
			),
			Handler: handleIntegrateSimpson,
		},

		// Visualization
		{
			Name:        "render_heatmap",
			Description: "Render a matrix as a heatmap and return it as a base64-encoded PNG. Use this to see the structure of a matrix at a glance.",
			InputSchema: objectSchema([]string{"matrix"},
				matrixProp("matrix", "Matrix to render; row 0 is drawn at the top"),
				withDefault(scalarProp("cell_size", "integer", "Pixels per cell, 1-64 (default 16)"),
					jsonvalue.Int(render.DefaultCellSize)),
				withDefault(scalarProp("low_color", "string", "Hex color for the minimum value"),
					jsonvalue.String(render.DefaultLowColor)),
				withDefault(scalarProp("high_color", "string", "Hex color for the maximum value"),
					jsonvalue.String(render.DefaultHighColor)),
				withDefault(scalarProp("show_grid", "boolean", "Draw lines between cells"),
					jsonvalue.Bool(false)),
			),
			Handler: handleRenderHeatmap,
		},
	}
}

type schemaProp struct {
	name   string
	schema jsonvalue.Value
}

func objectSchema(required []string, props ...schemaProp) jsonvalue.Value {
	properties := jsonvalue.Object()
	for _, p := range props {
		properties.Set(p.name, p.schema)
	}

	schema := jsonvalue.Object()
	schema.Set("type", jsonvalue.String("object"))
	schema.Set("properties", properties)
	schema.Set("required", jsonvalue.FromStrings(required))
	return schema
}

func scalarProp(name, typ, description string) schemaProp {
	s := jsonvalue.Object()
	s.Set("type", jsonvalue.String(typ))
	s.Set("description", jsonvalue.String(description))
	return schemaProp{name: name, schema: s}
}

func withDefault(p schemaProp, def jsonvalue.Value) schemaProp {
	p.schema.Set("default", def)
	return p
}

func numberArray() jsonvalue.Value {
	items := jsonvalue.Object()
	items.Set("type", jsonvalue.String("number"))

	s := jsonvalue.Object()
	s.Set("type", jsonvalue.String("array"))
	s.Set("items", items)
	return s
}

func vectorProp(name, description string) schemaProp {
	s := numberArray()
	s.Set("description", jsonvalue.String(description))
	return schemaProp{name: name, schema: s}
}

func matrixProp(name, description string) schemaProp {
	s := jsonvalue.Object()
	s.Set("type", jsonvalue.String("array"))
	s.Set("items", numberArray())
	s.Set("description", jsonvalue.String(description))
	return schemaProp{name: name, schema: s}
}
