package server

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ironsheep/math-analysis-mcp/internal/jsonvalue"
	"github.com/ironsheep/math-analysis-mcp/internal/mathops"
	"github.com/ironsheep/math-analysis-mcp/internal/render"
)

// maxDeterminantSize bounds the cofactor expansion, which costs O(n!).
const maxDeterminantSize = 10

// handleInitialize marks the session initialized and describes the server.
func (s *Server) handleInitialize() jsonvalue.Value {
	s.initialized = true

	tools := jsonvalue.Object()
	tools.Set("listChanged", jsonvalue.Bool(true))
	resources := jsonvalue.Object()
	resources.Set("subscribe", jsonvalue.Bool(false))
	resources.Set("listChanged", jsonvalue.Bool(false))
	prompts := jsonvalue.Object()
	prompts.Set("listChanged", jsonvalue.Bool(false))

	capabilities := jsonvalue.Object()
	capabilities.Set("tools", tools)
	capabilities.Set("resources", resources)
	capabilities.Set("prompts", prompts)
	capabilities.Set("experimental", jsonvalue.Object())

	info := jsonvalue.Object()
	info.Set("name", jsonvalue.String(s.cfg.Server.Name))
	info.Set("version", jsonvalue.String(s.cfg.Server.Version))

	result := jsonvalue.Object()
	result.Set("protocolVersion", jsonvalue.String(ProtocolVersion))
	result.Set("capabilities", capabilities)
	result.Set("serverInfo", info)
	return result
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList() jsonvalue.Value {
	tools := jsonvalue.Array()
	for _, t := range s.registry.Tools() {
		tools.Append(t.Definition())
	}
	result := jsonvalue.Object()
	result.Set("tools", tools)
	return result
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}],
//	  "isError": false,
//	  "structuredContent": <JSON result>
//	}
//
// A failing tool is reported in the same shape with {"error": "<message>"}
// as the result. Malformed params and unknown tool names are returned as
// errors and become JSON-RPC internal errors.
func (s *Server) handleToolsCall(logger *slog.Logger, params jsonvalue.Value) (jsonvalue.Value, error) {
	if !params.IsObject() {
		return jsonvalue.Null(), errors.New("invalid params for tools/call")
	}
	nameVal, _ := params.Get("name")
	name, ok := nameVal.AsString()
	if !ok {
		return jsonvalue.Null(), errors.New("missing or invalid tool name")
	}
	tool, ok := s.registry.Lookup(name)
	if !ok {
		return jsonvalue.Null(), fmt.Errorf("unknown tool: %s", name)
	}

	args, ok := params.Get("arguments")
	if !ok {
		args = jsonvalue.Null()
	}

	result, err := invokeTool(tool, args)
	isError := false
	if err != nil {
		logger.Info("tool failed", "tool", name, "error", err)
		result = jsonvalue.Object()
		result.Set("error", jsonvalue.String(err.Error()))
		isError = !s.cfg.LegacyToolErrors
	}
	return toolResult(result, isError), nil
}

// invokeTool runs the handler, converting a panic into an error so one bad
// tool cannot take down the session.
func invokeTool(tool Tool, args jsonvalue.Value) (result jsonvalue.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = jsonvalue.Null()
			err = fmt.Errorf("tool %s panicked: %v", tool.Name, r)
		}
	}()
	return tool.Handler(args)
}

func toolResult(result jsonvalue.Value, isError bool) jsonvalue.Value {
	item := jsonvalue.Object()
	item.Set("type", jsonvalue.String("text"))
	item.Set("text", jsonvalue.String(result.String()))

	out := jsonvalue.Object()
	out.Set("content", jsonvalue.Array(item))
	out.Set("isError", jsonvalue.Bool(isError))
	out.Set("structuredContent", result)
	return out
}

// === Argument Decoding ===

var errInvalidParameters = errors.New("invalid parameters")

// requireArgs checks that args is an object holding every key, returning
// missing as the error otherwise.
func requireArgs(args jsonvalue.Value, missing error, keys ...string) error {
	if !args.IsObject() {
		return errInvalidParameters
	}
	for _, k := range keys {
		if !args.Has(k) {
			return missing
		}
	}
	return nil
}

func vectorArg(args jsonvalue.Value, key string) (mathops.Vector, error) {
	v, _ := args.Get(key)
	vec, err := mathops.VectorFromValue(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return vec, nil
}

func matrixArg(args jsonvalue.Value, key string) (mathops.Matrix, error) {
	v, _ := args.Get(key)
	m, err := mathops.MatrixFromValue(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return m, nil
}

// === Statistics Handlers ===

func handleCalculateStatistics(args jsonvalue.Value) (jsonvalue.Value, error) {
	if !args.IsObject() || !args.Has("data") {
		return jsonvalue.Null(), errors.New("missing 'data' parameter")
	}
	data, err := vectorArg(args, "data")
	if err != nil {
		return jsonvalue.Null(), err
	}
	stats, err := mathops.Describe(data)
	if err != nil {
		return jsonvalue.Null(), err
	}
	return stats.ToValue(), nil
}

// === Linear Algebra Handlers ===

func handleMultiplyMatrices(args jsonvalue.Value) (jsonvalue.Value, error) {
	if err := requireArgs(args, errors.New("missing matrix parameters"), "matrix_a", "matrix_b"); err != nil {
		return jsonvalue.Null(), err
	}
	a, err := matrixArg(args, "matrix_a")
	if err != nil {
		return jsonvalue.Null(), err
	}
	b, err := matrixArg(args, "matrix_b")
	if err != nil {
		return jsonvalue.Null(), err
	}
	product, err := mathops.Multiply(a, b)
	if err != nil {
		return jsonvalue.Null(), err
	}
	return mathops.MatrixToValue(product), nil
}

func handleMultiplyMatrixVector(args jsonvalue.Value) (jsonvalue.Value, error) {
	if err := requireArgs(args, errors.New("missing matrix or vector parameters"), "matrix", "vector"); err != nil {
		return jsonvalue.Null(), err
	}
	m, err := matrixArg(args, "matrix")
	if err != nil {
		return jsonvalue.Null(), err
	}
	v, err := vectorArg(args, "vector")
	if err != nil {
		return jsonvalue.Null(), err
	}
	product, err := mathops.MultiplyVector(m, v)
	if err != nil {
		return jsonvalue.Null(), err
	}
	return mathops.VectorToValue(product), nil
}

func handleCalculateDeterminant(args jsonvalue.Value) (jsonvalue.Value, error) {
	if err := requireArgs(args, errors.New("missing 'matrix' parameter"), "matrix"); err != nil {
		return jsonvalue.Null(), err
	}
	m, err := matrixArg(args, "matrix")
	if err != nil {
		return jsonvalue.Null(), err
	}
	if m.Rows() > maxDeterminantSize {
		return jsonvalue.Null(), fmt.Errorf("matrix too large for determinant: %dx%d exceeds %dx%d",
			m.Rows(), m.Cols(), maxDeterminantSize, maxDeterminantSize)
	}
	det, err := mathops.Determinant(m)
	if err != nil {
		return jsonvalue.Null(), err
	}

	result := jsonvalue.Object()
	result.Set("determinant", jsonvalue.Float(det))
	result.Set("size", jsonvalue.Int(int64(m.Rows())))
	return result, nil
}

func handleTransposeMatrix(args jsonvalue.Value) (jsonvalue.Value, error) {
	if err := requireArgs(args, errors.New("missing 'matrix' parameter"), "matrix"); err != nil {
		return jsonvalue.Null(), err
	}
	m, err := matrixArg(args, "matrix")
	if err != nil {
		return jsonvalue.Null(), err
	}
	return mathops.MatrixToValue(mathops.Transpose(m)), nil
}

func handleDotProduct(args jsonvalue.Value) (jsonvalue.Value, error) {
	if err := requireArgs(args, errors.New("missing vector parameters"), "vector_a", "vector_b"); err != nil {
		return jsonvalue.Null(), err
	}
	a, err := vectorArg(args, "vector_a")
	if err != nil {
		return jsonvalue.Null(), err
	}
	b, err := vectorArg(args, "vector_b")
	if err != nil {
		return jsonvalue.Null(), err
	}
	dot, err := mathops.Dot(a, b)
	if err != nil {
		return jsonvalue.Null(), err
	}

	result := jsonvalue.Object()
	result.Set("dot_product", jsonvalue.Float(dot))
	return result, nil
}

// === Curve Fitting Handlers ===

func handlePolynomialFit(args jsonvalue.Value) (jsonvalue.Value, error) {
	if err := requireArgs(args, errors.New("missing required parameters"), "x_values", "y_values", "degree"); err != nil {
		return jsonvalue.Null(), err
	}
	x, err := vectorArg(args, "x_values")
	if err != nil {
		return jsonvalue.Null(), err
	}
	y, err := vectorArg(args, "y_values")
	if err != nil {
		return jsonvalue.Null(), err
	}
	degreeVal, _ := args.Get("degree")
	degree, ok := degreeVal.AsInt()
	if !ok {
		return jsonvalue.Null(), errors.New("degree must be an integer")
	}

	fit, err := mathops.Fit(x, y, int(degree))
	if err != nil {
		return jsonvalue.Null(), err
	}
	return fit.ToValue(), nil
}

// === Calculus Handlers ===

// sampledArgs decodes the y_values/step_size pair shared by the calculus
// tools.
func sampledArgs(args jsonvalue.Value) (mathops.Vector, float64, error) {
	if err := requireArgs(args, errors.New("missing required parameters"), "y_values", "step_size"); err != nil {
		return nil, 0, err
	}
	y, err := vectorArg(args, "y_values")
	if err != nil {
		return nil, 0, err
	}
	stepVal, _ := args.Get("step_size")
	h, ok := stepVal.Number()
	if !ok {
		return nil, 0, errors.New("step size must be a number")
	}
	return y, h, nil
}

func handleNumericalDifferentiate(args jsonvalue.Value) (jsonvalue.Value, error) {
	y, h, err := sampledArgs(args)
	if err != nil {
		return jsonvalue.Null(), err
	}
	res, err := mathops.Derive(y, h)
	if err != nil {
		return jsonvalue.Null(), err
	}
	return res.ToValue(), nil
}

func handleIntegrateSimpson(args jsonvalue.Value) (jsonvalue.Value, error) {
	y, h, err := sampledArgs(args)
	if err != nil {
		return jsonvalue.Null(), err
	}
	res, err := mathops.Integrate(y, h)
	if err != nil {
		return jsonvalue.Null(), err
	}
	return res.ToValue(), nil
}

// === Visualization Handlers ===

func handleRenderHeatmap(args jsonvalue.Value) (jsonvalue.Value, error) {
	if err := requireArgs(args, errors.New("missing 'matrix' parameter"), "matrix"); err != nil {
		return jsonvalue.Null(), err
	}
	m, err := matrixArg(args, "matrix")
	if err != nil {
		return jsonvalue.Null(), err
	}

	opts := render.DefaultHeatmapOptions()
	if v, ok := args.Get("cell_size"); ok && !v.IsNull() {
		n, isInt := v.AsInt()
		if !isInt {
			return jsonvalue.Null(), errors.New("cell_size must be an integer")
		}
		if n < 1 || n > render.MaxCellSize {
			return jsonvalue.Null(), fmt.Errorf("cell_size %d outside 1..%d", n, render.MaxCellSize)
		}
		opts.CellSize = int(n)
	}
	if v, ok := args.Get("low_color"); ok && !v.IsNull() {
		s, isStr := v.AsString()
		if !isStr {
			return jsonvalue.Null(), errors.New("low_color must be a string")
		}
		opts.LowColor = s
	}
	if v, ok := args.Get("high_color"); ok && !v.IsNull() {
		s, isStr := v.AsString()
		if !isStr {
			return jsonvalue.Null(), errors.New("high_color must be a string")
		}
		opts.HighColor = s
	}
	if v, ok := args.Get("show_grid"); ok && !v.IsNull() {
		b, isBool := v.AsBool()
		if !isBool {
			return jsonvalue.Null(), errors.New("show_grid must be a boolean")
		}
		opts.ShowGrid = b
	}

	res, err := render.Heatmap(m, opts)
	if err != nil {
		return jsonvalue.Null(), err
	}
	return res.ToValue(), nil
}
