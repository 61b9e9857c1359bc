package server

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/ironsheep/math-analysis-mcp/internal/config"
	"github.com/ironsheep/math-analysis-mcp/internal/jsonvalue"
)

// callTool initializes s if needed, invokes name with the given arguments
// JSON and returns the tools/call result.
func callTool(t *testing.T, s *Server, name, args string) jsonvalue.Value {
	t.Helper()
	s.initialized = true

	line := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"` + name + `"`
	if args != "" {
		line += `,"arguments":` + args
	}
	line += `}}`

	resp, ok := s.HandleLine([]byte(line))
	if !ok {
		t.Fatal("expected a response")
	}
	if resp.Has("error") {
		t.Fatalf("unexpected JSON-RPC error: %s", resp)
	}
	return get(t, resp, "result")
}

// structured returns structuredContent after checking the text block
// carries the same value.
func structured(t *testing.T, result jsonvalue.Value) jsonvalue.Value {
	t.Helper()
	sc := get(t, result, "structuredContent")

	content := get(t, result, "content")
	if content.Len() != 1 {
		t.Fatalf("content: got %d items, want 1", content.Len())
	}
	item := content.Index(0)
	if typ, _ := get(t, item, "type").AsString(); typ != "text" {
		t.Errorf("content type: got %q, want text", typ)
	}
	if text, _ := get(t, item, "text").AsString(); text != sc.String() {
		t.Errorf("text block %q does not match structuredContent %s", text, sc)
	}
	return sc
}

func isError(t *testing.T, result jsonvalue.Value) bool {
	t.Helper()
	b, ok := get(t, result, "isError").AsBool()
	if !ok {
		t.Fatalf("isError is not a bool in %s", result)
	}
	return b
}

// toolError asserts the call failed at the tool level and returns the message.
func toolError(t *testing.T, result jsonvalue.Value) string {
	t.Helper()
	if !isError(t, result) {
		t.Errorf("isError: got false, want true")
	}
	msg, ok := get(t, structured(t, result), "error").AsString()
	if !ok {
		t.Fatalf("structuredContent has no error string: %s", result)
	}
	return msg
}

func floatAt(t *testing.T, v jsonvalue.Value, key string) float64 {
	t.Helper()
	f, ok := get(t, v, key).AsFloat()
	if !ok {
		t.Fatalf("%s is not a float in %s", key, v)
	}
	return f
}

func TestHandleToolsCall_Statistics(t *testing.T) {
	s := newTestServer(t, nil)
	result := callTool(t, s, "calculate_statistics", `{"data":[1,2,3,4,4]}`)

	if isError(t, result) {
		t.Fatalf("unexpected tool error: %s", result)
	}
	sc := structured(t, result)

	if got := floatAt(t, sc, "mean"); math.Abs(got-2.8) > 1e-9 {
		t.Errorf("mean: got %v, want 2.8", got)
	}
	if got := floatAt(t, sc, "median"); got != 3 {
		t.Errorf("median: got %v, want 3", got)
	}
	if got := floatAt(t, sc, "mode"); got != 4 {
		t.Errorf("mode: got %v, want 4", got)
	}
	if n, ok := get(t, sc, "count").AsInt(); !ok || n != 5 {
		t.Errorf("count: got %s, want int 5", get(t, sc, "count"))
	}
}

func TestHandleToolsCall_StatisticsErrors(t *testing.T) {
	tests := []struct {
		name string
		args string
		want string
	}{
		{"no arguments", "", "missing 'data' parameter"},
		{"missing data", `{"values":[1]}`, "missing 'data' parameter"},
		{"empty data", `{"data":[]}`, "empty"},
		{"non-numeric", `{"data":[1,"two"]}`, "invalid argument"},
		{"not an array", `{"data":"1,2,3"}`, "invalid argument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil)
			msg := toolError(t, callTool(t, s, "calculate_statistics", tt.args))
			if !strings.Contains(msg, tt.want) {
				t.Errorf("error: got %q, want it to contain %q", msg, tt.want)
			}
		})
	}
}

func TestHandleToolsCall_LegacyToolErrors(t *testing.T) {
	cfg := config.Default()
	cfg.LegacyToolErrors = true
	s := newTestServer(t, cfg)

	result := callTool(t, s, "calculate_statistics", `{"data":[]}`)
	if isError(t, result) {
		t.Error("isError: got true, want false in legacy mode")
	}
	if !get(t, result, "structuredContent").Has("error") {
		t.Errorf("payload should still carry the error: %s", result)
	}
}

func TestHandleToolsCall_MultiplyMatrices(t *testing.T) {
	s := newTestServer(t, nil)
	result := callTool(t, s, "multiply_matrices", `{"matrix_a":[[1,2],[3,4]],"matrix_b":[[5,6],[7,8]]}`)

	want := "[[19.000000,22.000000],[43.000000,50.000000]]"
	if got := structured(t, result).String(); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if isError(t, result) {
		t.Error("isError should be false")
	}
}

func TestHandleToolsCall_MultiplyMatricesErrors(t *testing.T) {
	tests := []struct {
		name string
		args string
		want string
	}{
		{"not an object", `[1]`, "invalid parameters"},
		{"missing b", `{"matrix_a":[[1]]}`, "missing matrix parameters"},
		{"mismatch", `{"matrix_a":[[1,2],[3,4]],"matrix_b":[[1,2,3]]}`, "dimension mismatch"},
		{"ragged", `{"matrix_a":[[1,2],[3]],"matrix_b":[[1],[2]]}`, "matrix_a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil)
			msg := toolError(t, callTool(t, s, "multiply_matrices", tt.args))
			if !strings.Contains(msg, tt.want) {
				t.Errorf("error: got %q, want it to contain %q", msg, tt.want)
			}
		})
	}
}

func TestHandleToolsCall_MultiplyMatrixVector(t *testing.T) {
	s := newTestServer(t, nil)
	result := callTool(t, s, "multiply_matrix_vector", `{"matrix":[[1,2],[3,4]],"vector":[1,1]}`)
	if got := structured(t, result).String(); got != "[3.000000,7.000000]" {
		t.Errorf("got %s", got)
	}

	msg := toolError(t, callTool(t, s, "multiply_matrix_vector", `{"matrix":[[1,2]]}`))
	if msg != "missing matrix or vector parameters" {
		t.Errorf("error: got %q", msg)
	}
}

func TestHandleToolsCall_PolynomialFit(t *testing.T) {
	s := newTestServer(t, nil)
	result := callTool(t, s, "polynomial_fit", `{"x_values":[0,1,2,3],"y_values":[1,3,5,7],"degree":1}`)
	sc := structured(t, result)

	coeffs := get(t, sc, "coefficients")
	if coeffs.Len() != 2 {
		t.Fatalf("coefficients: got %s", coeffs)
	}
	if c, _ := coeffs.Index(1).AsFloat(); math.Abs(c-2) > 1e-6 {
		t.Errorf("slope: got %v, want 2", c)
	}
	if d, ok := get(t, sc, "degree").AsInt(); !ok || d != 1 {
		t.Errorf("degree: got %s, want int 1", get(t, sc, "degree"))
	}
	if eq, _ := get(t, sc, "equation").AsString(); eq != "y = 2.000000x + 1.000000" {
		t.Errorf("equation: got %q", eq)
	}
}

func TestHandleToolsCall_PolynomialFitErrors(t *testing.T) {
	tests := []struct {
		name string
		args string
		want string
	}{
		{"float degree", `{"x_values":[0,1,2],"y_values":[0,1,2],"degree":1.0}`, "degree must be an integer"},
		{"string degree", `{"x_values":[0,1,2],"y_values":[0,1,2],"degree":"1"}`, "degree must be an integer"},
		{"missing degree", `{"x_values":[0,1,2],"y_values":[0,1,2]}`, "missing required parameters"},
		{"too few points", `{"x_values":[0,1],"y_values":[0,1],"degree":2}`, "insufficient data points"},
		{"length mismatch", `{"x_values":[0,1,2],"y_values":[0,1],"degree":1}`, "dimension mismatch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil)
			msg := toolError(t, callTool(t, s, "polynomial_fit", tt.args))
			if !strings.Contains(msg, tt.want) {
				t.Errorf("error: got %q, want it to contain %q", msg, tt.want)
			}
		})
	}
}

func TestHandleToolsCall_NumericalDifferentiate(t *testing.T) {
	s := newTestServer(t, nil)
	result := callTool(t, s, "numerical_differentiate", `{"y_values":[0,1,4,9,16],"step_size":1}`)

	want := `{"derivative":[1.000000,2.000000,4.000000,6.000000,7.000000],"step_size":1.000000,"points":5}`
	if got := structured(t, result).String(); got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	msg := toolError(t, callTool(t, s, "numerical_differentiate", `{"y_values":[1,2],"step_size":"big"}`))
	if msg != "step size must be a number" {
		t.Errorf("error: got %q", msg)
	}
	msg = toolError(t, callTool(t, s, "numerical_differentiate", `{"y_values":[1],"step_size":0.1}`))
	if !strings.Contains(msg, "insufficient data points") {
		t.Errorf("error: got %q", msg)
	}
}

func TestHandleToolsCall_IntegrateSimpson(t *testing.T) {
	s := newTestServer(t, nil)
	result := callTool(t, s, "integrate_simpson", `{"y_values":[3,3,3,3,3],"step_size":0.5}`)

	want := `{"integral":6.000000,"step_size":0.500000,"points":5}`
	if got := structured(t, result).String(); got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	toolError(t, callTool(t, s, "integrate_simpson", `{"y_values":[1,2,3,4],"step_size":1}`))
}

func TestHandleToolsCall_Determinant(t *testing.T) {
	s := newTestServer(t, nil)
	result := callTool(t, s, "calculate_determinant", `{"matrix":[[6,1,1],[4,-2,5],[2,8,7]]}`)

	if got := structured(t, result).String(); got != `{"determinant":-306.000000,"size":3}` {
		t.Errorf("got %s", got)
	}

	msg := toolError(t, callTool(t, s, "calculate_determinant", `{"matrix":[[1,2,3],[4,5,6]]}`))
	if !strings.Contains(msg, "not square") {
		t.Errorf("error: got %q", msg)
	}

	rows := make([]string, 11)
	for i := range rows {
		rows[i] = "[" + strings.TrimSuffix(strings.Repeat("1,", 11), ",") + "]"
	}
	msg = toolError(t, callTool(t, s, "calculate_determinant", `{"matrix":[`+strings.Join(rows, ",")+`]}`))
	if !strings.Contains(msg, "too large") {
		t.Errorf("error: got %q", msg)
	}
}

func TestHandleToolsCall_Transpose(t *testing.T) {
	s := newTestServer(t, nil)
	result := callTool(t, s, "transpose_matrix", `{"matrix":[[1,2,3],[4,5,6]]}`)

	want := "[[1.000000,4.000000],[2.000000,5.000000],[3.000000,6.000000]]"
	if got := structured(t, result).String(); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if got := structured(t, callTool(t, s, "transpose_matrix", `{"matrix":[]}`)).String(); got != "[]" {
		t.Errorf("empty: got %s, want []", got)
	}
}

func TestHandleToolsCall_DotProduct(t *testing.T) {
	s := newTestServer(t, nil)
	result := callTool(t, s, "dot_product", `{"vector_a":[1,2,3],"vector_b":[4,5,6]}`)
	if got := structured(t, result).String(); got != `{"dot_product":32.000000}` {
		t.Errorf("got %s", got)
	}

	msg := toolError(t, callTool(t, s, "dot_product", `{"vector_a":[1],"vector_b":[1,2]}`))
	if !strings.Contains(msg, "dimension mismatch") {
		t.Errorf("error: got %q", msg)
	}
}

func TestHandleToolsCall_RenderHeatmap(t *testing.T) {
	s := newTestServer(t, nil)
	result := callTool(t, s, "render_heatmap", `{"matrix":[[0,1],[2,3],[4,5]],"cell_size":4,"show_grid":true}`)
	if isError(t, result) {
		t.Fatalf("unexpected tool error: %s", result)
	}
	sc := structured(t, result)

	if w, _ := get(t, sc, "width").AsInt(); w != 8 {
		t.Errorf("width: got %d, want 8", w)
	}
	if h, _ := get(t, sc, "height").AsInt(); h != 12 {
		t.Errorf("height: got %d, want 12", h)
	}

	encoded, _ := get(t, sc, "image_base64").AsString()
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 12 {
		t.Errorf("decoded bounds: got %v, want 8x12", b)
	}
}

func TestHandleToolsCall_RenderHeatmapErrors(t *testing.T) {
	tests := []struct {
		name string
		args string
		want string
	}{
		{"missing matrix", `{}`, "missing 'matrix' parameter"},
		{"float cell size", `{"matrix":[[1]],"cell_size":2.5}`, "cell_size must be an integer"},
		{"cell size too big", `{"matrix":[[1]],"cell_size":65}`, "cell_size 65 outside"},
		{"bad color", `{"matrix":[[1]],"low_color":"navy"}`, "invalid color"},
		{"color not string", `{"matrix":[[1]],"high_color":255}`, "high_color must be a string"},
		{"grid not bool", `{"matrix":[[1]],"show_grid":"yes"}`, "show_grid must be a boolean"},
		{"empty matrix", `{"matrix":[]}`, "empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil)
			msg := toolError(t, callTool(t, s, "render_heatmap", tt.args))
			if !strings.Contains(msg, tt.want) {
				t.Errorf("error: got %q, want it to contain %q", msg, tt.want)
			}
		})
	}
}

func TestHandleToolsCall_PanickingTool(t *testing.T) {
	s := newTestServer(t, nil)
	if err := s.registry.Register(Tool{
		Name:        "explode",
		Description: "always panics",
		InputSchema: objectSchema(nil),
		Handler: func(jsonvalue.Value) (jsonvalue.Value, error) {
			panic("boom")
		},
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	msg := toolError(t, callTool(t, s, "explode", `{}`))
	if !strings.Contains(msg, "panicked") || !strings.Contains(msg, "boom") {
		t.Errorf("error: got %q", msg)
	}
}

func TestHandleToolsCall_DispatcherErrors(t *testing.T) {
	tests := []struct {
		name   string
		params string
		want   string
	}{
		{"unknown tool", `{"name":"nope"}`, "Internal error: unknown tool: nope"},
		{"missing name", `{"arguments":{}}`, "Internal error: missing or invalid tool name"},
		{"name not string", `{"name":42}`, "Internal error: missing or invalid tool name"},
		{"params not object", `[1]`, "Internal error: invalid params for tools/call"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil)
			s.initialized = true
			resp, ok := s.HandleLine([]byte(`{"jsonrpc":"2.0","id":"x","method":"tools/call","params":` + tt.params + `}`))
			if !ok {
				t.Fatal("expected a response")
			}
			if code := errorCode(t, resp); code != CodeInternalError {
				t.Errorf("code: got %d, want %d", code, CodeInternalError)
			}
			if msg := errorMessage(t, resp); msg != tt.want {
				t.Errorf("message: got %q, want %q", msg, tt.want)
			}
			if id, _ := get(t, resp, "id").AsString(); id != "x" {
				t.Errorf("id: got %q, want x", id)
			}
		})
	}

	s := newTestServer(t, nil)
	s.initialized = true
	resp, _ := s.HandleLine([]byte(`{"jsonrpc":"2.0","id":1,"method":"tools/call"}`))
	if msg := errorMessage(t, resp); msg != "Internal error: invalid params for tools/call" {
		t.Errorf("absent params: got %q", msg)
	}
}

func TestHandleToolsCall_ResultShape(t *testing.T) {
	s := newTestServer(t, nil)
	result := callTool(t, s, "dot_product", `{"vector_a":[1],"vector_b":[2]}`)

	want := `{"content":[{"type":"text","text":"{\"dot_product\":2.000000}"}],"isError":false,"structuredContent":{"dot_product":2.000000}}`
	if got := result.String(); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}
