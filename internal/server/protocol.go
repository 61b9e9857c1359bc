package server

import (
	"errors"

	"github.com/ironsheep/math-analysis-mcp/internal/jsonvalue"
)

// ProtocolVersion is the MCP revision reported by initialize.
const ProtocolVersion = "2024-11-05"

// JSON-RPC error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeNotInitialized = -32002
	CodeInternalError  = -32603
)

// Method is an MCP method name.
type Method string

// Supported methods. Anything else is answered with CodeMethodNotFound.
const (
	MethodInitialize  Method = "initialize"
	MethodInitialized Method = "notifications/initialized"
	MethodPing        Method = "ping"
	MethodToolsList   Method = "tools/list"
	MethodToolsCall   Method = "tools/call"
)

// RPCError is a JSON-RPC error object.
type RPCError struct {
	Code    int
	Message string
}

func (e *RPCError) Error() string { return e.Message }

var (
	errParse          = &RPCError{Code: CodeParseError, Message: "Parse error"}
	errInvalidRequest = &RPCError{Code: CodeInvalidRequest, Message: "Invalid Request"}
	errMethodNotFound = &RPCError{Code: CodeMethodNotFound, Message: "Method not found"}
	errNotInitialized = &RPCError{Code: CodeNotInitialized, Message: "Server not initialized"}
)

// toRPCError maps any error to the JSON-RPC error sent on the wire. Errors
// that are not already an *RPCError become internal errors.
func toRPCError(err error) *RPCError {
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	return &RPCError{Code: CodeInternalError, Message: "Internal error: " + err.Error()}
}

// request is a validated incoming message.
type request struct {
	id     jsonvalue.Value
	hasID  bool
	method Method
	params jsonvalue.Value
}

// decodeRequest checks the envelope shape. The returned request carries the
// id even when validation fails, so the error can be correlated.
func decodeRequest(msg jsonvalue.Value) (*request, error) {
	req := &request{id: jsonvalue.Null(), params: jsonvalue.Null()}
	if !msg.IsObject() {
		return req, errInvalidRequest
	}

	if id, ok := msg.Get("id"); ok {
		req.id = id
		req.hasID = true
	}

	version, ok := msg.Get("jsonrpc")
	if s, isStr := version.AsString(); !ok || !isStr || s != "2.0" {
		return req, errInvalidRequest
	}

	method, ok := msg.Get("method")
	name, isStr := method.AsString()
	if !ok || !isStr {
		return req, errInvalidRequest
	}
	req.method = Method(name)

	if params, ok := msg.Get("params"); ok {
		req.params = params
	}
	return req, nil
}

func successResponse(id, result jsonvalue.Value) jsonvalue.Value {
	resp := jsonvalue.Object()
	resp.Set("jsonrpc", jsonvalue.String("2.0"))
	resp.Set("id", id)
	resp.Set("result", result)
	return resp
}

func errorResponse(id jsonvalue.Value, e *RPCError) jsonvalue.Value {
	body := jsonvalue.Object()
	body.Set("code", jsonvalue.Int(int64(e.Code)))
	body.Set("message", jsonvalue.String(e.Message))

	resp := jsonvalue.Object()
	resp.Set("jsonrpc", jsonvalue.String("2.0"))
	resp.Set("id", id)
	resp.Set("error", body)
	return resp
}
