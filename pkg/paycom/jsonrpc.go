package paycom

import "encoding/json"

const Version = "2.0"

const (
	MethodCheckPerformTransaction = "CheckPerformTransaction"
	MethodCreateTransaction       = "CreateTransaction"
	MethodPerformTransaction      = "PerformTransaction"
	MethodCheckTransaction        = "CheckTransaction"
	MethodCancelTransaction       = "CancelTransaction"
	MethodGetStatement            = "GetStatement"
)

// Request is the merchant API envelope. ID stays nil when the caller omitted it
// so that error replies echo "id": null.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *int64          `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type Response struct {
	JSONRPC string `json:"jsonrpc"`
	ID      *int64 `json:"id"`
	Result  any    `json:"result"`
}

type ErrorResponse struct {
	JSONRPC string `json:"jsonrpc"`
	ID      *int64 `json:"id"`
	Error   Error  `json:"error"`
}

func NewResponse(id *int64, result any) Response {
	return Response{JSONRPC: Version, ID: id, Result: result}
}

func NewErrorResponse(id *int64, err Error) ErrorResponse {
	return ErrorResponse{JSONRPC: Version, ID: id, Error: err}
}
