package constants

const (
	ErrCodeOrderNotFound       = "ORDER_NOT_FOUND"
	ErrCodeInvalidAmount       = "INVALID_AMOUNT"
	ErrCodeTransactionNotFound = "TRANSACTION_NOT_FOUND"
	ErrCodeUnableToPerform     = "UNABLE_TO_PERFORM"
	ErrCodeOrderOnProcess      = "ORDER_ON_PROCESS"
	ErrCodeAlreadyPaid         = "ALREADY_PAID"
	ErrCodeTransactionCanceled = "TRANSACTION_CANCELED"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeSignCheckFailed     = "SIGN_CHECK_FAILED"
	ErrCodeMethodNotFound      = "METHOD_NOT_FOUND"
	ErrCodeActionNotFound      = "ACTION_NOT_FOUND"
	ErrCodeInvalidParams       = "INVALID_PARAMS"
	ErrCodeUnsupportedGateway  = "UNSUPPORTED_GATEWAY"
	ErrCodeInternalError       = "INTERNAL_ERROR"
	ErrCodeInvalidRequestBody  = "INVALID_REQUEST_BODY"
)

const (
	ErrMsgOrderNotFound       = "order not found"
	ErrMsgInvalidAmount       = "invalid amount"
	ErrMsgTransactionNotFound = "transaction not found"
	ErrMsgUnableToPerform     = "unable to perform operation"
	ErrMsgOrderOnProcess      = "another payment for this order is in process"
	ErrMsgAlreadyPaid         = "transaction already paid"
	ErrMsgTransactionCanceled = "transaction canceled"
	ErrMsgUnauthorized        = "unauthorized"
	ErrMsgSignCheckFailed     = "sign check failed"
	ErrMsgMethodNotFound      = "method not found"
	ErrMsgActionNotFound      = "action not found"
	ErrMsgInvalidParams       = "invalid params"
	ErrMsgUnsupportedGateway  = "unsupported gateway"
	ErrMsgInternalError       = "Internal server error"
	ErrMsgInvalidRequestBody  = "failed to parse request body"
)

var errorMessages = map[string]string{
	ErrCodeOrderNotFound:       ErrMsgOrderNotFound,
	ErrCodeInvalidAmount:       ErrMsgInvalidAmount,
	ErrCodeTransactionNotFound: ErrMsgTransactionNotFound,
	ErrCodeUnableToPerform:     ErrMsgUnableToPerform,
	ErrCodeOrderOnProcess:      ErrMsgOrderOnProcess,
	ErrCodeAlreadyPaid:         ErrMsgAlreadyPaid,
	ErrCodeTransactionCanceled: ErrMsgTransactionCanceled,
	ErrCodeUnauthorized:        ErrMsgUnauthorized,
	ErrCodeSignCheckFailed:     ErrMsgSignCheckFailed,
	ErrCodeMethodNotFound:      ErrMsgMethodNotFound,
	ErrCodeActionNotFound:      ErrMsgActionNotFound,
	ErrCodeInvalidParams:       ErrMsgInvalidParams,
	ErrCodeUnsupportedGateway:  ErrMsgUnsupportedGateway,
	ErrCodeInternalError:       ErrMsgInternalError,
	ErrCodeInvalidRequestBody:  ErrMsgInvalidRequestBody,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

// GetHTTPStatus is used by the non-webhook endpoints. Webhooks always answer 200.
func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeInvalidRequestBody, ErrCodeInvalidParams, ErrCodeInvalidAmount, ErrCodeUnsupportedGateway:
		return 400
	case ErrCodeUnauthorized, ErrCodeSignCheckFailed:
		return 401
	case ErrCodeOrderNotFound, ErrCodeTransactionNotFound, ErrCodeMethodNotFound, ErrCodeActionNotFound:
		return 404
	case ErrCodeOrderOnProcess, ErrCodeUnableToPerform, ErrCodeAlreadyPaid, ErrCodeTransactionCanceled:
		return 409
	default:
		return 500
	}
}
