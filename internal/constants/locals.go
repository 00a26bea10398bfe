package constants

// Fiber locals set by the webhook handlers so the ErrorHandler can echo
// correlation fields when a handler fails after parsing.
const (
	LocalsPaymeRequestID = "paymeRequestID"
	LocalsClickRequest   = "clickRequest"
)
