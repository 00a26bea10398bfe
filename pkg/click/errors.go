package click

const (
	CodeSuccess             = 0
	CodeSignCheckFailed     = -1
	CodeIncorrectAmount     = -2
	CodeActionNotFound      = -3
	CodeAlreadyPaid         = -4
	CodeUserNotFound        = -5
	CodeTransactionNotFound = -6
	CodeFailedToUpdateUser  = -7
	CodeBadRequest          = -8
	CodeTransactionCanceled = -9
)

var notes = map[int]string{
	CodeSuccess:             "Success",
	CodeSignCheckFailed:     "SIGN CHECK FAILED!",
	CodeIncorrectAmount:     "Incorrect parameter amount",
	CodeActionNotFound:      "Action not found",
	CodeAlreadyPaid:         "Already paid",
	CodeUserNotFound:        "User does not exist",
	CodeTransactionNotFound: "Transaction does not exist",
	CodeFailedToUpdateUser:  "Failed to update user",
	CodeBadRequest:          "Error in request from click",
	CodeTransactionCanceled: "Transaction cancelled",
}

// Note returns the error_note Click expects for code.
func Note(code int) string {
	if note, ok := notes[code]; ok {
		return note
	}

	return notes[CodeBadRequest]
}
