package constants_test

import (
	"testing"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/constants"
	"github.com/stretchr/testify/assert"
)

func TestGetErrorMessage(t *testing.T) {
	assert.Equal(t, constants.ErrMsgOrderOnProcess, constants.GetErrorMessage(constants.ErrCodeOrderOnProcess))
	assert.Equal(t, constants.ErrMsgInternalError, constants.GetErrorMessage("SOMETHING_ELSE"))
}

func TestGetHTTPStatus(t *testing.T) {
	testCases := []struct {
		code     string
		expected int
	}{
		{constants.ErrCodeInvalidRequestBody, 400},
		{constants.ErrCodeUnauthorized, 401},
		{constants.ErrCodeOrderNotFound, 404},
		{constants.ErrCodeOrderOnProcess, 409},
		{constants.ErrCodeInternalError, 500},
		{"UNKNOWN", 500},
	}

	for _, tc := range testCases {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.expected, constants.GetHTTPStatus(tc.code))
		})
	}
}
