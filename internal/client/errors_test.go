package client

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestStatusError(t *testing.T) {
	tests := []struct {
		status  int
		body    string
		kind    error
		message string
	}{
		{401, `{"status":401,"message":"Invalid or expired token"}`, ErrUnauthorized, "Invalid or expired token"},
		{403, `{"error":"Forbidden"}`, ErrForbidden, "Forbidden"},
		{404, `{"message":"Product not found"}`, ErrNotFound, "Product not found"},
		{409, `{"message":"SKU already exists"}`, ErrValidation, "SKU already exists"},
		{422, ``, ErrValidation, connectivityMessage},
		{502, `<html>bad gateway</html>`, ErrServer, connectivityMessage},
		{302, `{}`, ErrUnexpectedStatus, connectivityMessage},
	}
	for _, tt := range tests {
		err := statusError(tt.status, []byte(tt.body))
		assert.ErrorIs(t, err, tt.kind, "status %d", tt.status)
		assert.Equal(t, tt.message, err.Error(), "status %d", tt.status)
		assert.Equal(t, tt.status, err.StatusCode)
	}
}

func TestErrorKindsDoNotCross(t *testing.T) {
	err := error(statusError(404, nil))
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.False(t, errors.Is(err, ErrConnectivity))

	cause := errors.New("dial refused")
	err = connectivity(cause)
	assert.ErrorIs(t, err, ErrConnectivity)
	assert.ErrorIs(t, err, cause)
}
