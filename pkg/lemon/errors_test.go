package lemon_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
)

func TestParseErrorCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw      string
		expected lemon.ErrorCode
	}{
		{"unauthorized", lemon.ErrorCodeUnauthorized},
		{"token_invalid", lemon.ErrorCodeTokenInvalid},
		{"pin_invalid", lemon.ErrorCodePinInvalid},
		{"order_not_inactive", lemon.ErrorCodeOrderNotInactive},
		{"plan_not_allowed", lemon.ErrorCodePlanNotAllowed},
		{"something_new", lemon.ErrorCodeUnknown},
		{"", lemon.ErrorCodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, lemon.ParseErrorCode(tt.raw))
		})
	}
}

func TestErrorCode_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var decoded struct {
		Codes []lemon.ErrorCode `json:"codes"`
	}

	err := json.Unmarshal([]byte(`{"codes":["pin_invalid","brand_new_code","plan_not_allowed"]}`), &decoded)
	require.NoError(t, err)
	assert.Equal(t, []lemon.ErrorCode{
		lemon.ErrorCodePinInvalid,
		lemon.ErrorCodeUnknown,
		lemon.ErrorCodePlanNotAllowed,
	}, decoded.Codes)

	var code lemon.ErrorCode

	err = json.Unmarshal([]byte(`42`), &code)
	require.Error(t, err)
}

func TestParseErrorPayload(t *testing.T) {
	t.Parallel()

	t.Run("structured", func(t *testing.T) {
		t.Parallel()

		apiErr, err := lemon.ParseErrorPayload([]byte(`{"time":"2021-11-22T15:37:56.520+00:00","mode":"paper",`+
			`"status":"error","error_code":"pin_invalid","error_message":"Invalid PIN"}`), 400)
		require.NoError(t, err)

		assert.Equal(t, 400, apiErr.StatusCode)
		assert.Equal(t, lemon.ErrorCodePinInvalid, apiErr.Code)
		assert.Equal(t, "pin_invalid", apiErr.RawCode)
		assert.Equal(t, "Invalid PIN", apiErr.Message)
		assert.Equal(t, lemon.ModePaper, apiErr.Mode)
		assert.Equal(t, 2021, apiErr.Time.Year())
		assert.Equal(t, "pin_invalid: Invalid PIN (status: 400)", apiErr.Error())
	})

	t.Run("unknown code keeps raw value", func(t *testing.T) {
		t.Parallel()

		apiErr, err := lemon.ParseErrorPayload([]byte(`{"error_code":"brand_new","error_message":"x"}`), 409)
		require.NoError(t, err)

		assert.Equal(t, lemon.ErrorCodeUnknown, apiErr.Code)
		assert.Equal(t, "brand_new", apiErr.RawCode)
	})

	t.Run("epoch millis time", func(t *testing.T) {
		t.Parallel()

		apiErr, err := lemon.ParseErrorPayload([]byte(`{"time":1637595476520,"error_code":"internal_error"}`), 500)
		require.NoError(t, err)

		assert.Equal(t, time.UnixMilli(1637595476520).UTC(), apiErr.Time)
	})

	t.Run("unreadable time is dropped", func(t *testing.T) {
		t.Parallel()

		apiErr, err := lemon.ParseErrorPayload([]byte(`{"time":"yesterday","error_code":"rate_limit_exceeded"}`), 429)
		require.NoError(t, err)

		assert.True(t, apiErr.Time.IsZero())
		assert.Equal(t, lemon.ErrorCodeRateLimitExceeded, apiErr.Code)
	})

	t.Run("not json", func(t *testing.T) {
		t.Parallel()

		_, err := lemon.ParseErrorPayload([]byte(`<html>bad gateway</html>`), 502)
		require.ErrorIs(t, err, lemon.ErrUnstructuredErrorBody)
	})

	t.Run("json without error code", func(t *testing.T) {
		t.Parallel()

		_, err := lemon.ParseErrorPayload([]byte(`{"message":"nope"}`), 404)
		require.ErrorIs(t, err, lemon.ErrUnstructuredErrorBody)
	})
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	wrap := func(code lemon.ErrorCode) error {
		return fmt.Errorf("activating order: %w", &lemon.APIError{Code: code, RawCode: string(code)})
	}

	assert.True(t, lemon.IsUnauthorized(wrap(lemon.ErrorCodeUnauthorized)))
	assert.True(t, lemon.IsUnauthorized(wrap(lemon.ErrorCodeTokenInvalid)))
	assert.True(t, lemon.IsRateLimitExceeded(wrap(lemon.ErrorCodeRateLimitExceeded)))
	assert.True(t, lemon.IsPinError(wrap(lemon.ErrorCodePinMissing)))
	assert.True(t, lemon.IsPinError(wrap(lemon.ErrorCodePinNotSet)))
	assert.True(t, lemon.IsInsufficientFunds(wrap(lemon.ErrorCodeInsufficientAccountBalance)))
	assert.False(t, lemon.IsPinError(wrap(lemon.ErrorCodeTradingBlocked)))
	assert.False(t, lemon.IsUnauthorized(errors.New("plain")))
	assert.False(t, lemon.HasErrorCode(nil, lemon.ErrorCodeUnknown))

	apiErr, ok := lemon.AsAPIError(wrap(lemon.ErrorCodeTradingBlocked))
	require.True(t, ok)
	assert.Equal(t, lemon.ErrorCodeTradingBlocked, apiErr.Code)
}

func TestTransportError(t *testing.T) {
	t.Parallel()

	t.Run("status only", func(t *testing.T) {
		t.Parallel()

		err := &lemon.TransportError{Method: "GET", URL: "https://data.lemon.markets/v1/venues", StatusCode: 502}

		assert.Equal(t, "GET https://data.lemon.markets/v1/venues: unexpected status 502 Bad Gateway", err.Error())
		assert.True(t, lemon.IsTransportError(fmt.Errorf("listing venues: %w", err)))
		assert.False(t, lemon.IsDecodeError(err))
	})

	t.Run("wrapped cause", func(t *testing.T) {
		t.Parallel()

		err := &lemon.TransportError{Method: "GET", URL: "u", Err: context.DeadlineExceeded}

		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Contains(t, err.Error(), "deadline exceeded")
	})
}

func TestDecodeError(t *testing.T) {
	t.Parallel()

	cause := errors.New("unexpected end of JSON input")
	err := fmt.Errorf("getting account: %w", &lemon.DecodeError{StatusCode: 200, Err: cause})

	assert.True(t, lemon.IsDecodeError(err))
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "decoding response (status 200)")
}
