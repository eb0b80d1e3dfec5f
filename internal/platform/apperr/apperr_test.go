// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-reader/internal/platform/apperr"
)

/*
TestAppError_StatusMapping verifies each constructor maps to the documented status and code.
*/
func TestAppError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		status int
		code   string
	}{
		{"not_found", apperr.NotFound("Title"), http.StatusNotFound, apperr.CodeNotFound},
		{"invalid_filter", apperr.InvalidFilter(), http.StatusBadRequest, apperr.CodeInvalidFilter},
		{"request_failed", apperr.RequestFailed(errors.New("boom")), http.StatusBadGateway, apperr.CodeRequestFailed},
		{"content_unavailable", apperr.ContentUnavailable("Chapter not found"), http.StatusNotFound, apperr.CodeContentUnavailable},
		{"internal", apperr.Internal(errors.New("boom")), http.StatusInternalServerError, apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

/*
TestAppError_Unwrap checks that wrapped causes stay reachable and codes survive wrapping.
*/
func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := fmt.Errorf("catalog: %w", apperr.RequestFailed(cause))

	require.True(t, apperr.IsAppError(wrapped))
	assert.ErrorIs(t, wrapped, cause)
	assert.True(t, apperr.HasCode(wrapped, apperr.CodeRequestFailed))
	assert.False(t, apperr.HasCode(cause, apperr.CodeRequestFailed))
	assert.Equal(t, "Title not found", apperr.NotFound("Title").Error())
}
