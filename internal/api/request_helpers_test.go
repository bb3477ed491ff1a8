package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithParam(key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	req := httptest.NewRequest(http.MethodGet, "/api/tasks/"+value, nil)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetPathID(t *testing.T) {
	tests := []struct {
		value   string
		want    int64
		wantErr bool
	}{
		{value: "1", want: 1},
		{value: "9223372036854775807", want: 9223372036854775807},
		{value: "", wantErr: true},
		{value: "0", wantErr: true},
		{value: "-4", wantErr: true},
		{value: "abc", wantErr: true},
		{value: "1.5", wantErr: true},
		{value: "9223372036854775808", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			id, err := getPathID(requestWithParam("id", tc.value), "id")
			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, id)
		})
	}
}

func TestHandlePathIDWritesNotFound(t *testing.T) {
	rec := httptest.NewRecorder()

	_, ok := handlePathID(rec, requestWithParam("id", "abc"), "id", nil)

	assert.False(t, ok)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, MsgTaskNotFound, decodeError(t, rec).Message)
}
