package shared

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(body))
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}

	tests := []struct {
		name          string
		requestBody   string
		wantMalformed bool
		wantField     string
		wantMessage   string
	}{
		{
			name:        "valid json",
			requestBody: `{"name": "test", "age": 30}`,
		},
		{
			name:          "trailing comma",
			requestBody:   `{"name": "test", "age": 30,}`,
			wantMalformed: true,
		},
		{
			name:          "empty body",
			requestBody:   "",
			wantMalformed: true,
		},
		{
			name:        "number where a string is expected",
			requestBody: `{"name": 12}`,
			wantField:   "name",
			wantMessage: "The name field must be a string.",
		},
		{
			name:        "string where an integer is expected",
			requestBody: `{"age": "old"}`,
			wantField:   "age",
			wantMessage: "The age field must be an integer.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var target payload
			err := DecodeJSON(newJSONRequest(tc.requestBody), &target)

			switch {
			case tc.wantMalformed:
				assert.ErrorIs(t, err, ErrMalformedJSON)
			case tc.wantField != "":
				var verr *domain.ValidationErrors
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, []string{tc.wantMessage}, verr.Fields()[tc.wantField])
			default:
				require.NoError(t, err)
				assert.Equal(t, payload{Name: "test", Age: 30}, target)
			}
		})
	}
}

func TestDecodeJSONBodyTooLarge(t *testing.T) {
	body := `{"name": "` + strings.Repeat("a", maxBodyBytes) + `"}`

	var target struct {
		Name string `json:"name"`
	}
	err := DecodeJSON(newJSONRequest(body), &target)

	assert.ErrorIs(t, err, ErrBodyTooLarge)
	assert.NotErrorIs(t, err, ErrMalformedJSON)
}

func TestDecodeJSONOptionalTypeError(t *testing.T) {
	var target struct {
		Title Optional[string] `json:"title"`
	}

	err := DecodeJSON(newJSONRequest(`{"title": true}`), &target)

	var verr *domain.ValidationErrors
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"The title field must be a string."}, verr.Fields()["title"])
}

func TestOptional(t *testing.T) {
	type patch struct {
		Title       Optional[string] `json:"title"`
		Description Optional[string] `json:"description"`
	}

	tests := []struct {
		name     string
		body     string
		wantDesc Optional[string]
		title    *string
	}{
		{
			name:     "absent",
			body:     `{}`,
			wantDesc: Optional[string]{},
		},
		{
			name:     "explicit null",
			body:     `{"description": null}`,
			wantDesc: Optional[string]{Set: true, Null: true},
		},
		{
			name:     "value",
			body:     `{"description": "write docs", "title": "Docs"}`,
			wantDesc: Some("write docs"),
			title:    func() *string { s := "Docs"; return &s }(),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var p patch
			require.NoError(t, DecodeJSON(newJSONRequest(tc.body), &p))
			assert.Equal(t, tc.wantDesc, p.Description)
			assert.Equal(t, tc.title, p.Title.Ptr())
		})
	}
}

func TestOptionalPtr(t *testing.T) {
	assert.Nil(t, Optional[string]{}.Ptr())
	assert.Nil(t, Optional[string]{Set: true, Null: true}.Ptr())

	o := Some("x")
	p := o.Ptr()
	require.NotNil(t, p)
	*p = "y"
	assert.Equal(t, "x", o.Value)
}

type signupRequest struct {
	Name     string `json:"name"      validate:"required"`
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=8,max=72"`
	Nickname string `json:"nick_name" validate:"omitempty,max=5"`
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name   string
		req    signupRequest
		fields map[string][]string
	}{
		{
			name: "valid",
			req:  signupRequest{Name: "Ada", Email: "ada@example.com", Password: "password123"},
		},
		{
			name: "missing fields",
			req:  signupRequest{},
			fields: map[string][]string{
				"name":     {"The name field is required."},
				"email":    {"The email field is required."},
				"password": {"The password field is required."},
			},
		},
		{
			name: "bad formats",
			req:  signupRequest{Name: "Ada", Email: "nope", Password: "short", Nickname: "toolong"},
			fields: map[string][]string{
				"email":     {"The email field must be a valid email address."},
				"password":  {"The password field must be at least 8 characters."},
				"nick_name": {"The nick name field must not be greater than 5 characters."},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRequest(tc.req)
			if tc.fields == nil {
				assert.NoError(t, err)
				return
			}

			var verr *domain.ValidationErrors
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.fields, verr.Fields())
		})
	}
}

type selfValidating struct{ err error }

func (s selfValidating) Validate() error { return s.err }

func TestValidateRequestUsesValidateMethod(t *testing.T) {
	want := errors.New("custom")
	assert.Equal(t, want, ValidateRequest(selfValidating{err: want}))
	assert.NoError(t, ValidateRequest(selfValidating{}))
}
