package request

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type sample struct {
	Name  string   `json:"name" validate:"required,max=5"`
	Tags  []string `json:"tags" validate:"required,min=1,dive,required"`
	Day   string   `json:"day,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Count int      `json:"count" validate:"gt=0"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantErr    error
		wantFields map[string]string
	}{
		{
			name: "valid",
			body: `{"name":"abc","tags":["x"],"day":"2024-05-01","count":1}`,
		},
		{
			name:    "malformed json",
			body:    `{"name":`,
			wantErr: ErrMalformedBody,
		},
		{
			name:    "unknown field",
			body:    `{"name":"abc","tags":["x"],"count":1,"extra":true}`,
			wantErr: ErrMalformedBody,
		},
		{
			name: "field errors use json names",
			body: `{"name":"toolong","tags":["x",""],"day":"May 1","count":0}`,
			wantFields: map[string]string{
				"name":    "must not exceed 5 characters",
				"tags[1]": "is required",
				"day":     "must be a date formatted as 2006-01-02",
				"count":   "must be greater than 0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst sample
			err := Decode(r, &dst)

			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Decode() error = %v, want %v", err, tt.wantErr)
				}
			case tt.wantFields != nil:
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("Decode() error = %v, want ValidationError", err)
				}
				got := make(map[string]string, len(verr.Fields))
				for _, f := range verr.Fields {
					got[f.Field] = f.Message
				}
				for field, msg := range tt.wantFields {
					if got[field] != msg {
						t.Errorf("field %s = %q, want %q", field, got[field], msg)
					}
				}
			default:
				if err != nil {
					t.Fatalf("Decode() unexpected error = %v", err)
				}
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, ErrMalformedBody)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "BAD_REQUEST") {
		t.Errorf("malformed body -> %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	WriteError(rec, &ValidationError{})
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "VALIDATION_FAILED") {
		t.Errorf("validation error -> %d %s", rec.Code, rec.Body.String())
	}
}
