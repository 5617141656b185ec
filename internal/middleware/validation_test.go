package middleware

import "testing"

type sampleRequest struct {
	Bill  string `validate:"required,uuid4"`
	Title string `validate:"required,max=8"`
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name       string
		req        sampleRequest
		wantErrors int
	}{
		{
			name:       "valid request",
			req:        sampleRequest{Bill: "0b26c4f3-41b1-4dcd-8e26-8b2f4e2cf151", Title: "Rent"},
			wantErrors: 0,
		},
		{
			name:       "missing everything",
			req:        sampleRequest{},
			wantErrors: 2,
		},
		{
			name:       "malformed uuid and oversized title",
			req:        sampleRequest{Bill: "nope", Title: "way too long title"},
			wantErrors: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateRequest(tt.req)
			if len(got) != tt.wantErrors {
				t.Errorf("expected %d validation errors, got %d: %+v", tt.wantErrors, len(got), got)
			}
		})
	}
}
