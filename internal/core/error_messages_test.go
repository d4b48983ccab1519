package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name: "nil error returns empty",
			err:  nil,
		},
		{
			name:        "too large",
			err:         fmt.Errorf("read big.csv: %w", ErrFileTooLarge),
			wantCode:    "FILE001",
			wantMessage: "File exceeds the maximum upload size",
		},
		{
			name:        "invalid csv",
			err:         fmt.Errorf("%w: expected 2 fields in line 3, saw 4", ErrInvalidCSV),
			wantCode:    "FILE002",
			wantMessage: "File is not a valid CSV",
		},
		{
			name:        "no file provided",
			err:         ErrNoFile,
			wantCode:    "FILE004",
			wantMessage: "No file provided",
		},
		{
			name:        "no file selected",
			err:         ErrNoFileSelected,
			wantCode:    "FILE004",
			wantMessage: "No file selected",
		},
		{
			name:        "excel before generic unsupported",
			err:         ErrExcelFile,
			wantCode:    "FILE006",
			wantMessage: "Excel files (.xlsx/.xls) are not supported. Please export your data as CSV first.",
		},
		{
			name:        "unsupported extension",
			err:         fmt.Errorf("%w: %q", ErrUnsupportedFormat, ".txt"),
			wantCode:    "FILE006",
			wantMessage: "Only CSV and JSON files are supported.",
		},
		{
			name:        "invalid json",
			err:         fmt.Errorf("%w: unexpected EOF", ErrInvalidJSON),
			wantCode:    "FILE007",
			wantMessage: "File is not a valid JSON array of records",
		},
		{
			name:        "not found",
			err:         fmt.Errorf("%w: abc12345", ErrNotFound),
			wantCode:    "SUB001",
			wantMessage: "Submission not found",
		},
		{
			name:        "busy",
			err:         ErrTooManyUploads,
			wantCode:    "UPL002",
			wantMessage: "System is busy validating other submissions",
		},
		{
			name:        "cancelled",
			err:         context.Canceled,
			wantCode:    "UPL004",
			wantMessage: "Request was cancelled",
		},
		{
			name:        "deadline",
			err:         context.DeadlineExceeded,
			wantCode:    "UPL005",
			wantMessage: "Request timed out",
		},
		{
			name:        "unauthorized",
			err:         ErrUnauthorized,
			wantCode:    "AUTH001",
			wantMessage: "Invalid or missing API key",
		},
		{
			name:        "connection refused",
			err:         errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"),
			wantCode:    "DB004",
			wantMessage: "Unable to connect to the report store",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("RATE LIMIT exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(ErrNoFile)
	want := `No file provided (Code: FILE004). Attach the submission in the "file" form field`
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error is not user facing", nil, false},
		{"known error is user facing", ErrEmptyTable, true},
		{"unknown error is not user facing", errors.New("random internal error xyz"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	if got := NewUserError(nil); got != nil {
		t.Errorf("NewUserError(nil) = %v, want nil", got)
	}

	techErr := fmt.Errorf("%w: 1a2b3c4d", ErrNotFound)
	userErr := NewUserError(techErr)

	if userErr.Error() != "Submission not found" {
		t.Errorf("Error() = %q, want user message", userErr.Error())
	}
	if !errors.Is(userErr, ErrNotFound) {
		t.Error("Unwrap() should expose the original error")
	}
}
