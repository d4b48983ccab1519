package core

// error_messages.go maps technical errors to messages a submitter can act
// on. Each message carries a code that can be quoted to support staff.
//
//	FILE001-FILE007  upload and parsing problems
//	SUB001           unknown submission id
//	UPL002-UPL005    capacity, cancellation, timeouts
//	AUTH001          missing or wrong admin key
//	RATE001          request rate exceeded
//	DB004-DB006      report store connectivity
//	ERR000           anything unrecognised; check the server log
//
// Validation findings never pass through here. They are part of the report.

import (
	"errors"
	"fmt"
	"strings"
)

// Submission and admin errors. File errors live in ingest.go.
var (
	ErrNotFound       = errors.New("submission not found")
	ErrNoFile         = errors.New("no file provided")
	ErrNoFileSelected = errors.New("no file selected")
	ErrUnauthorized   = errors.New("invalid api key")
)

// UserMessage is the client-facing form of an error.
type UserMessage struct {
	Message string `json:"message"`
	Action  string `json:"action"`
	Code    string `json:"code"`
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns is matched in order against the lowercased error text.
// More specific patterns come first.
var errorPatterns = []errorPattern{
	{"file too large", UserMessage{
		Message: "File exceeds the maximum upload size",
		Action:  "Split the submission into smaller files",
		Code:    "FILE001",
	}},
	{"invalid csv", UserMessage{
		Message: "File is not a valid CSV",
		Action:  "Ensure the file is comma-separated with a single header row",
		Code:    "FILE002",
	}},
	{"encoding", UserMessage{
		Message: "File contains invalid characters",
		Action:  "Save the file with UTF-8 encoding",
		Code:    "FILE003",
	}},
	{"no file provided", UserMessage{
		Message: "No file provided",
		Action:  "Attach the submission in the \"file\" form field",
		Code:    "FILE004",
	}},
	{"no file selected", UserMessage{
		Message: "No file selected",
		Action:  "Choose a CSV or JSON file to submit",
		Code:    "FILE004",
	}},
	{"empty file", UserMessage{
		Message: "File is empty. Please upload a file with data rows.",
		Action:  "Check that the export contains data rows",
		Code:    "FILE005",
	}},
	{"excel workbook", UserMessage{
		Message: "Excel files (.xlsx/.xls) are not supported. Please export your data as CSV first.",
		Action:  "In Excel use File > Save As > CSV",
		Code:    "FILE006",
	}},
	{"unsupported file type", UserMessage{
		Message: "Only CSV and JSON files are supported.",
		Action:  "Please convert your file to CSV format",
		Code:    "FILE006",
	}},
	{"invalid json", UserMessage{
		Message: "File is not a valid JSON array of records",
		Action:  "Export the data as a JSON array of objects, one per row",
		Code:    "FILE007",
	}},
	{"submission not found", UserMessage{
		Message: "Submission not found",
		Action:  "Check the submission ID",
		Code:    "SUB001",
	}},
	{"too many concurrent", UserMessage{
		Message: "System is busy validating other submissions",
		Action:  "Please wait a moment and try again",
		Code:    "UPL002",
	}},
	{"context canceled", UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "UPL004",
	}},
	{"context deadline exceeded", UserMessage{
		Message: "Request timed out",
		Action:  "Try a smaller file or check your connection",
		Code:    "UPL005",
	}},
	{"api key", UserMessage{
		Message: "Invalid or missing API key",
		Action:  "Send a configured admin key in the X-API-Key header",
		Code:    "AUTH001",
	}},
	{"rate limit", UserMessage{
		Message: "Too many requests",
		Action:  "Please wait a moment before trying again",
		Code:    "RATE001",
	}},
	{"connection refused", UserMessage{
		Message: "Unable to connect to the report store",
		Action:  "Please try again in a few moments",
		Code:    "DB004",
	}},
	{"connection reset", UserMessage{
		Message: "Report store connection was interrupted",
		Action:  "Please try again",
		Code:    "DB005",
	}},
	{"timeout", UserMessage{
		Message: "Operation timed out",
		Action:  "Please try again later",
		Code:    "DB006",
	}},
}

// defaultMessage is returned when no pattern matches. Support staff should
// look up the request id in the server log.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-facing message. Matching
// is case-insensitive and the first matching pattern wins.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError renders err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message. Error
// returns the user text; Unwrap returns the original for logging.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err. It returns nil for a nil error.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
