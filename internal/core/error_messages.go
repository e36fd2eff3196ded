package core

// error_messages.go maps technical errors to short coded messages for the
// final line a failed command prints.
//
// # Error Codes Reference
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: Input exceeds INPUT_MAX_FILE_SIZE
//	          Action: Raise INPUT_MAX_FILE_SIZE or split the export
//	          Matches: table.ErrFileTooLarge
//
//	FILE002 - Invalid CSV: Input could not be parsed
//	          Action: Ensure the file is comma-separated UTF-8 text
//	          Matches: "parse csv"
//
//	FILE003 - Not found: Input file does not exist
//	          Action: Check the *_PATH settings
//	          Matches: fs.ErrNotExist
//
//	FILE004 - Permission denied: Input or output path is not accessible
//	          Action: Check file permissions on the data directory
//	          Matches: fs.ErrPermission
//
//	FILE005 - Empty file: Input has no rows
//	          Action: Re-export the source data
//	          Matches: table.ErrEmptyFile
//
//	FILE006 - No header: Only banner rows were found
//	          Action: Check NHDRA_SKIP_ROWS against the file
//	          Matches: table.ErrNoHeader
//
// # Mapping Errors (MAP001-MAP099)
//
//	MAP001 - Unknown column: A required column is absent
//	         Action: Check the input header or DEDUP_COLUMN
//	         Matches: ErrUnknownColumn
//
//	MAP002 - Unknown mapping: A column mapping is not registered
//	         Action: Rebuild; the embedded mapping files are incomplete
//	         Matches: ErrUnknownMapping
//
// # Run Errors (RUN001-RUN099)
//
//	RUN001 - Cancelled: The run was interrupted
//	         Action: Run the command again; outputs were not replaced
//	         Matches: context.Canceled
//
//	RUN002 - Timed out: The run exceeded its deadline
//	         Action: Run the command again
//	         Matches: context.DeadlineExceeded
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Check the log output above for details
//
// Sentinel errors are checked with errors.Is first, in table order. Text
// patterns are matched case-insensitively afterwards; the first match wins.

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/e-stacy/lebanon-property-tax-map/internal/table"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for reference
}

// errorPattern maps either a sentinel error or a text pattern to a message.
type errorPattern struct {
	target  error
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// =========================================================================
	// File Errors (FILE001-FILE006)
	// =========================================================================
	{
		target: table.ErrFileTooLarge,
		msg: UserMessage{
			Message: "Input file exceeds the maximum size",
			Action:  "Raise INPUT_MAX_FILE_SIZE or split the export",
			Code:    "FILE001",
		},
	},
	{
		pattern: "parse csv",
		msg: UserMessage{
			Message: "Input file is not a valid CSV",
			Action:  "Ensure the file is comma-separated UTF-8 text",
			Code:    "FILE002",
		},
	},
	{
		target: fs.ErrNotExist,
		msg: UserMessage{
			Message: "Input file not found",
			Action:  "Check the *_PATH settings",
			Code:    "FILE003",
		},
	},
	{
		target: fs.ErrPermission,
		msg: UserMessage{
			Message: "File access denied",
			Action:  "Check file permissions on the data directory",
			Code:    "FILE004",
		},
	},
	{
		target: table.ErrEmptyFile,
		msg: UserMessage{
			Message: "Input file is empty",
			Action:  "Re-export the source data",
			Code:    "FILE005",
		},
	},
	{
		target: table.ErrNoHeader,
		msg: UserMessage{
			Message: "No header row after the skipped banner rows",
			Action:  "Check NHDRA_SKIP_ROWS against the file",
			Code:    "FILE006",
		},
	},

	// =========================================================================
	// Mapping Errors (MAP001-MAP002)
	// =========================================================================
	{
		target: ErrUnknownColumn,
		msg: UserMessage{
			Message: "A required column is missing",
			Action:  "Check the input header or DEDUP_COLUMN",
			Code:    "MAP001",
		},
	},
	{
		target: ErrUnknownMapping,
		msg: UserMessage{
			Message: "Column mapping is not registered",
			Action:  "Rebuild; the embedded mapping files are incomplete",
			Code:    "MAP002",
		},
	},

	// =========================================================================
	// Run Errors (RUN001-RUN002)
	// =========================================================================
	{
		target: context.Canceled,
		msg: UserMessage{
			Message: "Run was cancelled",
			Action:  "Run the command again; outputs were not replaced",
			Code:    "RUN001",
		},
	},
	{
		target: context.DeadlineExceeded,
		msg: UserMessage{
			Message: "Run timed out",
			Action:  "Run the command again",
			Code:    "RUN002",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Check the log output above for details",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If nothing matches, the ERR000 fallback is returned.
//
// Example:
//
//	_, err := table.Load("missing.csv", table.LoadOptions{})
//	msg := MapError(err)
//	// msg.Code == "FILE003"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, ep := range errorPatterns {
		if ep.target != nil && errors.Is(err, ep.target) {
			return ep.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if ep.pattern != "" && strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific code rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
