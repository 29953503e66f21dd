// Package core provides the customer lookup logic.
//
// # Error Codes Reference
//
// This file maps technical errors to user-friendly messages with codes for
// support reference. Operators can grep the logs for the code a caller saw.
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Missing search value: No phone number or email was provided
//	         Action: Pass a phone or email argument to the lookup tool
//	         Patterns: "search value is required"
//
//	REQ002 - Invalid body: The request body is not valid JSON
//	         Action: Send a JSON body from the assistant platform
//	         Patterns: "invalid request body"
//
//	REQ003 - Body too large: The request body exceeds the size limit
//	         Action: Send only the tool call payload
//	         Patterns: "request body too large"
//
// # Sheet Source Errors (SRC001-SRC099)
//
//	SRC001 - Empty sheet: The customer sheet has no rows
//	         Action: Check the sheet name and that it is published
//	         Patterns: "empty source"
//
//	SRC002 - Sheet too large: The sheet export exceeds the size limit
//	         Action: Raise SHEET_MAX_BYTES or trim the sheet
//	         Patterns: "sheet too large"
//
//	SRC003 - Fetch failed: The customer sheet could not be downloaded
//	         Action: Check the spreadsheet ID and sharing settings
//	         Patterns: "sheet fetch failed"
//
// # Lookup Errors (LKP001-LKP099)
//
//	LKP001 - Busy: Too many lookups are running
//	         Action: Please try again in a moment
//	         Patterns: "too many concurrent lookups"
//
//	LKP002 - Audit disabled: Lookup history is not recorded
//	         Action: Set DATABASE_URL to enable the audit log
//	         Patterns: "auditing is disabled"
//
//	LKP003 - Request cancelled: The caller went away
//	         Action: Please try again
//	         Patterns: "context canceled"
//
//	LKP004 - Request timeout: The lookup took too long
//	         Action: Please try again
//	         Patterns: "context deadline exceeded"
//
// # Auth and Rate Limiting
//
//	AUTH001 - Unauthorized: The webhook secret is missing or wrong
//	          Patterns: "webhook secret"
//
//	RATE001 - Rate limited: Too many requests
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins, so specific patterns are listed before general ones.
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Request errors
	{
		pattern: "search value is required",
		msg: UserMessage{
			Message: "Phone number is required",
			Action:  "Pass a phone or email argument to the lookup tool",
			Code:    "REQ001",
		},
	},
	{
		pattern: "invalid request body",
		msg: UserMessage{
			Message: "The request body is not valid JSON",
			Action:  "Send a JSON body from the assistant platform",
			Code:    "REQ002",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "The request body is too large",
			Action:  "Send only the tool call payload",
			Code:    "REQ003",
		},
	},

	// Sheet source errors
	{
		pattern: "empty source",
		msg: UserMessage{
			Message: "No customer data found in system",
			Action:  "Check the sheet name and that it is published",
			Code:    "SRC001",
		},
	},
	{
		pattern: "sheet too large",
		msg: UserMessage{
			Message: "The customer sheet is too large",
			Action:  "Raise SHEET_MAX_BYTES or trim the sheet",
			Code:    "SRC002",
		},
	},
	{
		pattern: "sheet fetch failed",
		msg: UserMessage{
			Message: "Unable to lookup customer",
			Action:  "Please proceed manually",
			Code:    "SRC003",
		},
	},

	// Lookup errors
	{
		pattern: "too many concurrent lookups",
		msg: UserMessage{
			Message: "Too many lookups in progress",
			Action:  "Please try again in a moment",
			Code:    "LKP001",
		},
	},
	{
		pattern: "auditing is disabled",
		msg: UserMessage{
			Message: "Lookup history is not recorded",
			Action:  "Set DATABASE_URL to enable the audit log",
			Code:    "LKP002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "LKP003",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Lookup timed out",
			Action:  "Please try again",
			Code:    "LKP004",
		},
	},

	// Auth and rate limiting
	{
		pattern: "webhook secret",
		msg: UserMessage{
			Message: "Unauthorized",
			Action:  "Configure the webhook secret on the assistant platform",
			Code:    "AUTH001",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns the zero UserMessage for a nil error and ERR000 when nothing matches.
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

// FormatUserError renders "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific code rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
