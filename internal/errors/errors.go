// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package errors

import (
	stderrors "errors"
	"fmt"
)

// Code identifies a class of error for programmatic handling.
type Code string

const (
	CodeOK           Code = "ok"
	CodeFileNotFound Code = "file_not_found"
	CodeScan         Code = "scan"
	CodeRead         Code = "read"
	CodeWrite        Code = "write"
	CodeUnknown      Code = "unknown"
)

// Sentinels usable with errors.Is; any *Error with the same code matches.
var (
	ErrFileNotFound = New(CodeFileNotFound, "")
	ErrScan         = New(CodeScan, "")
	ErrRead         = New(CodeRead, "")
	ErrWrite        = New(CodeWrite, "")
	ErrUnknown      = New(CodeUnknown, "")
)

// Describe returns the human readable label for a code.
func (c Code) Describe() string {
	switch c {
	case CodeOK:
		return "OK"
	case CodeFileNotFound:
		return "File not found"
	case CodeScan:
		return "Scanf error"
	case CodeRead:
		return "File read error"
	case CodeWrite:
		return "File write error"
	case CodeUnknown:
		return "Unknown error"
	default:
		return "Invalid error code"
	}
}

// Error wraps an underlying error with a code and message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message == "" {
		if e.Err != nil {
			return e.Err.Error()
		}
		return e.Code.Describe()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target is an *Error carrying the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new coded error with a message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a new coded error that wraps an underlying error.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf classifies err. A nil error is CodeOK and an error chain without
// an *Error is CodeUnknown.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	var coded *Error
	if stderrors.As(err, &coded) {
		return coded.Code
	}
	return CodeUnknown
}
