// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

// =============================================================================
// OUTCOME KINDS
// =============================================================================

// Kind classifies the result of a session manager operation. The presentation
// layer uses it to pick severity and rendering; the message carries the
// human-readable text.
type Kind int

const (
	// KindOK indicates the operation succeeded.
	KindOK Kind = iota

	// KindValidation indicates a syntactic policy failure: bad username or
	// password format, or a mismatched confirmation.
	KindValidation

	// KindInvalidCredentials indicates an unknown user or a wrong password.
	// Both cases share the same generic message to avoid username
	// enumeration; the attempts-remaining count is the only extra disclosure.
	KindInvalidCredentials

	// KindLockedOut indicates the username is temporarily blocked after too
	// many failed attempts. The message discloses the remaining wait time.
	KindLockedOut

	// KindConflict indicates a uniqueness violation on the username.
	KindConflict

	// KindInternal indicates an unexpected storage or internal failure. The
	// detail goes to the log; the user sees a generic message.
	KindInternal
)

// String returns the kind name for logging.
func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindValidation:
		return "validation"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindLockedOut:
		return "locked_out"
	case KindConflict:
		return "conflict"
	case KindInternal:
		return "internal"
	}
	return "unknown"
}

// =============================================================================
// OUTCOME
// =============================================================================

// Outcome is the structured result of a session manager operation: a kind
// plus a user-facing message. No error codes cross the presentation
// boundary, only text.
type Outcome struct {
	Kind    Kind
	Message string
}

// OK reports whether the operation succeeded.
func (o Outcome) OK() bool {
	return o.Kind == KindOK
}

func success(message string) Outcome {
	return Outcome{Kind: KindOK, Message: message}
}

func failure(kind Kind, message string) Outcome {
	return Outcome{Kind: kind, Message: message}
}
