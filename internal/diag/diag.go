// Package diag defines the compile error taxonomy shared by the loader, the
// compiler and the merge engine. Every error carries a stable message key so
// tools can match on identity across versions.
package diag

import (
	"errors"
	"fmt"
)

// MessageKey identifies a kind of compile error
type MessageKey string

// Message keys
const (
	NonStaticValue           MessageKey = "NON_STATIC_VALUE"
	IllegalArgumentLength    MessageKey = "ILLEGAL_ARGUMENT_LENGTH"
	IllegalNamespaceValue    MessageKey = "ILLEGAL_NAMESPACE_VALUE"
	IllegalNamespaceName     MessageKey = "ILLEGAL_NAMESPACE_NAME"
	NoObjectSpreads          MessageKey = "NO_OBJECT_SPREADS"
	IllegalPropValue         MessageKey = "ILLEGAL_PROP_VALUE"
	IllegalPropArrayValue    MessageKey = "ILLEGAL_PROP_ARRAY_VALUE"
	IllegalNestedPseudo      MessageKey = "ILLEGAL_NESTED_PSEUDO"
	InvalidPseudo            MessageKey = "INVALID_PSEUDO"
	InvalidPseudoOrAtRule    MessageKey = "INVALID_PSEUDO_OR_AT_RULE"
	InvalidMediaQuery        MessageKey = "INVALID_MEDIA_QUERY"
	InvalidSupportsQuery     MessageKey = "INVALID_SUPPORTS_QUERY"
	InvalidCustomPropertyKey MessageKey = "INVALID_CUSTOM_PROPERTY_KEY"
	UnclosedFunction         MessageKey = "UNCLOSED_FUNCTION"
	UnknownVars              MessageKey = "UNKNOWN_VARS"
	UnknownNamespace         MessageKey = "UNKNOWN_NAMESPACE"
	DuplicateClassName       MessageKey = "DUPLICATE_CLASS_NAME"
)

// messages are the user-facing texts per key
var messages = map[MessageKey]string{
	NonStaticValue:           "only static values are allowed inside style definitions",
	IllegalArgumentLength:    "wrong number of arguments",
	IllegalNamespaceValue:    "a style namespace must be an object",
	IllegalNamespaceName:     "a style namespace name must be a valid identifier",
	NoObjectSpreads:          "object spreads are not allowed in style definitions",
	IllegalPropValue:         "a style value can only contain strings, numbers, null or arrays of those",
	IllegalPropArrayValue:    "a style array value can only contain strings or numbers",
	IllegalNestedPseudo:      "pseudo-classes cannot be nested inside pseudo-classes of the same element",
	InvalidPseudo:            "invalid pseudo-class or pseudo-element",
	InvalidPseudoOrAtRule:    "invalid pseudo or at-rule key",
	InvalidMediaQuery:        "invalid media query",
	InvalidSupportsQuery:     "invalid supports query",
	InvalidCustomPropertyKey: "variable keys must not start with \"--\"",
	UnclosedFunction:         "value contains an unclosed function",
	UnknownVars:              "theme overrides keys that the variable group does not define",
	UnknownNamespace:         "reference to an unknown style namespace",
	DuplicateClassName:       "two different declarations produced the same class name",
}

// Message returns the text registered for key
func Message(key MessageKey) string {
	if msg, ok := messages[key]; ok {
		return msg
	}
	return string(key)
}

// Location is a position in a style-definition source
type Location struct {
	File   string `json:"file,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// IsZero reports whether no position is known
func (l Location) IsZero() bool {
	return l.File == "" && l.Line == 0
}

// String formats the location as file:line:column
func (l Location) String() string {
	switch {
	case l.IsZero():
		return ""
	case l.Line == 0:
		return l.File
	case l.Column == 0:
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Error is a fatal compile error for one compilation unit
type Error struct {
	Key     MessageKey
	Message string
	Loc     Location
	Detail  string // Offending key or value
	Err     error  // Underlying parse error, if any
}

// Error implements error
func (e *Error) Error() string {
	msg := e.Message
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Err)
	}
	if loc := e.Loc.String(); loc != "" {
		return loc + ": " + msg
	}
	return msg
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same key, so errors.Is(err, diag.Sentinel(key))
// works regardless of location and detail
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Key == e.Key
}

// New creates an error for key
func New(key MessageKey, loc Location, detail string) *Error {
	return &Error{Key: key, Message: Message(key), Loc: loc, Detail: detail}
}

// Wrap creates an error for key caused by err
func Wrap(key MessageKey, loc Location, detail string, err error) *Error {
	e := New(key, loc, detail)
	e.Err = err
	return e
}

// Sentinel returns a detail-free error usable as an errors.Is target
func Sentinel(key MessageKey) *Error {
	return &Error{Key: key, Message: Message(key)}
}

// KeyOf returns the message key of err, or "" when err is not an *Error
func KeyOf(err error) MessageKey {
	var e *Error
	if errors.As(err, &e) {
		return e.Key
	}
	return ""
}
