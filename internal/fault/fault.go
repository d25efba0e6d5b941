// Package fault defines the stable error vocabulary shared by all entity
// operations. Raw store/driver errors never cross this package outward:
// callers see one of the kinds below with a human-readable message, and the
// original error is kept only as a wrapped cause.
package fault

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindDuplicateKey
	KindValidation
	KindTransport
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindDuplicateKey:
		return "duplicate_key"
	case KindValidation:
		return "validation_failed"
	case KindTransport:
		return "transport_failure"
	case KindUnauthorized:
		return "unauthorized"
	}
	return "unknown"
}

// Fault carries a kind plus a message safe to surface to the UI.
type Fault struct {
	Kind Kind
	Msg  string
	Err  error // wrapped cause, may be nil
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", f.Msg, f.Err)
	}
	return f.Msg
}

func (f *Fault) Unwrap() error { return f.Err }

func NotFound(msg string) error     { return &Fault{Kind: KindNotFound, Msg: msg} }
func DuplicateKey(msg string) error { return &Fault{Kind: KindDuplicateKey, Msg: msg} }
func Validation(msg string) error   { return &Fault{Kind: KindValidation, Msg: msg} }
func Unauthorized(msg string) error { return &Fault{Kind: KindUnauthorized, Msg: msg} }

func Transport(msg string, cause error) error {
	return &Fault{Kind: KindTransport, Msg: msg, Err: cause}
}

// KindOf reports the kind of err, or KindUnknown for non-fault errors.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return KindUnknown
}

// Message returns the UI-safe message of err. For non-fault errors it falls
// back to the raw error text, mirroring the generic-transport escape hatch.
func Message(err error) string {
	var f *Fault
	if errors.As(err, &f) {
		return f.Msg
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }
func IsDuplicateKey(err error) bool { return KindOf(err) == KindDuplicateKey }
func IsValidation(err error) bool   { return KindOf(err) == KindValidation }
func IsUnauthorized(err error) bool { return KindOf(err) == KindUnauthorized }

// FromStore translates a raw gorm/driver error into a fault. notFoundMsg and
// duplicateMsg are the entity-specific messages; anything unrecognized is a
// generic transport failure wrapping the original error so the source message
// is not lost.
func FromStore(err error, notFoundMsg, duplicateMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(notFoundMsg)
	}
	if isDuplicate(err) {
		return DuplicateKey(duplicateMsg)
	}
	return Transport("service request failed", err)
}

// isDuplicate matches gorm's translated error plus the raw driver texts for
// Postgres (23505) and sqlite UNIQUE violations, since TranslateError coverage
// varies by driver version.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "23505") ||
		strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "unique constraint")
}
