// Package coreerr defines the enclave's error taxonomy. The exported
// operations of internal/kms, internal/ledger, and internal/registry return
// either nil or a *Error so the dispatcher can map failures to the response
// envelope without string-matching messages. dispatch.DecodeCommand is the
// exception: it returns an error wrapping dispatch.ErrInvalidCommand, which
// HandleRaw converts to an InvalidCommand *Error.
package coreerr

import "fmt"

// Kind identifies one of the error categories from the design's taxonomy.
type Kind string

const (
	KindUnknownWallet     Kind = "UnknownWallet"
	KindUnknownAsset      Kind = "UnknownAsset"
	KindUnknownSubaccount Kind = "UnknownSubaccount"
	KindUnknownDeposit    Kind = "UnknownDeposit"
	KindUnknownAddress    Kind = "UnknownAddress"
	KindDuplicateDeposit  Kind = "DuplicateDeposit"
	KindAlreadyClaimed    Kind = "AlreadyClaimed"
	KindDuplicateAsset    Kind = "DuplicateAsset"
	KindDuplicateSubacct  Kind = "DuplicateSubaccount"
	KindInvalidAmount     Kind = "InvalidAmount"
	KindInvalidAddress    Kind = "InvalidAddress"
	KindInvalidAsset      Kind = "InvalidAsset"
	KindInsufficientFunds Kind = "InsufficientBalance"
	KindKmsFailure        Kind = "KmsFailure"
	KindTimeout           Kind = "Timeout"
	KindFatalWallet       Kind = "FatalWalletError"
	KindInvalidCommand    Kind = "InvalidCommand"
)

// Error is the concrete error type returned across package boundaries.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an *Error with no wrapped cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap builds an *Error carrying an underlying cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Cause: cause}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if err == nil {
		return false
	}
	if ce, ok := err.(*Error); ok {
		e = ce
	} else {
		return false
	}
	return e.Kind == kind
}
