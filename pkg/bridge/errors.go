package bridge

import (
	"errors"
	"fmt"
	"strings"
)

var errNoLedger = errors.New("no ledger client configured")

// ValidationError reports bad or missing caller input. It is always
// surfaced to the caller and never retried.
type ValidationError struct {
	Fields  []string // missing required fields, if any
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
	}
	return e.Message
}

// LedgerUnavailableError means the destination network is unreachable or
// the operating account could not be loaded.
type LedgerUnavailableError struct {
	Err error
}

func (e *LedgerUnavailableError) Error() string {
	return fmt.Sprintf("ledger unavailable: %v", e.Err)
}

func (e *LedgerUnavailableError) Unwrap() error { return e.Err }

// SubmissionError wraps a transaction rejection from the ledger network,
// e.g. insufficient balance, bad sequence, or timeout.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("transaction submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }
