// internal/payment/payment.go
package payment

import "context"

// Result holds exactly one of a Transaction or an Error.
type Result struct {
	tx  *Transaction
	err *Error
}

func Succeeded(tx Transaction) Result {
	return Result{tx: &tx}
}

func Failed(code, message string) Result {
	return Result{err: NewError(code, message)}
}

func FromError(err *Error) Result {
	return Result{err: err}
}

func (r Result) IsError() bool {
	return r.err != nil
}

// Transaction returns the successful outcome, or nil for a failure.
func (r Result) Transaction() *Transaction {
	return r.tx
}

// Err returns the failure, or nil for a success.
func (r Result) Err() *Error {
	return r.err
}

// WithStatus returns a copy of a successful result carrying status.
// Failures are returned unchanged.
func (r Result) WithStatus(status Status) Result {
	if r.tx == nil {
		return r
	}
	tx := *r.tx
	tx.Status = status
	return Result{tx: &tx}
}

// Gateway is implemented by every payment provider adapter.
type Gateway interface {
	Process(ctx context.Context, p Payment) Result
	Capture(ctx context.Context) Result
}
