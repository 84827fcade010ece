package port

import (
	"context"
	"errors"
)

// ErrTransferDeclined is returned by gateway implementations when the
// payment backend rejects the transfer outright. Declines are final and
// must not be retried.
var ErrTransferDeclined = errors.New("transfer declined")

// Transfer is a single instruction to move funds to an account.
// Reference is an idempotency key: submitting the same reference twice
// moves the funds at most once.
type Transfer struct {
	Reference string
	Account   string
	Amount    int64
}

// TransferGateway performs the actual value movement. It is an external
// collaborator: transfers are atomic and idempotent on success, and a
// returned error means no funds moved for that reference.
type TransferGateway interface {
	Transfer(ctx context.Context, t Transfer) error
}
