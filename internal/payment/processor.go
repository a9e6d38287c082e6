// Package payment is the order boundary: it separates the submission flow
// from whatever actually charges the customer. The shipped implementation is
// a mock that always approves; a real deployment swaps in a gateway client
// behind the same interface.
package payment

import (
	"context"
	"fmt"
	"time"
)

// Result is the outcome of a charge attempt. A declined charge is a Result
// with Approved false, not an error. Errors mean the boundary itself failed.
type Result struct {
	Approved      bool
	TransactionID string
	Reason        string
}

type Processor interface {
	Charge(ctx context.Context, orderID string, amount string) (*Result, error)
}

// MockProcessor approves every charge.
type MockProcessor struct{}

func (MockProcessor) Charge(_ context.Context, orderID string, amount string) (*Result, error) {
	return &Result{
		Approved:      true,
		TransactionID: fmt.Sprintf("TXN-%d", time.Now().UnixNano()),
	}, nil
}
