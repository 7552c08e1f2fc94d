package api

// OrderCompletionResult is the outcome of a complete or cancel call.
// The conflict variants are benign: another client or an automatic
// backend transition already moved the order, and the next refresh will
// reconcile the local copy. Consumers switch exhaustively.
type OrderCompletionResult interface {
	isOrderCompletionResult()
}

// OrderCompletionSuccess means the transition was applied by this call.
type OrderCompletionSuccess struct{}

// OrderCompletionAlreadyCompleted means the backend rejected the call
// because the order is already completed.
type OrderCompletionAlreadyCompleted struct{}

// OrderCompletionAlreadyCanceled means the backend rejected the call
// because the order is already canceled.
type OrderCompletionAlreadyCanceled struct{}

// OrderCompletionFailure carries a transport or backend error.
type OrderCompletionFailure struct {
	Err error
}

func (OrderCompletionSuccess) isOrderCompletionResult()          {}
func (OrderCompletionAlreadyCompleted) isOrderCompletionResult() {}
func (OrderCompletionAlreadyCanceled) isOrderCompletionResult()  {}
func (OrderCompletionFailure) isOrderCompletionResult()          {}
