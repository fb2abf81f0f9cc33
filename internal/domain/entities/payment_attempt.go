package entities

import (
	"math/big"
)

// AttemptState is a state of the payment orchestrator
type AttemptState string

const (
	AttemptIdle                   AttemptState = "Idle"
	AttemptPreparing              AttemptState = "Preparing"
	AttemptAwaitingWalletApproval AttemptState = "AwaitingWalletApproval"
	AttemptSubmitted              AttemptState = "Submitted"
	AttemptReconciling            AttemptState = "Reconciling"
	AttemptDone                   AttemptState = "Done"
	AttemptDoneWithWarning        AttemptState = "DoneWithWarning"
)

// Pool contract functions
const (
	FunctionPayWorkers         = "payWorkers"
	FunctionTransferByEmployer = "transferByEmployer"
)

// PoolTransfer is one (address, amount) pair in a batch payout
type PoolTransfer struct {
	Recipient string
	Amount    *big.Int
}

// ChainSubmission is a contract call to be approved and sent
type ChainSubmission struct {
	PaymentID       string
	ContractAddress string
	FunctionName    string
	// Transfers holds one element for transferByEmployer and all recipients for payWorkers.
	Transfers []PoolTransfer
	Total     *big.Int
	GasLimit  uint64
	ChainID   int64
}

// OutcomeKind tags the asynchronous submission result
type OutcomeKind string

const (
	OutcomeSuccess   OutcomeKind = "Success"
	OutcomeError     OutcomeKind = "Error"
	OutcomeCancelled OutcomeKind = "Cancelled"
	// OutcomeUnconfirmed is a broadcast transaction whose receipt was never observed
	OutcomeUnconfirmed OutcomeKind = "Unconfirmed"
)

// SubmissionOutcome is the awaited result of a chain submission
type SubmissionOutcome struct {
	Kind            OutcomeKind
	TransactionHash string
	Reason          string
}

func OutcomeSucceeded(txHash string) *SubmissionOutcome {
	return &SubmissionOutcome{Kind: OutcomeSuccess, TransactionHash: txHash}
}

func OutcomeFailed(reason string) *SubmissionOutcome {
	return &SubmissionOutcome{Kind: OutcomeError, Reason: reason}
}

func OutcomeCancelledBy(reason string) *SubmissionOutcome {
	return &SubmissionOutcome{Kind: OutcomeCancelled, Reason: reason}
}

func OutcomeNotConfirmed(txHash, reason string) *SubmissionOutcome {
	return &SubmissionOutcome{Kind: OutcomeUnconfirmed, TransactionHash: txHash, Reason: reason}
}

// PaymentAttempt is what the orchestrator reports when a payment flow ends
type PaymentAttempt struct {
	PaymentID            string        `json:"paymentId,omitempty"`
	State                AttemptState  `json:"state"`
	Status               PaymentStatus `json:"status,omitempty"`
	TransactionHash      string        `json:"transactionHash,omitempty"`
	GasLimit             uint64        `json:"gasLimit,omitempty"`
	ErrorDetails         string        `json:"errorDetails,omitempty"`
	RequiresManualReview bool          `json:"requiresManualReview"`
	Err                  error         `json:"-"`
}
