package blockchain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
	"trivix-payroll.backend/internal/domain/entities"
	"trivix-payroll.backend/pkg/logger"
)

// EmployerPoolABI covers the two payout entry points of the pool contract.
var EmployerPoolABI = mustParseABI(`[
	{"inputs":[{"components":[{"internalType":"address","name":"recipient","type":"address"},{"internalType":"uint256","name":"amount","type":"uint256"}],"internalType":"struct EmployerPool.Transfer[]","name":"transfers","type":"tuple[]"},{"internalType":"uint256","name":"totalAmount","type":"uint256"}],"name":"payWorkers","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"internalType":"address","name":"recipient","type":"address"},{"internalType":"uint256","name":"amount","type":"uint256"}],"name":"transferByEmployer","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`)

const receiptPollInterval = 2 * time.Second

var (
	performContractTransact = func(client *ethclient.Client, contractAddress string, parsedABI abi.ABI, auth *bind.TransactOpts, method string, args ...interface{}) (*types.Transaction, error) {
		contract := bind.NewBoundContract(common.HexToAddress(contractAddress), parsedABI, client, client, client)
		return contract.Transact(auth, method, args...)
	}
	newTransactor = func(key *ecdsa.PrivateKey, chainID *big.Int) (*bind.TransactOpts, error) {
		return bind.NewKeyedTransactorWithChainID(key, chainID)
	}
)

// PoolTransferArg is the ABI tuple (address recipient, uint256 amount)
type PoolTransferArg struct {
	Recipient common.Address
	Amount    *big.Int
}

// PoolSubmitter signs and sends EmployerPool payouts with the employer key
type PoolSubmitter struct {
	factory         *ClientFactory
	rpcURL          string
	employerKey     string
	waitForReceipt  bool
	receiptTimeout  time.Duration
	receiptInterval time.Duration
}

// NewPoolSubmitter creates a submitter bound to one RPC endpoint
func NewPoolSubmitter(factory *ClientFactory, rpcURL, employerKey string, waitForReceipt bool, receiptTimeout time.Duration) *PoolSubmitter {
	if receiptTimeout <= 0 {
		receiptTimeout = 2 * time.Minute
	}
	return &PoolSubmitter{
		factory:         factory,
		rpcURL:          rpcURL,
		employerKey:     employerKey,
		waitForReceipt:  waitForReceipt,
		receiptTimeout:  receiptTimeout,
		receiptInterval: receiptPollInterval,
	}
}

// Submit sends the pool call and waits for its outcome.
// The returned error reports a failure to initiate; everything after initiation is carried by the outcome.
func (s *PoolSubmitter) Submit(ctx context.Context, sub *entities.ChainSubmission) (*entities.SubmissionOutcome, error) {
	args, err := BuildPoolArgs(sub)
	if err != nil {
		return nil, err
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(s.employerKey), "0x"))
	if err != nil {
		return nil, errors.New("invalid employer private key")
	}

	client, err := s.factory.GetEVMClient(s.rpcURL)
	if err != nil {
		return nil, err
	}
	if client.Backend() == nil {
		return nil, errors.New("evm client is not connected")
	}

	chainID := client.ChainID()
	if chainID == nil {
		return nil, fmt.Errorf("chain id is nil")
	}
	if sub.ChainID != 0 && chainID.Int64() != sub.ChainID {
		return nil, fmt.Errorf("rpc chain id %s does not match payout chain %d", chainID.String(), sub.ChainID)
	}

	auth, err := newTransactor(privateKey, chainID)
	if err != nil {
		return nil, err
	}
	auth.Context = ctx
	auth.GasLimit = sub.GasLimit

	// approval wait ends here; a cancelled context never broadcasts
	if ctx.Err() != nil {
		return entities.OutcomeCancelledBy(cancellationReason(ctx)), nil
	}

	tx, err := performContractTransact(client.Backend(), sub.ContractAddress, EmployerPoolABI, auth, sub.FunctionName, args...)
	if err != nil {
		return classifySendError(ctx, err), nil
	}

	txHash := tx.Hash().Hex()
	logger.Info(ctx, "Pool transaction broadcast",
		zap.String("payment_id", sub.PaymentID),
		zap.String("function", sub.FunctionName),
		zap.String("tx_hash", txHash),
	)

	if !s.waitForReceipt {
		return entities.OutcomeSucceeded(txHash), nil
	}

	// once broadcast the transaction can still be mined, so receipt polling ignores caller cancellation
	waitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.receiptTimeout)
	defer cancel()

	receipt, err := s.awaitReceipt(waitCtx, client, txHash)
	if err != nil {
		logger.Warn(ctx, "Receipt not observed, payment needs manual review",
			zap.String("payment_id", sub.PaymentID),
			zap.String("tx_hash", txHash),
			zap.Error(err),
		)
		return entities.OutcomeNotConfirmed(txHash, fmt.Sprintf("%s: %v", entities.FailureUnconfirmed, err)), nil
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return &entities.SubmissionOutcome{
			Kind:            entities.OutcomeError,
			TransactionHash: txHash,
			Reason:          "transaction reverted on chain",
		}, nil
	}
	return entities.OutcomeSucceeded(txHash), nil
}

func (s *PoolSubmitter) awaitReceipt(ctx context.Context, client *EVMClient, txHash string) (*types.Receipt, error) {
	ticker := time.NewTicker(s.receiptInterval)
	defer ticker.Stop()

	for {
		receipt, err := client.GetTransactionReceipt(ctx, txHash)
		if err == nil && receipt != nil {
			return receipt, nil
		}
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// BuildPoolArgs validates a submission and converts it into ABI arguments
func BuildPoolArgs(sub *entities.ChainSubmission) ([]interface{}, error) {
	if sub == nil {
		return nil, errors.New("submission is required")
	}
	if !common.IsHexAddress(sub.ContractAddress) {
		return nil, fmt.Errorf("invalid pool contract address %q", sub.ContractAddress)
	}
	if len(sub.Transfers) == 0 {
		return nil, errors.New("no transfers to submit")
	}

	transfers := make([]PoolTransferArg, 0, len(sub.Transfers))
	for _, t := range sub.Transfers {
		if !common.IsHexAddress(t.Recipient) {
			return nil, fmt.Errorf("invalid recipient address %q", t.Recipient)
		}
		if t.Amount == nil || t.Amount.Sign() <= 0 {
			return nil, fmt.Errorf("invalid amount for %s", t.Recipient)
		}
		transfers = append(transfers, PoolTransferArg{
			Recipient: common.HexToAddress(t.Recipient),
			Amount:    new(big.Int).Set(t.Amount),
		})
	}

	switch sub.FunctionName {
	case entities.FunctionPayWorkers:
		total := sub.Total
		if total == nil {
			total = new(big.Int)
			for _, t := range transfers {
				total.Add(total, t.Amount)
			}
		}
		return []interface{}{transfers, total}, nil
	case entities.FunctionTransferByEmployer:
		if len(transfers) != 1 {
			return nil, fmt.Errorf("%s takes exactly one transfer", sub.FunctionName)
		}
		return []interface{}{transfers[0].Recipient, transfers[0].Amount}, nil
	default:
		return nil, fmt.Errorf("unsupported pool function %q", sub.FunctionName)
	}
}

func classifySendError(ctx context.Context, err error) *entities.SubmissionOutcome {
	if ctx.Err() != nil {
		return entities.OutcomeCancelledBy(cancellationReason(ctx))
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "rejected") || strings.Contains(msg, "denied") {
		return entities.OutcomeCancelledBy(entities.FailureUserRejected)
	}
	return entities.OutcomeFailed(err.Error())
}

// cancellationReason reads the cause attached by whoever cancelled ctx.
func cancellationReason(ctx context.Context) string {
	cause := context.Cause(ctx)
	switch {
	case cause == nil, errors.Is(cause, context.Canceled):
		return entities.FailureUserCancelled
	case errors.Is(cause, context.DeadlineExceeded):
		return entities.FailureApprovalTimeout
	default:
		return cause.Error()
	}
}

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}
