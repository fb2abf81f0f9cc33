package usecases

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	domainerrors "trivix-payroll.backend/internal/domain/errors"
)

// toTokenUnits converts a human amount into the token's smallest unit, truncating extra precision.
func toTokenUnits(amount decimal.Decimal, decimals int32) *big.Int {
	return amount.Shift(decimals).Truncate(0).BigInt()
}

// checksumAddress validates a hex address and returns its EIP-55 form.
func checksumAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if !common.IsHexAddress(address) {
		return "", domainerrors.ErrInvalidWalletAddress
	}
	return common.HexToAddress(address).Hex(), nil
}
