package usecases

// EstimateBatchGas returns the gas limit for a payWorkers call paying recipientCount payees,
// clamped to [BatchGasMin, BatchGasMax].
func EstimateBatchGas(recipientCount int) uint64 {
	if recipientCount < 0 {
		recipientCount = 0
	}
	gas := BatchGasBase + uint64(recipientCount)*BatchGasPerRecipient
	if gas < BatchGasMin {
		return BatchGasMin
	}
	if gas > BatchGasMax {
		return BatchGasMax
	}
	return gas
}
