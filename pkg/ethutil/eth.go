package ethutil

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// NormalizeAddress returns the checksummed form of a hex wallet address.
func NormalizeAddress(address string) (string, bool) {
	if !common.IsHexAddress(address) {
		return "", false
	}

	return common.HexToAddress(address).Hex(), true
}

// IsTxHash reports whether s is a 0x-prefixed 32-byte transaction hash.
func IsTxHash(s string) bool {
	b, err := hexutil.Decode(s)
	return err == nil && len(b) == common.HashLength
}
