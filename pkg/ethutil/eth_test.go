package ethutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeAddress(t *testing.T) {
	address, ok := NormalizeAddress("0x6aa7bd2a6b8e1f0e1c2b3a9dd3f7bb8a0e3c4d51")
	require.True(t, ok)
	require.True(t, strings.EqualFold("0x6aa7bd2a6b8e1f0e1c2b3a9dd3f7bb8a0e3c4d51", address))

	again, ok := NormalizeAddress(address)
	require.True(t, ok)
	require.Equal(t, address, again)

	_, ok = NormalizeAddress("0x1234")
	require.False(t, ok)

	_, ok = NormalizeAddress("not-an-address")
	require.False(t, ok)
}

func TestIsTxHash(t *testing.T) {
	require.True(t, IsTxHash("0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b"))
	require.False(t, IsTxHash("0x88df01"))
	require.False(t, IsTxHash("88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b"))
	require.False(t, IsTxHash("0xzz"))
}
