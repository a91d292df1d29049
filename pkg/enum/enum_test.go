package enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("string enum", func(t *testing.T) {
		type PayoutState string

		paid := New(PayoutState("paid"), "paid")
		require.Equal(t, PayoutState("paid"), paid)

		v, err := ToEnum[PayoutState]("paid")
		require.NoError(t, err)
		require.Equal(t, paid, v)

		_, err = ToEnum[PayoutState]("PAID")
		require.Error(t, err)

		require.Equal(t, "paid", ToString(paid))
		require.Equal(t, "", ToString(PayoutState("unknown")))
	})

	t.Run("int enum", func(t *testing.T) {
		type Level int

		first := New(Level(1), "first")
		v, err := ToEnum[Level]("first")
		require.NoError(t, err)
		require.Equal(t, first, v)
		require.Equal(t, "first", ToString(first))
		require.Equal(t, "", ToString(Level(2)))
	})

	t.Run("unregistered type", func(t *testing.T) {
		type Unknown string

		_, err := ToEnum[Unknown]("x")
		require.Error(t, err)
	})
}
