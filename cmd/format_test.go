package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	t.Run("currency", func(t *testing.T) {
		require.Equal(t, "$1,234.56", FormatCurrency(1234.56))
		require.Equal(t, "$0.00", FormatCurrency(0))
		require.Equal(t, "-$500.00", FormatCurrency(-500))
		require.Equal(t, "$0.01", FormatCurrency(0.005))
	})

	t.Run("net value", func(t *testing.T) {
		require.Equal(t, "+$5,600.00", FormatNetValue(5600))
		require.Equal(t, "-$12.50", FormatNetValue(-12.5))
		require.Equal(t, "$0.00", FormatNetValue(0))
	})

	t.Run("price", func(t *testing.T) {
		require.Equal(t, "$50,000.00", FormatPrice(50000))
		require.Equal(t, "$0.000002", FormatPrice(0.000002))
	})

	t.Run("percentage and amount", func(t *testing.T) {
		require.Equal(t, "33.33%", FormatPercentage(100.0/3))
		require.Equal(t, "100.00%", FormatPercentage(100))
		require.Equal(t, "2.5", FormatAmount(2.5))
	})

	t.Run("mask", func(t *testing.T) {
		require.Equal(t, "****cdef", MaskSecret("0123456789abcdef"))
		require.Equal(t, "***", MaskSecret("abc"))
		require.Equal(t, "-", MaskSecret(""))
	})
}
