package domain

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// rupiah formats integers with Indonesian digit grouping ("1.500.000").
var rupiah = message.NewPrinter(language.Indonesian)

// FormatCurrency renders amount as Indonesian Rupiah with no fraction digits,
// e.g. "Rp 350.000" (the separator is a non-breaking space).
// Every int64 is accepted, math.MinInt64 included.
func FormatCurrency(amount int64) string {
	if amount < 0 {
		// -MinInt64 overflows int64; its magnitude fits in uint64.
		return rupiah.Sprintf("-Rp\u00a0%d", uint64(-(amount+1))+1)
	}
	return rupiah.Sprintf("Rp\u00a0%d", amount)
}
