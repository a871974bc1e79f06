package report

import (
	"fmt"

	"github.com/divan/num2words"
	"github.com/shopspring/decimal"
)

// AmountInWords spells out an amount for the invoice footer, e.g. 250.5 →
// "two hundred fifty and 50/100". Negative amounts are spelled by magnitude.
func AmountInWords(amount decimal.Decimal) string {
	amount = amount.Abs().Round(2)
	whole := amount.IntPart()
	cents := amount.Sub(decimal.NewFromInt(whole)).Shift(2).IntPart()

	words := num2words.Convert(int(whole))
	if cents == 0 {
		return words
	}
	return fmt.Sprintf("%s and %02d/100", words, cents)
}
