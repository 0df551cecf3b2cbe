package words

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL formats v as Brazilian currency: "R$ 1.234,56". Non-finite
// amounts yield "-".
func FormatBRL(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return FormatDecimal(decimal.NewFromFloat(v))
}

// FormatBRLPtr is FormatBRL for an optional amount; nil yields "-".
func FormatBRLPtr(v *float64) string {
	if v == nil {
		return "-"
	}
	return FormatBRL(*v)
}

// FormatDecimal formats an exact amount, rounded half away from zero to
// the cent.
func FormatDecimal(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	return sign + "R$ " + groupThousands(intPart) + "," + frac
}

// ToWordsDecimal spells an exact amount.
func ToWordsDecimal(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return ToWords(f)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var sb strings.Builder
	head := len(digits) % 3
	if head > 0 {
		sb.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}
