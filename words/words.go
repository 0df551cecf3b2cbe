// Package words spells Brazilian real amounts in Portuguese and formats them
// as currency.
//
// The speller follows the numbering rules of the commercial documents it was
// written for, including two fixed quirks: zero is "zero reais", and "cem" is
// only used for an amount of exactly one hundred, so 1100 reads "mil e cento".
// Accents are omitted ("tres", "milhao").
package words

import (
	"math"
	"strings"
)

var (
	units    = [...]string{"", "um", "dois", "tres", "quatro", "cinco", "seis", "sete", "oito", "nove"}
	teens    = [...]string{"dez", "onze", "doze", "treze", "quatorze", "quinze", "dezesseis", "dezessete", "dezoito", "dezenove"}
	tens     = [...]string{"", "", "vinte", "trinta", "quarenta", "cinquenta", "sessenta", "setenta", "oitenta", "noventa"}
	hundreds = [...]string{"", "cento", "duzentos", "trezentos", "quatrocentos", "quinhentos", "seiscentos", "setecentos", "oitocentos", "novecentos"}
)

// maxAmount bounds the integer part so it fits an int64 exactly.
const maxAmount = 1e15

// ToWords spells v as reais and centavos, e.g. 1.5 is "um real e cinquenta
// centavos". The sign is ignored. NaN, infinities and amounts of 10^15 or
// more yield "-".
func ToWords(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	p := math.Abs(v)
	if p >= maxAmount {
		return "-"
	}
	whole := math.Floor(p)
	integer := int64(whole)
	cents := int64(math.Round((p - whole) * 100))

	noun := "reais"
	if integer == 1 {
		noun = "real"
	}
	out := Integer(integer) + " " + noun
	if cents == 0 {
		return out
	}
	centNoun := "centavos"
	if cents == 1 {
		centNoun = "centavo"
	}
	return out + " e " + Integer(cents) + " " + centNoun
}

// ToWordsPtr is ToWords for an optional amount; nil yields "-".
func ToWordsPtr(v *float64) string {
	if v == nil {
		return "-"
	}
	return ToWords(*v)
}

// Integer spells a non-negative integer. Negative input is spelled by its
// absolute value.
func Integer(n int64) string {
	if n < 0 {
		n = -n
	}
	switch n {
	case 0:
		return "zero"
	case 100:
		return "cem"
	}
	return groups(n)
}

// groups joins the million, thousand and unit groups with " e ". Million
// counts of a thousand or more are spelled recursively.
func groups(n int64) string {
	millions := n / 1_000_000
	thousands := (n % 1_000_000) / 1000
	rest := n % 1000

	var parts []string
	if millions > 0 {
		count := groups(millions)
		if millions < 1000 {
			count = underThousand(millions)
		}
		if millions == 1 {
			parts = append(parts, count+" milhao")
		} else {
			parts = append(parts, count+" milhoes")
		}
	}
	if thousands > 0 {
		if thousands == 1 {
			parts = append(parts, "mil")
		} else {
			parts = append(parts, underThousand(thousands)+" mil")
		}
	}
	if rest > 0 {
		parts = append(parts, underThousand(rest))
	}
	return strings.Join(parts, " e ")
}

func underThousand(v int64) string {
	c := v / 100
	d := (v % 100) / 10
	u := v % 10

	var parts []string
	if c > 0 {
		parts = append(parts, hundreds[c])
	}
	if d == 1 {
		parts = append(parts, teens[u])
	} else {
		if d > 1 {
			parts = append(parts, tens[d])
		}
		if u > 0 {
			parts = append(parts, units[u])
		}
	}
	return strings.Join(parts, " e ")
}
