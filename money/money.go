// Package money converts between minor-unit integer amounts and
// display values. Storage stays integral; only display divides.
package money

import "strconv"

// FormatPrice renders a minor-unit amount as whole currency units
// with thousands grouping, e.g. 2500000 -> "25,000".
func FormatPrice(minor int64) string {
	units := minor / 100
	neg := units < 0
	if neg {
		units = -units
	}

	s := strconv.FormatInt(units, 10)
	var grouped []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, c)
	}
	if neg {
		return "-" + string(grouped)
	}
	return string(grouped)
}

// ImpliedOriginalPrice recovers the pre-discount price from the
// current price: current / (1 - discount/100). Defined only for
// 0 < discountPercent < 100.
func ImpliedOriginalPrice(current int64, discountPercent int) (int64, bool) {
	if discountPercent <= 0 || discountPercent >= 100 {
		return 0, false
	}
	return current * 100 / int64(100-discountPercent), true
}

// Savings returns original - current when the original price is
// higher, never a negative amount.
func Savings(original, current int64) (int64, bool) {
	if original <= current {
		return 0, false
	}
	return original - current, true
}
