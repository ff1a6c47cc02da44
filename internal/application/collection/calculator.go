// Package collection reconciles scraped observations into the store:
// metric computation, seller/product upserts and the append-only
// metrics ledger.
package collection

import "strconv"

// CalculateMetrics derives the revenue and profit estimates for a
// product snapshot. The function is pure arithmetic over its inputs:
// negative or zero values flow through without clamping.
//
//	revenue = price × soldCount
//	profit  = revenue − costOfGoods × soldCount
func CalculateMetrics(price float64, soldCount int, costOfGoods float64) (revenue, profit float64) {
	revenue = price * float64(soldCount)
	profit = revenue - costOfGoods*float64(soldCount)
	return revenue, profit
}

// ParsePrice extracts a numeric value from a raw scraped price string.
// Currency symbols, separators and any other non-numeric characters
// are dropped, then the longest leading numeric run (with at most one
// decimal point) is parsed. Unparsable input yields 0.
func ParsePrice(raw string) float64 {
	cleaned := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if (c >= '0' && c <= '9') || c == '.' {
			cleaned = append(cleaned, c)
		}
	}

	// Keep the leading run up to a second decimal point, so inputs
	// like "1.299.00" still parse instead of erroring out.
	dotSeen := false
	end := len(cleaned)
	for i, c := range cleaned {
		if c != '.' {
			continue
		}
		if dotSeen {
			end = i
			break
		}
		dotSeen = true
	}

	value, err := strconv.ParseFloat(string(cleaned[:end]), 64)
	if err != nil {
		return 0
	}
	return value
}
