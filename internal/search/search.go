package search

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/angeloszaimis/college-costs/internal/college"
)

// Result is the projection of a matching college.
type Result struct {
	Name string `json:"name"`
	Cost string `json:"cost"`
}

// Search returns the colleges matching p in catalog order. The result is
// never nil.
func Search(catalog *college.Catalog, p Params) []Result {
	results := make([]Result, 0)

	catalog.Each(func(c college.College) {
		if !Matches(c.Name, p.Name, p.ExactMatch) {
			return
		}
		results = append(results, Result{
			Name: c.Name,
			Cost: FormatCost(Cost(c, p.IncludeRoomAndBoard)),
		})
	})

	return results
}

// Matches reports whether name matches the lower-cased query, either exactly
// or as a substring, ignoring case.
func Matches(name, query string, exact bool) bool {
	name = strings.ToLower(name)
	if exact {
		return name == query
	}
	return strings.Contains(name, query)
}

// Cost is the in-state tuition, plus room & board when requested. A
// non-numeric room & board yields NaN.
func Cost(c college.College, includeRoomAndBoard bool) float64 {
	if includeRoomAndBoard {
		return c.TuitionInState + c.RoomAndBoardAmount()
	}
	return c.TuitionInState
}

// FormatCost renders a cost with exactly two fraction digits and no currency
// symbol. The exact binary value is rounded to the nearest cent, and a value
// exactly halfway between two cents takes the larger one.
func FormatCost(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	if v < 0 {
		return "-" + FormatCost(-v)
	}

	scaled := new(big.Float).SetPrec(256).SetFloat64(v)
	scaled.Mul(scaled, big.NewFloat(100))
	scaled.Add(scaled, big.NewFloat(0.5))
	cents, _ := scaled.Int(nil)

	digits := cents.String()
	if len(digits) < 3 {
		digits = strings.Repeat("0", 3-len(digits)) + digits
	}
	return digits[:len(digits)-2] + "." + digits[len(digits)-2:]
}
