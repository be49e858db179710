package college

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// College is one normalized row of the source file.
type College struct {
	Name              string
	TuitionInState    float64
	TuitionOutOfState float64
	// RoomAndBoard is the raw source value.
	RoomAndBoard string
}

// RoomAndBoardAmount returns the numeric room & board value, or NaN when the
// source value has no numeric prefix.
func (c College) RoomAndBoardAmount() float64 {
	v, ok := parseNumber(c.RoomAndBoard)
	if !ok {
		return math.NaN()
	}
	return v
}

var numberPrefix = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`)

// parseNumber reads the longest numeric prefix of s after leading whitespace.
func parseNumber(s string) (float64, bool) {
	prefix := numberPrefix.FindString(strings.TrimLeftFunc(s, isSpace))
	if prefix == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// parseAmount is parseNumber with 0 substituted for unparseable values.
func parseAmount(s string) float64 {
	v, ok := parseNumber(s)
	if !ok {
		return 0
	}
	return v
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// LoadStats describes a completed load.
type LoadStats struct {
	Source   string
	LoadedAt time.Time
	// Rows counts data rows turned into records.
	Rows int
	// Skipped counts malformed lines that were dropped.
	Skipped int
	// NonNumericRoomAndBoard counts records whose room & board value has no
	// numeric prefix.
	NonNumericRoomAndBoard int
}

// Catalog is an immutable, ordered set of colleges.
type Catalog struct {
	colleges []College
	stats    LoadStats
}

// NewCatalog copies colleges into a new Catalog.
func NewCatalog(colleges []College, stats LoadStats) *Catalog {
	c := make([]College, len(colleges))
	copy(c, colleges)
	return &Catalog{colleges: c, stats: stats}
}

func (c *Catalog) Len() int {
	return len(c.colleges)
}

// Each calls fn for every college in file order.
func (c *Catalog) Each(fn func(College)) {
	for _, college := range c.colleges {
		fn(college)
	}
}

func (c *Catalog) Stats() LoadStats {
	return c.stats
}
