package search_test

import (
	"math"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/college-costs/internal/college"
	"github.com/angeloszaimis/college-costs/internal/search"
)

var _ = Describe("Search", func() {
	var catalog *college.Catalog

	BeforeEach(func() {
		catalog = college.NewCatalog([]college.College{
			{Name: "Test University", TuitionInState: 1000, TuitionOutOfState: 3000, RoomAndBoard: "500"},
			{Name: "Testing Institute of Technology", TuitionInState: 12345.678, RoomAndBoard: "100.005"},
			{Name: "State College", TuitionInState: 800, RoomAndBoard: "200"},
			{Name: "Housing Unknown College", TuitionInState: 900, RoomAndBoard: ""},
		}, college.LoadStats{})
	})

	params := func(name string, exact, include bool) search.Params {
		return search.Params{Name: name, ExactMatch: exact, IncludeRoomAndBoard: include}
	}

	It("should include room and board by default", func() {
		results := search.Search(catalog, params("test university", false, true))
		Expect(results).To(Equal([]search.Result{{Name: "Test University", Cost: "1500.00"}}))
	})

	It("should report tuition alone when room and board is excluded", func() {
		results := search.Search(catalog, params("test university", false, false))
		Expect(results).To(Equal([]search.Result{{Name: "Test University", Cost: "1000.00"}}))
	})

	It("should match substrings case-insensitively in catalog order", func() {
		results := search.Search(catalog, params("test", false, true))
		Expect(results).To(HaveLen(2))
		Expect(results[0].Name).To(Equal("Test University"))
		Expect(results[1].Name).To(Equal("Testing Institute of Technology"))

		for _, r := range results {
			Expect(strings.ToLower(r.Name)).To(ContainSubstring("test"))
		}
	})

	It("should require full equality for exact matches", func() {
		Expect(search.Search(catalog, params("test", true, true))).To(BeEmpty())

		results := search.Search(catalog, params("state college", true, true))
		Expect(results).To(HaveLen(1))
		Expect(strings.ToLower(results[0].Name)).To(Equal("state college"))
	})

	It("should return an empty, non-nil slice when nothing matches", func() {
		results := search.Search(catalog, params("zzznonexistentcollege", false, true))
		Expect(results).NotTo(BeNil())
		Expect(results).To(BeEmpty())
	})

	It("should always format two fraction digits", func() {
		for _, r := range search.Search(catalog, params("", false, false)) {
			Expect(r.Cost).To(MatchRegexp(`^\d+\.\d{2}$`))
		}
	})

	It("should round costs to cents", func() {
		results := search.Search(catalog, params("testing institute", false, false))
		Expect(results[0].Cost).To(Equal("12345.68"))
	})

	It("should carry a non-numeric room and board through as NaN", func() {
		results := search.Search(catalog, params("housing unknown", false, true))
		Expect(results[0].Cost).To(Equal("NaN"))

		results = search.Search(catalog, params("housing unknown", false, false))
		Expect(results[0].Cost).To(Equal("900.00"))
	})
})

var _ = Describe("FormatCost", func() {
	DescribeTable("formatting",
		func(v float64, want string) {
			Expect(search.FormatCost(v)).To(Equal(want))
		},
		Entry("integer", 1500.0, "1500.00"),
		Entry("zero", 0.0, "0.00"),
		Entry("one decimal", 12.5, "12.50"),
		Entry("rounded", 99.999, "100.00"),
		Entry("tie rounds up", 1000.125, "1000.13"),
		Entry("small tie rounds up", 0.125, "0.13"),
		Entry("tie in the second fraction digit", 0.625, "0.63"),
		Entry("value just below a tie", 1.005, "1.00"),
		Entry("negative", -2.5, "-2.50"),
		Entry("not a number", math.NaN(), "NaN"),
	)
})

var _ = Describe("Matches", func() {
	It("should ignore case on both sides of the record", func() {
		Expect(search.Matches("MIXED Case College", "mixed case", false)).To(BeTrue())
		Expect(search.Matches("MIXED Case College", "mixed case college", true)).To(BeTrue())
		Expect(search.Matches("MIXED Case College", "mixed case", true)).To(BeFalse())
	})
})
