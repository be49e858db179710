package search_test

import (
	"errors"
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/college-costs/internal/search"
)

var _ = Describe("ParseParams", func() {
	parse := func(raw string) (search.Params, error) {
		values, err := url.ParseQuery(raw)
		Expect(err).NotTo(HaveOccurred())
		return search.ParseParams(values)
	}

	messages := func(err error) []string {
		var verr *search.ValidationError
		Expect(errors.As(err, &verr)).To(BeTrue())

		var out []string
		for _, fe := range verr.Errors {
			out = append(out, fe.Message)
		}
		return out
	}

	It("should apply defaults", func() {
		p, err := parse("name=Test")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(search.Params{
			Name:                "test",
			ExactMatch:          false,
			IncludeRoomAndBoard: true,
		}))
	})

	It("should lower-case the name", func() {
		p, err := parse("name=Test%20University")
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Name).To(Equal("test university"))
	})

	It("should keep surrounding whitespace in the name", func() {
		p, err := parse("name=%20test%20university%20")
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Name).To(Equal(" test university "))
	})

	DescribeTable("boolean parameters",
		func(raw string, exact, include bool) {
			p, err := parse("name=x&" + raw)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.ExactMatch).To(Equal(exact))
			Expect(p.IncludeRoomAndBoard).To(Equal(include))
		},
		Entry("explicit true/false", "exactMatch=true&includeRoomAndBoard=false", true, false),
		Entry("explicit false/true", "exactMatch=false&includeRoomAndBoard=true", false, true),
		Entry("numeric tokens", "exactMatch=1&includeRoomAndBoard=0", true, false),
		Entry("empty values count as absent", "exactMatch=&includeRoomAndBoard=", false, true),
	)

	It("should reject a missing name", func() {
		_, err := parse("")
		Expect(messages(err)).To(Equal([]string{search.MsgNameRequired}))
	})

	It("should reject a blank name", func() {
		_, err := parse("name=%20%20")
		Expect(messages(err)).To(Equal([]string{search.MsgNameRequired}))
	})

	It("should reject non-boolean flags", func() {
		_, err := parse("name=x&exactMatch=yes")
		Expect(messages(err)).To(Equal([]string{search.MsgExactMatchBoolean}))

		_, err = parse("name=x&includeRoomAndBoard=TRUE")
		Expect(messages(err)).To(Equal([]string{search.MsgIncludeRoomAndBoardBoolean}))
	})

	It("should accumulate every violation in a stable order", func() {
		_, err := parse("exactMatch=maybe&includeRoomAndBoard=nope")
		Expect(messages(err)).To(Equal([]string{
			search.MsgNameRequired,
			search.MsgIncludeRoomAndBoardBoolean,
			search.MsgExactMatchBoolean,
		}))
	})

	It("should report the offending parameter and value", func() {
		_, err := parse("name=x&exactMatch=maybe")

		var verr *search.ValidationError
		Expect(errors.As(err, &verr)).To(BeTrue())
		Expect(verr.Errors).To(ConsistOf(search.FieldError{
			Param:   search.ParamExactMatch,
			Value:   "maybe",
			Message: search.MsgExactMatchBoolean,
		}))
		Expect(verr.Error()).To(Equal(search.MsgExactMatchBoolean))
	})

	It("should use the first value of a repeated parameter", func() {
		p, err := parse("name=First&name=Second")
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Name).To(Equal("first"))
	})
})
