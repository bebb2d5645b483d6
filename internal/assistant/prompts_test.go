package assistant

import (
	"strings"
	"unicode/utf8"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"ficct.app/scrum/internal/model"
)

var _ = Describe("buildContextBlock", func() {
	It("clips long descriptions without splitting a rune", func() {
		desc := strings.Repeat("ñ", 350)
		block := buildContextBlock([]RetrievedIssue{{
			Key:   "PAY-7",
			Issue: model.Issue{Title: "Migración de pagos", Priority: model.PriorityP2, Description: desc},
		}})

		Expect(utf8.ValidString(block)).To(BeTrue())
		Expect(block).To(ContainSubstring(strings.Repeat("ñ", 300) + "…"))
		Expect(block).NotTo(ContainSubstring(strings.Repeat("ñ", 301)))
	})

	It("keeps short descriptions intact", func() {
		block := buildContextBlock([]RetrievedIssue{{
			Key:   "PAY-8",
			Issue: model.Issue{Title: "Checkout", Priority: model.PriorityP3, Description: "corto"},
		}})
		Expect(block).To(ContainSubstring("corto"))
		Expect(block).NotTo(ContainSubstring("…"))
	})
})
