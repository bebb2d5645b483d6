package llm

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Llama prompt template", func() {
	It("should wrap messages in header and eot tokens", func() {
		prompt := formatLlamaPrompt([]Message{
			{Role: RoleSystem, Content: "You are helpful."},
			{Role: RoleUser, Content: "Hello"},
		})

		Expect(prompt).To(HavePrefix("<|begin_of_text|>"))
		Expect(prompt).To(ContainSubstring("<|start_header_id|>system<|end_header_id|>\n\nYou are helpful.<|eot_id|>"))
		Expect(prompt).To(ContainSubstring("<|start_header_id|>user<|end_header_id|>\n\nHello<|eot_id|>"))
		Expect(prompt).To(HaveSuffix("<|start_header_id|>assistant<|end_header_id|>\n\n"))
	})

	It("should map the developer role to system", func() {
		prompt := formatLlamaPrompt([]Message{
			{Role: RoleDeveloper, Content: "Be concise."},
		})

		Expect(prompt).To(ContainSubstring("<|start_header_id|>system<|end_header_id|>"))
		Expect(prompt).NotTo(ContainSubstring("developer"))
	})
})

var _ = Describe("cleanGeneration", func() {
	It("should strip leaked special tokens", func() {
		out := cleanGeneration("<|start_header_id|>assistant<|end_header_id|>\n\nHello there<|eot_id|>")
		Expect(out).To(Equal("assistant\n\nHello there"))
	})

	It("should trim surrounding whitespace", func() {
		Expect(cleanGeneration("  answer \n")).To(Equal("answer"))
	})
})

var _ = Describe("validateResponse", func() {
	It("should reject empty content", func() {
		reason, ok := validateResponse("   \n ")
		Expect(ok).To(BeFalse())
		Expect(reason).To(Equal("empty content"))
	})

	It("should reject content shorter than three characters", func() {
		_, ok := validateResponse("ok")
		Expect(ok).To(BeFalse())
	})

	It("should reject output dominated by one repeated word", func() {
		repeated := "spam spam spam spam spam spam spam spam spam spam fin"
		_, ok := validateResponse(repeated)
		Expect(ok).To(BeFalse())
	})

	It("should accept short answers without applying the repetition check", func() {
		_, ok := validateResponse("yes yes yes")
		Expect(ok).To(BeTrue())
	})

	It("should accept normal prose", func() {
		_, ok := validateResponse("The sprint is on track with three issues remaining in review.")
		Expect(ok).To(BeTrue())
	})
})

var _ = Describe("cost", func() {
	It("should price tokens per million", func() {
		Expect(cost(1_000_000, 500_000, 0.24, 0.97)).To(BeNumerically("~", 0.24+0.485, 1e-9))
	})
})

var _ = Describe("azure deployment detection", func() {
	It("should treat o-series deployments as reasoning models", func() {
		Expect(isReasoningModel("o4-mini")).To(BeTrue())
		Expect(isReasoningModel("o3")).To(BeTrue())
		Expect(isReasoningModel("gpt-4")).To(BeFalse())
	})

	It("should price o4-mini and gpt-4 differently", func() {
		in, out := azurePricing("o4-mini")
		Expect(in).To(Equal(6.0))
		Expect(out).To(Equal(24.0))

		in, out = azurePricing("gpt-4")
		Expect(in).To(Equal(30.0))
		Expect(out).To(Equal(60.0))
	})
})
