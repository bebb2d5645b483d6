package llm_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"ficct.app/scrum/common/llm"
	"ficct.app/scrum/core/config"
)

type fakeProvider struct {
	key        string
	model      string
	generateFn func(ctx context.Context, req llm.Request) (*llm.Response, error)
	calls      int
}

func (f *fakeProvider) Key() string   { return f.key }
func (f *fakeProvider) Model() string { return f.model }

func (f *fakeProvider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	f.calls++
	return f.generateFn(ctx, req)
}

func okProvider(key, content string) *fakeProvider {
	return &fakeProvider{
		key:   key,
		model: key,
		generateFn: func(_ context.Context, _ llm.Request) (*llm.Response, error) {
			return &llm.Response{
				Content:      content,
				Provider:     key,
				Model:        key,
				InputTokens:  100,
				OutputTokens: 50,
				CostUSD:      0.001,
			}, nil
		},
	}
}

func failingProvider(key string, err error) *fakeProvider {
	return &fakeProvider{
		key:   key,
		model: key,
		generateFn: func(_ context.Context, _ llm.Request) (*llm.Response, error) {
			return nil, err
		},
	}
}

var _ = Describe("Proxy", func() {
	var (
		ctx context.Context
		req llm.Request
	)

	BeforeEach(func() {
		ctx = context.Background()
		req = llm.Request{
			Messages:  []llm.Message{{Role: llm.RoleUser, Content: "summarize the sprint"}},
			MaxTokens: 512,
		}
	})

	Describe("Generate", func() {
		Context("when the first provider succeeds", func() {
			It("should return its response without touching the rest of the chain", func() {
				first := okProvider("bedrock/llama4-maverick", "All twelve issues are done.")
				second := okProvider("bedrock/llama4-scout", "unused")

				proxy := llm.NewProxy([]llm.Provider{first, second}, config.ProxyConfig{FallbackEnabled: true})
				resp, err := proxy.Generate(ctx, req)

				Expect(err).NotTo(HaveOccurred())
				Expect(resp.Provider).To(Equal("bedrock/llama4-maverick"))
				Expect(second.calls).To(BeZero())
				Expect(resp.Attempts).To(HaveLen(1))
			})
		})

		Context("when the first provider errors", func() {
			It("should fall through to the next provider", func() {
				first := failingProvider("bedrock/llama4-maverick", errors.New("throttled"))
				second := okProvider("bedrock/llama4-scout", "Sprint velocity held steady at 21 points.")

				proxy := llm.NewProxy([]llm.Provider{first, second}, config.ProxyConfig{FallbackEnabled: true})
				resp, err := proxy.Generate(ctx, req)

				Expect(err).NotTo(HaveOccurred())
				Expect(resp.Provider).To(Equal("bedrock/llama4-scout"))
				Expect(resp.Attempts).To(HaveLen(2))
				Expect(resp.Attempts[0].Error).To(ContainSubstring("throttled"))
				Expect(resp.Attempts[1].Error).To(BeEmpty())
			})
		})

		Context("when a provider returns a degenerate response", func() {
			It("should treat it as a failure and keep going", func() {
				first := okProvider("bedrock/llama4-maverick", "")
				second := okProvider("azure/o4-mini", "The board has three blocked issues.")

				proxy := llm.NewProxy([]llm.Provider{first, second}, config.ProxyConfig{FallbackEnabled: true})
				resp, err := proxy.Generate(ctx, req)

				Expect(err).NotTo(HaveOccurred())
				Expect(resp.Provider).To(Equal("azure/o4-mini"))
				Expect(resp.Attempts[0].Error).To(ContainSubstring("invalid response"))
			})
		})

		Context("when every provider fails", func() {
			It("should return ErrAllProvidersFailed with the attempt history", func() {
				first := failingProvider("bedrock/llama4-maverick", errors.New("throttled"))
				second := failingProvider("azure/o4-mini", errors.New("deployment not found"))

				proxy := llm.NewProxy([]llm.Provider{first, second}, config.ProxyConfig{FallbackEnabled: true})
				_, err := proxy.Generate(ctx, req)

				var allFailed *llm.ErrAllProvidersFailed
				Expect(errors.As(err, &allFailed)).To(BeTrue())
				Expect(allFailed.Attempts).To(HaveLen(2))
				Expect(err.Error()).To(ContainSubstring("azure/o4-mini"))
			})
		})

		Context("when fallback is disabled", func() {
			It("should only try the first provider", func() {
				first := failingProvider("bedrock/llama4-maverick", errors.New("throttled"))
				second := okProvider("bedrock/llama4-scout", "unused")

				proxy := llm.NewProxy([]llm.Provider{first, second}, config.ProxyConfig{FallbackEnabled: false})
				_, err := proxy.Generate(ctx, req)

				Expect(err).To(HaveOccurred())
				Expect(second.calls).To(BeZero())
			})
		})

		Context("when no providers are configured", func() {
			It("should return ErrNoProviders", func() {
				proxy := llm.NewProxy(nil, config.ProxyConfig{FallbackEnabled: true})
				_, err := proxy.Generate(ctx, req)
				Expect(err).To(MatchError(llm.ErrNoProviders))
			})
		})
	})

	Describe("Stats", func() {
		It("should track token and cost totals per provider", func() {
			first := okProvider("azure/o4-mini", "Looks good.")
			proxy := llm.NewProxy([]llm.Provider{first}, config.ProxyConfig{FallbackEnabled: true})

			_, err := proxy.Generate(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			_, err = proxy.Generate(ctx, req)
			Expect(err).NotTo(HaveOccurred())

			stats := proxy.Stats()
			usage := stats["azure/o4-mini"]
			Expect(usage.Requests).To(Equal(int64(2)))
			Expect(usage.Failures).To(BeZero())
			Expect(usage.InputTokens).To(Equal(int64(200)))
			Expect(usage.OutputTokens).To(Equal(int64(100)))
			Expect(usage.CostUSD).To(BeNumerically("~", 0.002, 1e-9))
		})

		It("should count failed attempts as failures", func() {
			first := failingProvider("bedrock/llama4-maverick", errors.New("boom"))
			second := okProvider("azure/o4-mini", "Recovered fine.")
			proxy := llm.NewProxy([]llm.Provider{first, second}, config.ProxyConfig{FallbackEnabled: true})

			_, err := proxy.Generate(ctx, req)
			Expect(err).NotTo(HaveOccurred())

			stats := proxy.Stats()
			Expect(stats["bedrock/llama4-maverick"].Failures).To(Equal(int64(1)))
			Expect(stats["azure/o4-mini"].Failures).To(BeZero())
		})

		It("should clear counters on reset", func() {
			first := okProvider("azure/o4-mini", "Looks good.")
			proxy := llm.NewProxy([]llm.Provider{first}, config.ProxyConfig{FallbackEnabled: true})

			_, err := proxy.Generate(ctx, req)
			Expect(err).NotTo(HaveOccurred())

			proxy.ResetStats()
			Expect(proxy.Stats()).To(BeEmpty())
		})
	})
})
