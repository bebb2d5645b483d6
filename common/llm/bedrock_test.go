package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("sampling", func() {
	It("should default unset temperature and top_p", func() {
		temperature, topP := sampling(Request{})
		Expect(temperature).To(BeNumerically("~", 0.7, 1e-9))
		Expect(topP).To(BeNumerically("~", 0.9, 1e-9))
	})

	It("should keep explicit values", func() {
		temperature, topP := sampling(Request{Temperature: 0.2, TopP: 0.5})
		Expect(temperature).To(BeNumerically("~", 0.2, 1e-9))
		Expect(topP).To(BeNumerically("~", 0.5, 1e-9))
	})
})

var _ = Describe("bedrockProvider", func() {
	var (
		captured bedrockRequest
		srv      *httptest.Server
		provider *bedrockProvider
	)

	BeforeEach(func() {
		captured = bedrockRequest{}
		srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(json.Unmarshal(body, &captured)).To(Succeed())
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"generation":"All good here.","prompt_token_count":12,"generation_token_count":4,"stop_reason":"stop"}`))
		}))
		DeferCleanup(srv.Close)

		client := bedrockruntime.New(bedrockruntime.Options{
			Region:       "us-east-1",
			BaseEndpoint: aws.String(srv.URL),
			Credentials:  credentials.NewStaticCredentialsProvider("test", "test", ""),
		})
		provider = &bedrockProvider{
			client:      client,
			key:         "bedrock/llama4-maverick",
			modelID:     modelLlama4Maverick,
			inputPrice:  0.24,
			outputPrice: 0.97,
		}
	})

	It("should send default sampling parameters when the request leaves them unset", func() {
		resp, err := provider.Generate(context.Background(), Request{
			Messages: []Message{{Role: RoleUser, Content: "hello"}},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.Content).To(Equal("All good here."))
		Expect(captured.Temperature).To(BeNumerically("~", 0.7, 1e-9))
		Expect(captured.TopP).To(BeNumerically("~", 0.9, 1e-9))
		Expect(captured.MaxGenLen).To(Equal(bedrockMaxGenLen))
	})

	It("should pass explicit sampling parameters through", func() {
		_, err := provider.Generate(context.Background(), Request{
			Messages:    []Message{{Role: RoleUser, Content: "hello"}},
			Temperature: 0.1,
			TopP:        0.4,
			MaxTokens:   256,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(captured.Temperature).To(BeNumerically("~", 0.1, 1e-9))
		Expect(captured.TopP).To(BeNumerically("~", 0.4, 1e-9))
		Expect(captured.MaxGenLen).To(Equal(256))
	})
})
