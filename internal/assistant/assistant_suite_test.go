package assistant_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"ficct.app/scrum/common/id"
)

func TestAssistant(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Assistant Suite")
}

var _ = BeforeSuite(func() {
	Expect(id.Init(1)).To(Succeed())
})
