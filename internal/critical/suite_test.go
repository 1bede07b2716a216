package critical

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCritical(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Critical Suite")
}
