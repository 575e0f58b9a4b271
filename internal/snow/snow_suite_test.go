package snow_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSnow(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Snow Engine Suite")
}
