package cli_test

import (
	"testing"

	"gitless.dev/gl/testhelpers"
)

func TestMain(m *testing.M) {
	testhelpers.TestMain(m)
}
