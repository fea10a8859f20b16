package creditcard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMask(t *testing.T) {
	masked, err := Mask("4111 1111-1111,1111")
	assert.NoError(t, err)
	assert.Equal(t, "411111******1111", masked)
}

func TestMask_Invalid(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "seventeen digits", input: "41111111111111111"},
		{name: "non digit input", input: "4111-1111-abcd-1111"},
		{name: "empty", input: ""},
		{name: "too short to mask", input: "411111"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			masked, err := Mask(tc.input)
			assert.Error(t, err)
			assert.Empty(t, masked)
		})
	}
}
