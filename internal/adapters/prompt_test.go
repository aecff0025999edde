package adapters

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func confirmWith(input string) (bool, string) {
	out := &bytes.Buffer{}
	prompt := StdinPrompt{In: strings.NewReader(input), Out: out}
	return prompt.Confirm("install it"), out.String()
}

func TestConfirmAccepts(t *testing.T) {
	for _, input := range []string{"y\n", "Y\n", "yes\n", " YES \n"} {
		answer, _ := confirmWith(input)
		assert.True(t, answer, input)
	}
}

func TestConfirmRejects(t *testing.T) {
	for _, input := range []string{"n\n", "no\n", "N\n"} {
		answer, _ := confirmWith(input)
		assert.False(t, answer, input)
	}
}

func TestConfirmReasksOnGarbage(t *testing.T) {
	answer, output := confirmWith("maybe\ny\n")
	assert.True(t, answer)
	assert.Contains(t, output, "please answer y or n")
}

func TestConfirmEOFMeansNo(t *testing.T) {
	answer, _ := confirmWith("")
	assert.False(t, answer)
}
