package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-responsegen/pkg/config"
)

func TestNew(t *testing.T) {
	model, err := New(config.LLM{Model: "gpt-4", APIKey: "sk-test", BaseURL: "http://localhost:1/v1"})
	require.NoError(t, err)
	assert.NotNil(t, model)
}
