package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemories(t *testing.T) {
	m := Memories{}
	m.Add(Memory{Agent: "solver", Question: "q1", Answer: "a1"})
	snap := m.Snapshot()
	m.Add(Memory{Agent: "critic", Question: "q2", Answer: "a2"})

	assert.Len(t, snap, 1)
	assert.Len(t, m.Items, 2)
	assert.Equal(t, "critic", m.Items[1].Agent)
}
