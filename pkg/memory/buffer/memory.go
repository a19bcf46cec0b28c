package buffer

// Memories is the ordered transcript of every prompt sent to an agent and
// what came back.
type Memories struct {
	Items []Memory `json:"memories"`
}

type Memory struct {
	Agent    string      `json:"agent"`
	Question string      `json:"question"`
	Answer   interface{} `json:"answer"`
}

func (m *Memories) Add(m2 Memory) {
	m.Items = append(m.Items, m2)
}

// Snapshot returns a copy of the transcript.
func (m *Memories) Snapshot() []Memory {
	return append([]Memory(nil), m.Items...)
}
