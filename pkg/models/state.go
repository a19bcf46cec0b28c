package models

type State string

const (
	Init       State = "init"
	Thinking   State = "thinking"
	Reviewing  State = "reviewing"
	Evaluating State = "evaluating"
	Idle       State = "idle"
	Failed     State = "failed" // dead state
	Finished   State = "finished"
)

// Done reports whether s is a final state.
func (s State) Done() bool {
	return s == Failed || s == Finished
}
