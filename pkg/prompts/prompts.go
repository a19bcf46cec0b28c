package prompts

var (
	Solver = `
You are an expert writer working on the following task:
{{.Task}}
{{if .Draft}}
This is the response you wrote last time:
{{.Draft}}
{{end}}{{if .Feedback}}
Your reviewers gave you this feedback, take it into account in your new response:
{{.Feedback}}
{{end}}
Write the best possible response to the task.

{{.FormatInstructions}}
`

	Critic = `
You are a careful reviewer. A writer has been given the following task:
{{.Task}}

This is the writer's response:
{{.Response}}

Check the response for mistakes, missing information and anything that does not answer the task.
Only disagree if there is something the writer must fix.

{{.FormatInstructions}}
`

	Evaluator = `
You are an experienced judge of written responses. A writer has been given the following task:
{{.Task}}

This is the writer's response:
{{.Response}}

Rate the response on each of these dimensions: {{.Dimensions}}.
Then give advice on how the response could be improved.

{{.FormatInstructions}}
`
)

var (
	SolverInputs    = []string{"Task", "Draft", "Feedback", "FormatInstructions"}
	CriticInputs    = []string{"Task", "Response", "FormatInstructions"}
	EvaluatorInputs = []string{"Task", "Response", "Dimensions", "FormatInstructions"}
)
