package models

// ResponseKind discriminates the two outcomes of parsing model output.
type ResponseKind string

const (
	ResponseStructured ResponseKind = "structured"
	ResponseRaw        ResponseKind = "raw"
)

// AIResponse is the result of validating a language model's text against the
// expected JSON contract. Callers must branch on Kind: Structured carries the
// parsed object, Raw carries the original text with ParseError set so the UI
// can still display something and flag the anomaly.
type AIResponse struct {
	Kind       ResponseKind
	Structured map[string]any
	Raw        string
	ParseError bool
}
