package domain

// GenerationRequest is built once per invocation and reused for every regeneration.
type GenerationRequest struct {
	Query string
	Shell ShellVariant
	Model string
}

// PromptMessage follows the role/content pair required by chat APIs.
type PromptMessage struct {
	Role    string
	Content string
}

// Verdict is the outcome of the acceptability check on a generated command.
type Verdict struct {
	OK     bool
	Reason string
}

// DeliveryOutcome reports which delivery paths worked.
type DeliveryOutcome struct {
	ClipboardSucceeded bool
	HistorySucceeded   bool
	// Printed is set when neither path worked and the command was echoed instead.
	Printed bool
	// HistoryTarget names the file or mechanism the command was appended to.
	HistoryTarget string
	Notes         []string
}

// Delivered reports whether the command reached clipboard or history.
func (o DeliveryOutcome) Delivered() bool {
	return o.ClipboardSucceeded || o.HistorySucceeded
}
