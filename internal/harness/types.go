package harness

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success: the verdict, the report
	// and every assertion matched.
	Pass bool `json:"pass"`

	// Equal is the comparison verdict: no missing rows and no extra items.
	Equal bool `json:"equal"`

	// Missing are the 0-based indices of unmatched rows, ascending.
	Missing []int `json:"missing"`

	// Extra is the number of unmatched items.
	Extra int `json:"extra"`

	// Report is the rendered report. Empty when Equal is true.
	Report string `json:"report,omitempty"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Missing: []int{},
		Errors:  []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
