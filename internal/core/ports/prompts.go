package ports

// Validator checks a candidate value, returning a human-readable error
// message, or "" on success.
type Validator func(value string) string

// Prompter implements the Host API's Prompts surface.
type Prompter interface {
	// Confirm is non-cancellable: an abort during the prompt returns def.
	Confirm(message string, def bool) (bool, error)

	// ConfirmOptional is cancellable; ok is false if the user cancelled.
	ConfirmOptional(message string) (value, ok bool, err error)

	// Input prompts for a line of text, applying validate if non-nil.
	Input(message, def string, validate Validator) (string, error)

	// InputNumber prompts for a number, applying validate (against the raw
	// string) if non-nil, after a numeric parse check.
	InputNumber(message string, def float64, validate Validator) (float64, error)

	// InputPassword prompts for hidden input, applying validate if non-nil.
	InputPassword(message string, validate Validator) (string, error)

	// Select returns the 1-based index of the chosen option.
	Select(message string, options []string) (int, error)

	// MultiSelect returns the 1-based indices of the chosen options.
	// defaults, if non-nil, is aligned by position with options.
	MultiSelect(message string, options []string, defaults []bool) ([]int, error)
}
