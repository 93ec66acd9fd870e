// Package prompts implements ports.Prompter with charmbracelet/huh forms,
// the way jakoblorz-go-changesets drives its interactive flows: one form per
// prompt, a validator callback wired into huh's own field validation.
package prompts

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/labt-build/labt/internal/core/domain"
	"github.com/labt-build/labt/internal/core/ports"
	"go.trai.ch/zerr"
)

// Prompter implements ports.Prompter.
type Prompter struct{}

var _ ports.Prompter = (*Prompter)(nil)

// New creates a Prompter.
func New() *Prompter { return &Prompter{} }

// wrapValidator adapts a ports.Validator ("" on success, message on
// failure) into huh's func(string) error field validation.
func wrapValidator(v ports.Validator) func(string) error {
	if v == nil {
		return nil
	}
	return func(s string) error {
		if msg := v(s); msg != "" {
			return errors.New(msg)
		}
		return nil
	}
}

func runForm(fields ...huh.Field) error {
	form := huh.NewForm(huh.NewGroup(fields...))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return domain.ErrPromptCancelled
		}
		return zerr.With(zerr.Wrap(err, "prompt failed"), "reason", "terminal unavailable")
	}
	return nil
}

// Confirm is non-cancellable: an abort during the form falls back to def.
func (p *Prompter) Confirm(message string, def bool) (bool, error) {
	value := def
	field := huh.NewConfirm().Title(message).Value(&value)
	if err := runForm(field); err != nil {
		if errors.Is(err, domain.ErrPromptCancelled) {
			return def, nil
		}
		return false, err
	}
	return value, nil
}

// ConfirmOptional is cancellable; ok is false if the user cancelled.
func (p *Prompter) ConfirmOptional(message string) (value, ok bool, err error) {
	field := huh.NewConfirm().Title(message).Value(&value)
	if err := runForm(field); err != nil {
		if errors.Is(err, domain.ErrPromptCancelled) {
			return false, false, nil
		}
		return false, false, err
	}
	return value, true, nil
}

// Input prompts for a line of text.
func (p *Prompter) Input(message, def string, validate ports.Validator) (string, error) {
	value := def
	field := huh.NewInput().Title(message).Value(&value).Validate(wrapValidator(validate))
	if err := runForm(field); err != nil {
		return "", err
	}
	return value, nil
}

// InputNumber prompts for a number: a numeric parse check runs before the
// caller-supplied validator.
func (p *Prompter) InputNumber(message string, def float64, validate ports.Validator) (float64, error) {
	raw := strconv.FormatFloat(def, 'g', -1, 64)
	field := huh.NewInput().Title(message).Value(&raw).Validate(func(s string) error {
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return errors.New("must be a number")
		}
		if validate != nil {
			if msg := validate(s); msg != "" {
				return errors.New(msg)
			}
		}
		return nil
	})
	if err := runForm(field); err != nil {
		return 0, err
	}
	return strconv.ParseFloat(raw, 64)
}

// InputPassword prompts for hidden input.
func (p *Prompter) InputPassword(message string, validate ports.Validator) (string, error) {
	var value string
	field := huh.NewInput().Title(message).EchoMode(huh.EchoModePassword).
		Value(&value).Validate(wrapValidator(validate))
	if err := runForm(field); err != nil {
		return "", err
	}
	return value, nil
}

// Select returns the 1-based index of the chosen option.
func (p *Prompter) Select(message string, options []string) (int, error) {
	var chosen string
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o, o)
	}
	field := huh.NewSelect[string]().Title(message).Options(opts...).Value(&chosen)
	if err := runForm(field); err != nil {
		return 0, err
	}
	for i, o := range options {
		if o == chosen {
			return i + 1, nil
		}
	}
	return 0, zerr.New("selected option not found")
}

// MultiSelect returns the 1-based indices of the chosen options. defaults,
// if non-nil, is aligned by position with options.
func (p *Prompter) MultiSelect(message string, options []string, defaults []bool) ([]int, error) {
	opts := make([]huh.Option[string], len(options))
	var preselected []string
	for i, o := range options {
		opts[i] = huh.NewOption(o, o)
		if i < len(defaults) && defaults[i] {
			preselected = append(preselected, o)
		}
	}
	chosen := preselected
	field := huh.NewMultiSelect[string]().Title(message).Options(opts...).Value(&chosen)
	if err := runForm(field); err != nil {
		return nil, err
	}

	chosenSet := make(map[string]bool, len(chosen))
	for _, c := range chosen {
		chosenSet[c] = true
	}
	var indices []int
	for i, o := range options {
		if chosenSet[o] {
			indices = append(indices, i+1)
		}
	}
	return indices, nil
}
