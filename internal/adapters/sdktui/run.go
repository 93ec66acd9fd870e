package sdktui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/labt-build/labt/internal/core/domain"
	"github.com/labt-build/labt/internal/core/ports"
	"go.trai.ch/zerr"
)

// Picker implements ports.SDKPicker by running the bubbletea program.
type Picker struct{}

var _ ports.SDKPicker = Picker{}

// NewPicker creates a Picker.
func NewPicker() Picker { return Picker{} }

// Pick runs the interactive listing to completion.
func (Picker) Pick(packages []domain.SDKPackage) ([]domain.PackageSelection, error) {
	program := tea.NewProgram(New(packages))
	final, err := program.Run()
	if err != nil {
		return nil, zerr.Wrap(err, "interactive SDK listing failed")
	}
	model, ok := final.(Model)
	if !ok {
		return nil, zerr.New("interactive SDK listing returned an unexpected model type")
	}
	selections, confirmed := model.Selections()
	if !confirmed {
		return nil, nil
	}
	return selections, nil
}
