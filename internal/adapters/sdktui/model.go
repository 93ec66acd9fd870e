package sdktui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/labt-build/labt/internal/core/domain"
)

// channelCycle is the fixed order "c" steps through: all channels, then each
// named channel from most to least stable.
var channelCycle = []domain.Channel{"", domain.ChannelStable, domain.ChannelBeta, domain.ChannelDev, domain.ChannelCanary}

// Model is the bubbletea model driving the interactive SDK package listing.
// The list's own "/" key drives fuzzy filtering over FilterValue; "c" cycles
// an additional channel filter this model applies on top.
type Model struct {
	list      list.Model
	packages  []domain.SDKPackage
	actions   map[string]domain.PackageAction
	channel   domain.Channel
	confirmed bool
	cancelled bool
}

// New builds a Model listing packages, all initially with action "none".
func New(packages []domain.SDKPackage) Model {
	actions := make(map[string]domain.PackageAction, len(packages))
	for _, p := range packages {
		actions[p.Path] = domain.ActionNone
	}

	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.Title = "SDK Packages"
	l.Styles.Title = titleStyle

	m := Model{list: l, packages: packages, actions: actions}
	m.list.SetItems(m.items())
	return m
}

func (m Model) items() []list.Item {
	items := make([]list.Item, 0, len(m.packages))
	for _, p := range m.packages {
		if m.channel != "" && p.Channel != m.channel {
			continue
		}
		items = append(items, packageItem{pkg: p, action: m.actions[p.Path]})
	}
	return items
}

// Init satisfies tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update satisfies tea.Model.
//
//nolint:gocritic // list.Model is intentionally passed by value, matching bubbles' own idiom
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "y":
			m.confirmed = true
			return m, tea.Quit
		case "c":
			m.channel = nextChannel(m.channel)
			m.list.Title = fmt.Sprintf("SDK Packages (channel: %s)", channelLabel(m.channel))
			m.list.SetItems(m.items())
			return m, nil
		case " ", "enter":
			if item, ok := m.list.SelectedItem().(packageItem); ok {
				m.actions[item.pkg.Path] = nextAction(item.pkg, m.actions[item.pkg.Path])
				m.list.SetItems(m.items())
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View satisfies tea.Model.
func (m Model) View() string {
	return m.list.View() + "\n" + helpStyle.Render("space/enter: toggle  c: channel  /: search  y: confirm  q: cancel")
}

// Selections returns the user's final choices, excluding untouched
// packages, once the program has quit.
func (m Model) Selections() ([]domain.PackageSelection, bool) {
	if m.cancelled || !m.confirmed {
		return nil, false
	}
	var out []domain.PackageSelection
	for _, p := range m.packages {
		if action := m.actions[p.Path]; action != domain.ActionNone {
			out = append(out, domain.PackageSelection{Package: p, Action: action})
		}
	}
	return out, true
}

func nextChannel(c domain.Channel) domain.Channel {
	for i, v := range channelCycle {
		if v == c {
			return channelCycle[(i+1)%len(channelCycle)]
		}
	}
	return channelCycle[0]
}

func channelLabel(c domain.Channel) string {
	if c == "" {
		return "all"
	}
	return string(c)
}
