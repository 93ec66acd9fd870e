// Package sdktui implements the interactive SDK package listing: a terminal
// list filtered by channel and fuzzy query, toggled per-package actions, and
// a confirmation step before the resulting plan is handed to the installer.
package sdktui

import (
	"fmt"

	"github.com/labt-build/labt/internal/core/domain"
)

// packageItem adapts a domain.SDKPackage plus its pending action to
// bubbles/list's item interface: FilterValue feeds the list's built-in fuzzy
// filter, Title/Description feed the default delegate's two-line rendering.
type packageItem struct {
	pkg    domain.SDKPackage
	action domain.PackageAction
}

// FilterValue returns the text the list's fuzzy filter matches against.
func (i packageItem) FilterValue() string {
	return i.pkg.Path + " " + i.pkg.DisplayName
}

// Title renders the package path with its action marker.
func (i packageItem) Title() string {
	marker := actionMarker(i.action)
	if i.pkg.DisplayName != "" {
		return fmt.Sprintf("%s %s (%s)", marker, i.pkg.DisplayName, i.pkg.Path)
	}
	return fmt.Sprintf("%s %s", marker, i.pkg.Path)
}

// Description renders revision, channel, and installed state.
func (i packageItem) Description() string {
	state := "not installed"
	if i.pkg.Installed {
		state = "installed"
	}
	return fmt.Sprintf("%s  %s  %s", i.pkg.Revision.String(), i.pkg.Channel, state)
}

func actionMarker(a domain.PackageAction) string {
	switch a {
	case domain.ActionInstall:
		return "[+]"
	case domain.ActionUninstall:
		return "[-]"
	case domain.ActionUpgradeTo:
		return "[^]"
	case domain.ActionDowngradeTo:
		return "[v]"
	default:
		return "[ ]"
	}
}

// nextAction cycles a package's action in place: none -> install/uninstall
// depending on current installed state -> none. Upgrade/downgrade actions
// are never produced here, and nothing else in the listing sets them.
func nextAction(pkg domain.SDKPackage, current domain.PackageAction) domain.PackageAction {
	if current != domain.ActionNone {
		return domain.ActionNone
	}
	if pkg.Installed {
		return domain.ActionUninstall
	}
	return domain.ActionInstall
}
