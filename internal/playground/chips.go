package playground

import (
	"time"

	"github.com/marcus/genie/pkg/overlay"
)

// Chip zone ids. Each id is both the marked zone and the anchor id of its
// trigger binding.
const (
	chipProfile = "chip/profile"
	chipActions = "chip/actions"
	chipHint    = "chip/hint"
	chipMenu    = "chip/menu"
	chipToast   = "chip/toast"
	chipModal   = "chip/modal"
)

const toastDuration = 2 * time.Second

// chipSpec pairs a chip with its gallery row.
type chipSpec struct {
	id    string
	label string
	desc  string
}

func chipSpecs() []chipSpec {
	return []chipSpec{
		{chipProfile, "Profile", "click, card with buttons"},
		{chipActions, "Actions", "click, scrolling list"},
		{chipHint, "Hint", "hover, open while the pointer stays"},
		{chipMenu, "Menu", "right click, context menu"},
		{chipToast, "Toast", "click, closes itself after 2s"},
		{chipModal, "Modal", "click, backdrop and escape"},
	}
}

// bindChips registers the gallery triggers. It runs again after a theme
// change: rebinding an anchor replaces its binding and closes its panel,
// so the next open picks up the new config.
func (m Model) bindChips() {
	mgr := m.mgr
	shared := m.shared
	logger := m.logger

	animation := "fade"
	if m.reduced {
		animation = ""
	}

	// Profile card: the buttons emit actions, sign out closes the panel
	// through the binding's open handle.
	var profile *overlay.Binding
	profileCfg := overlay.Config{
		Content: overlay.NewContent(
			overlay.Title("Marcus Webb"),
			overlay.Muted("marcus@genie.dev"),
			overlay.Spacer(),
			overlay.Text("Signed in 2h ago from a tmux session."),
			overlay.Spacer(),
			overlay.Buttons(
				overlay.Btn("View profile", "view"),
				overlay.Btn("Sign out", "signout", overlay.BtnDanger()),
			),
		),
		Animation:           animation,
		CloseOnEscape:       true,
		CloseOnClickOutside: true,
		MaxWidth:            "40px",
		Theme:               m.themeName,
		OnAction: func(action string) {
			shared.note("profile: " + action)
			if action == "signout" && profile != nil {
				mgr.Close(profile.OverlayID())
			}
		},
	}
	profile = mgr.Bind(chipProfile, overlay.TriggerClick, profileCfg)

	// Actions list: three visible rows over five items, so choosing near
	// the bottom scrolls. The selection index survives reopen cycles.
	actionItems := []overlay.ListItem{
		{ID: "deploy", Label: "Deploy to staging"},
		{ID: "restart", Label: "Restart workers"},
		{ID: "logs", Label: "Tail logs"},
		{ID: "rollback", Label: "Roll back release"},
		{ID: "scale", Label: "Scale to three replicas"},
	}
	var actions *overlay.Binding
	actionsCfg := overlay.Config{
		Content: overlay.NewContent(
			overlay.Title("Actions"),
			overlay.List("actions", actionItems, m.actionsSel, overlay.WithMaxVisible(3)),
			overlay.Spacer(),
			overlay.Muted("up/down move, enter runs"),
		),
		Animation:           animation,
		CloseOnEscape:       true,
		CloseOnClickOutside: true,
		MaxWidth:            "36px",
		Theme:               m.themeName,
		OnAction: func(action string) {
			shared.note("actions: " + action)
			logger.Info("action chosen", "action", action)
			if actions != nil {
				mgr.Close(actions.OverlayID())
			}
		},
	}
	actions = mgr.Bind(chipActions, overlay.TriggerClick, actionsCfg)

	// Hover hint: no close flags at all, leaving the chip closes it.
	mgr.Bind(chipHint, overlay.TriggerHover, overlay.Config{
		Content: overlay.NewContent(
			overlay.Text("Hover panels close when the pointer leaves their anchor."),
		),
		Variant:   overlay.VariantInfo,
		Animation: animation,
		MaxWidth:  "32px",
		Theme:     m.themeName,
	})

	// Context menu: danger accent, both dismissal paths enabled.
	var menu *overlay.Binding
	menuCfg := overlay.Config{
		Content: overlay.NewContent(
			overlay.Title("Delete worktree?"),
			overlay.Muted("This cannot be undone."),
			overlay.Spacer(),
			overlay.Buttons(
				overlay.Btn("Delete", "delete", overlay.BtnDanger()),
				overlay.Btn("Cancel", "cancel"),
			),
		),
		Variant:             overlay.VariantDanger,
		Animation:           animation,
		CloseOnEscape:       true,
		CloseOnClickOutside: true,
		Theme:               m.themeName,
	}
	menuCfg.OnAction = func(action string) {
		shared.note("menu: " + action)
		if menu != nil {
			mgr.Close(menu.OverlayID())
		}
	}
	menu = mgr.Bind(chipMenu, overlay.TriggerContextMenu, menuCfg)

	// Toast: closes itself. OnHide fires from the timer goroutine and only
	// touches shared state.
	mgr.Bind(chipToast, overlay.TriggerClick, overlay.Config{
		Content: overlay.NewContent(
			overlay.Text("Saved. This panel closes itself."),
		),
		Variant:   overlay.VariantWarning,
		Animation: animation,
		AutoClose: toastDuration,
		MaxWidth:  "36px",
		Theme:     m.themeName,
		OnHide:    func() { shared.note("toast: closed") },
	})

	// Modal: content built at open time, so the close callback handed to
	// ContentFunc can back the Done button.
	var closeModal func()
	modalCfg := overlay.Config{
		ContentFunc: func(close func()) *overlay.Content {
			closeModal = close
			return overlay.NewContent(
				overlay.Title("Release 0.4"),
				overlay.Spacer(),
				overlay.Text("Panels escape their anchor's layout: nothing in the host view clips or buries them."),
				overlay.Spacer(),
				overlay.Buttons(overlay.Btn("Done", "done")),
			)
		},
		Backdrop:            true,
		Animation:           animation,
		CloseOnEscape:       true,
		CloseOnClickOutside: true,
		MinWidth:            "44px",
		MaxWidth:            "50%",
		Theme:               m.themeName,
		OnAction: func(action string) {
			shared.note("modal: " + action)
			if action == "done" && closeModal != nil {
				closeModal()
			}
		},
	}
	mgr.Bind(chipModal, overlay.TriggerClick, modalCfg)
}
