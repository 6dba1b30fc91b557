package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestDefaultKeyMap_AllBindingsDefined(t *testing.T) {
	km := DefaultKeyMap()

	bindings := []struct {
		name    string
		binding key.Binding
	}{
		{"Up", km.Up},
		{"Down", km.Down},
		{"Left", km.Left},
		{"Right", km.Right},
		{"PageUp", km.PageUp},
		{"PageDown", km.PageDown},
		{"Click", km.Click},
		{"Size", km.Size},
		{"Reset", km.Reset},
		{"Help", km.Help},
		{"Quit", km.Quit},
		{"Confirm", km.Confirm},
		{"Cancel", km.Cancel},
	}

	for _, b := range bindings {
		t.Run(b.name, func(t *testing.T) {
			if !b.binding.Enabled() {
				t.Errorf("expected %s binding to be enabled", b.name)
			}
			keys := b.binding.Keys()
			if len(keys) == 0 {
				t.Errorf("expected %s binding to have at least one key", b.name)
			}
		})
	}
}

func TestDefaultKeyMap_QuitKeys(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Quit.Keys()
	hasQ := false
	hasCtrlC := false
	for _, k := range keys {
		switch k {
		case "q":
			hasQ = true
		case "ctrl+c":
			hasCtrlC = true
		}
	}

	if !hasQ {
		t.Error("expected Quit binding to include 'q'")
	}
	if !hasCtrlC {
		t.Error("expected Quit binding to include 'ctrl+c'")
	}
}

func TestDefaultKeyMap_ClickKeys(t *testing.T) {
	km := DefaultKeyMap()
	want := map[string]bool{"enter": true, " ": true}
	for _, k := range km.Click.Keys() {
		delete(want, k)
	}
	if len(want) != 0 {
		t.Errorf("Click binding is missing %v", want)
	}
}

func TestKeyMap_HelpGroups(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("short help is empty")
	}
	n := 0
	for _, group := range km.FullHelp() {
		n += len(group)
	}
	if n != 11 {
		t.Errorf("full help lists %d bindings, want 11", n)
	}
}
