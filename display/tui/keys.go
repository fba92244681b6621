package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings for the dashboard.
type keyMap struct {
	Quit      key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Tab1      key.Binding
	Tab2      key.Binding
	Tab3      key.Binding
	Tab4      key.Binding
	Tab5      key.Binding
	Up        key.Binding
	Down      key.Binding
	GoTop     key.Binding
	GoBottom  key.Binding
	Sort      key.Binding
	Search    key.Binding
	Ascending key.Binding
	Kill      key.Binding
	NiceUp    key.Binding
	NiceDown  key.Binding
	Help      key.Binding
}

// keys holds the default key bindings used by the dashboard.
var keys = keyMap{
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	NextTab:   key.NewBinding(key.WithKeys("right", "tab"), key.WithHelp("→", "next tab")),
	PrevTab:   key.NewBinding(key.WithKeys("left", "shift+tab"), key.WithHelp("←", "prev tab")),
	Tab1:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "processes")),
	Tab2:      key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "cpu")),
	Tab3:      key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "system")),
	Tab4:      key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "disk")),
	Tab5:      key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "network")),
	Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "select up")),
	Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "select down")),
	GoTop:     key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	GoBottom:  key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort by...")),
	Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Ascending: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "flip order")),
	Kill:      key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "kill")),
	NiceUp:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "nice +1")),
	NiceDown:  key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "nice -1")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

// helpText is the status-line summary shown on '?'.
const helpText = "[s]ort by: [n]ame, [p]id, [u]ser, [m]em; [/] search; flip [a]scending; [G]oto bottom; [k]ill; [q]uit, [n/N]ice+/-"
