// Package tui implements the interactive procpulse dashboard: five tabs
// over live /proc data with sorting, searching, and process control.
package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"golang.org/x/sys/unix"

	"gitlab.com/tinyland/lab/procpulse/config"
	"gitlab.com/tinyland/lab/procpulse/display/widgets"
	"gitlab.com/tinyland/lab/procpulse/history"
	"gitlab.com/tinyland/lab/procpulse/proc"
	"gitlab.com/tinyland/lab/procpulse/procview"
)

// Tab identifies which tab is currently active.
type Tab int

const (
	TabProcesses Tab = iota
	TabCpu
	TabSystem
	TabDisk
	TabNetwork
	tabCount // sentinel for wrapping
)

// tabNames maps each Tab value to its display label.
var tabNames = map[Tab]string{
	TabProcesses: "Processes",
	TabCpu:       "Cpu",
	TabSystem:    "System",
	TabDisk:      "Disk",
	TabNetwork:   "Network",
}

// Mode is the input mode of the dashboard.
type Mode int

const (
	// ModeNormal routes keys to navigation and control bindings.
	ModeNormal Mode = iota
	// ModeSearch routes keys to the search pattern editor.
	ModeSearch
)

// statusAge is how long an advisory status message stays on screen.
const statusAge = 3 * time.Second

// tickMsg drives a collection pass.
type tickMsg time.Time

// controlMsg carries a control operation outcome from the status channel.
type controlMsg proc.StatusMessage

// Model is the top-level Bubbletea model for the dashboard. All mutable
// state lives here and is only touched from the update loop; the
// terminal reader goroutine and the status channel deliver messages into
// it but never share memory with it.
type Model struct {
	collector *proc.Collector
	logger    *slog.Logger

	refresh  time.Duration
	maxProcs int

	// Process view state.
	processes []proc.ProcessRecord
	visible   []proc.ProcessRecord
	from      int
	sortKey   procview.SortKey
	ascending bool
	filterKey procview.FilterKey
	pattern   string
	exact     bool
	selected  int

	activeTab   Tab
	mode        Mode
	sortPending bool
	search      textinput.Model
	searchTyped bool

	// Resource state refreshed each tick.
	sys        *unix.Sysinfo_t
	cpuUsage   []float64
	loadHist   *history.Series
	memHist    *history.Series
	cpuHist    *history.Series
	diskStats  []proc.DiskCounters
	diskHist   map[string]*history.Series
	netStats   []proc.NetworkCounters
	netHist    map[string]*history.Series

	// Advisory status message.
	status    string
	statusErr bool
	statusAt  time.Time

	// statusCh carries control operation outcomes back into the update
	// loop. Buffered so Notify senders never block.
	statusCh chan proc.StatusMessage

	width  int
	height int
	ready  bool
}

// New returns an initialized Model with TabProcesses active, seeded from
// the configuration. An invalid sort or filter key in the config becomes
// a status-line error rather than a startup failure.
func New(collector *proc.Collector, cfg *config.Config, logger *slog.Logger) Model {
	zone.NewGlobal()

	search := textinput.New()
	search.Prompt = "/"

	m := Model{
		collector: collector,
		logger:    logger,
		refresh:   time.Second,
		sortKey:   procview.SortByPID,
		ascending: true,
		filterKey: procview.FilterAny,
		search:    search,
		loadHist:  history.NewSeries(0),
		memHist:   history.NewSeries(0),
		cpuHist:   history.NewSeries(0),
		diskHist:  make(map[string]*history.Series),
		netHist:   make(map[string]*history.Series),
		statusCh:  make(chan proc.StatusMessage, 8),
	}

	if cfg == nil {
		return m
	}

	if d, err := cfg.Refresh(); err == nil && d > 0 {
		m.refresh = d
	}
	m.maxProcs = cfg.Monitor.MaxProcs
	m.ascending = !cfg.View.Descending
	m.pattern = cfg.View.Pattern
	m.exact = cfg.View.ExactMatch

	if sk, err := procview.ParseSortKey(cfg.View.SortBy); err == nil {
		m.sortKey = sk
	} else {
		m.setStatus(err.Error(), true)
	}
	if cfg.View.FilterBy != "" {
		if fk, err := procview.ParseFilterKey(cfg.View.FilterBy); err == nil {
			m.filterKey = fk
		} else {
			m.setStatus(err.Error(), true)
		}
	}

	return m
}

// Init implements tea.Model. It runs an immediate collection pass and
// arms the status channel listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return tickMsg(time.Now()) },
		m.listenStatus(),
	)
}

// tick schedules the next collection pass.
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// listenStatus delivers the next control outcome from the status
// channel. Re-armed after each delivery, so at most one outcome lands
// per update cycle; ordering against key events is unspecified.
func (m Model) listenStatus() tea.Cmd {
	ch := m.statusCh
	return func() tea.Msg {
		return controlMsg(<-ch)
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.collect()
		m.expireStatus()
		m.applyView()
		return m, m.tick()

	case controlMsg:
		m.setStatus(msg.Text, msg.Err)
		return m, m.listenStatus()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
			for i := Tab(0); i < tabCount; i++ {
				if zone.Get(tabZoneID(i)).InBounds(msg) {
					m.activeTab = i
				}
			}
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode == ModeSearch {
			return m.updateSearch(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

// updateSearch handles keys while the search editor is active. Enter
// commits the pattern, Esc cancels and clears it; everything else edits
// the pattern, which applies live against the whole formatted row.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = ModeNormal
		m.search.Blur()
		m.applyView()
		return m, nil
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.pattern = ""
		m.search.SetValue("")
		m.search.Blur()
		m.applyView()
		return m, nil
	}

	// The first typed character replaces the inherited pattern.
	if msg.Type == tea.KeyRunes && !m.searchTyped {
		m.search.SetValue("")
		m.searchTyped = true
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.pattern = m.search.Value()
	m.filterKey = procview.FilterAny
	m.exact = false
	m.applyView()
	return m, cmd
}

// updateNormal handles keys in normal mode.
func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A pending 's' chord consumes the next key as the sort field.
	if m.sortPending {
		m.sortPending = false
		m.sortKey = chordSortKey(msg.String())
		m.ascending = true
		m.setStatus(fmt.Sprintf("Sorting by %s", m.sortKey), false)
		m.applyView()
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.NextTab):
		m.activeTab = (m.activeTab + 1) % tabCount
	case key.Matches(msg, keys.PrevTab):
		m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
	case key.Matches(msg, keys.Tab1):
		m.activeTab = TabProcesses
	case key.Matches(msg, keys.Tab2):
		m.activeTab = TabCpu
	case key.Matches(msg, keys.Tab3):
		m.activeTab = TabSystem
	case key.Matches(msg, keys.Tab4):
		m.activeTab = TabDisk
	case key.Matches(msg, keys.Tab5):
		m.activeTab = TabNetwork
	case key.Matches(msg, keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, keys.Down):
		if m.selected < len(m.visible)-1 {
			m.selected++
		}
	case key.Matches(msg, keys.GoTop):
		m.selected = 0
	case key.Matches(msg, keys.GoBottom):
		m.selected = len(m.visible) - 1
	case key.Matches(msg, keys.Sort):
		m.sortPending = true
	case key.Matches(msg, keys.Search):
		m.mode = ModeSearch
		m.searchTyped = false
		m.search.SetValue(m.pattern)
		m.search.Focus()
	case key.Matches(msg, keys.Ascending):
		m.ascending = !m.ascending
		m.applyView()
	case key.Matches(msg, keys.Kill):
		if sel, ok := m.selectedProcess(); ok {
			proc.KillNotify(int(sel.PID), unix.SIGKILL, m.statusCh)
		}
	case key.Matches(msg, keys.NiceUp):
		if sel, ok := m.selectedProcess(); ok {
			proc.SetPriorityNotify(int(sel.PID), int(sel.Priority)+1, m.statusCh)
		}
	case key.Matches(msg, keys.NiceDown):
		if sel, ok := m.selectedProcess(); ok {
			proc.SetPriorityNotify(int(sel.PID), int(sel.Priority)-1, m.statusCh)
		}
	case key.Matches(msg, keys.Help):
		m.setStatus(helpText, false)
	}

	return m, nil
}

// chordSortKey maps the second key of the sort chord to a sort field,
// falling back to pid.
func chordSortKey(s string) procview.SortKey {
	switch s {
	case "n":
		return procview.SortByName
	case "p":
		return procview.SortByPID
	case "u":
		return procview.SortByUser
	case "m":
		return procview.SortByMemory
	case "t":
		return procview.SortByThreads
	case "v":
		return procview.SortByVmSize
	default:
		return procview.SortByPID
	}
}

// selectedProcess returns the currently highlighted record.
func (m Model) selectedProcess() (proc.ProcessRecord, bool) {
	if m.selected < 0 || m.selected >= len(m.visible) {
		return proc.ProcessRecord{}, false
	}
	return m.visible[m.selected], true
}

// collect runs one collection pass. Collection failures keep the last
// snapshot and surface on the status line.
func (m *Model) collect() {
	if records, err := m.collector.Processes(); err == nil {
		m.processes = records
	} else {
		m.setStatus(err.Error(), true)
	}

	if info, err := proc.ReadSysinfo(); err == nil {
		m.sys = info
		m.loadHist.Push(proc.LoadAverage(uint64(info.Loads[0])))
		m.memHist.Push(proc.MemoryUsedPercent(info))
	}

	if usage, err := m.collector.CPUUsage(); err == nil {
		m.cpuUsage = usage
		if len(usage) > 0 {
			var sum float64
			for _, u := range usage {
				sum += u
			}
			m.cpuHist.Push(sum / float64(len(usage)))
		}
	}

	elapsed := m.refresh.Seconds()

	if stats, err := m.collector.DiskStats(); err == nil {
		for _, rate := range proc.DiskRates(m.diskStats, stats, elapsed) {
			hist, ok := m.diskHist[rate.Name]
			if !ok {
				hist = history.NewSeries(0)
				m.diskHist[rate.Name] = hist
			}
			hist.Push(rate.First, rate.Second)
		}
		m.diskStats = stats
	}

	if stats, err := m.collector.NetworkStats(); err == nil {
		for _, rate := range proc.NetworkRates(m.netStats, stats, elapsed) {
			hist, ok := m.netHist[rate.Name]
			if !ok {
				hist = history.NewSeries(0)
				m.netHist[rate.Name] = hist
			}
			hist.Push(rate.First, rate.Second)
		}
		m.netStats = stats
	}
}

// applyView recomputes the visible process window from the current
// snapshot and view settings.
func (m *Model) applyView() {
	count := m.maxProcs
	if count <= 0 {
		count = len(m.processes)
	}

	visible, err := procview.List(m.processes, m.from, count, m.sortKey,
		m.ascending, m.filterKey, m.pattern, m.exact)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.visible = visible

	if m.selected >= len(m.visible) {
		m.selected = len(m.visible) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// setStatus records an advisory status message and stamps it for aging.
func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
	m.statusAt = time.Now()
}

// expireStatus clears a status message once it has aged out.
func (m *Model) expireStatus() {
	if m.status != "" && time.Since(m.statusAt) > statusAge {
		m.status = ""
		m.statusErr = false
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := m.renderHeader()
	content := m.renderTabContent()
	statusBar := m.renderStatusBar()

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar))
}

// tabZoneID returns the bubblezone id of a tab label.
func tabZoneID(t Tab) string {
	return "tab-" + tabNames[t]
}

// renderHeader renders the title and the tab bar, with each tab label
// marked as a mouse zone.
func (m Model) renderHeader() string {
	var tabs []string
	for i := Tab(0); i < tabCount; i++ {
		name := tabNames[i]
		var label string
		if i == m.activeTab {
			label = styleActiveTab.Render(name)
		} else {
			label = styleInactiveTab.Render(name)
		}
		tabs = append(tabs, zone.Mark(tabZoneID(i), label))
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Top,
		styleTitle.Render("procpulse"),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
	)
	return styleHeader.Width(m.width).Render(bar)
}

// renderTabContent delegates to the active tab's renderer.
func (m Model) renderTabContent() string {
	// Reserve space for header and status line.
	contentHeight := m.height - 4
	if contentHeight < 1 {
		contentHeight = 1
	}

	switch m.activeTab {
	case TabProcesses:
		return m.renderProcessesTab(contentHeight)
	case TabCpu:
		return m.renderCpuTab(contentHeight)
	case TabSystem:
		return m.renderSystemTab(contentHeight)
	case TabDisk:
		return m.renderDiskTab(contentHeight)
	case TabNetwork:
		return m.renderNetworkTab(contentHeight)
	default:
		return ""
	}
}

// renderStatusBar renders the one-line footer: a control outcome when
// one is pending, the live search pattern while searching on the
// processes tab, otherwise a summary line.
func (m Model) renderStatusBar() string {
	var fallback string
	if m.activeTab == TabProcesses && m.mode == ModeSearch {
		fallback = m.search.View()
	} else {
		cpu := "Loading..."
		if len(m.cpuUsage) > 0 {
			cpu = fmt.Sprintf("%.1f%%", m.cpuUsage[0])
		}
		ram := "Loading..."
		if m.sys != nil {
			ram = widgets.FormatBytes((m.sys.Totalram - m.sys.Freeram) * uint64(m.sys.Unit))
		}
		fallback = fmt.Sprintf("Processes: %d, CPU: %s, Free Ram: %s\t\tPress (?) for help",
			len(m.processes), cpu, ram)
	}

	return widgets.RenderStatusLine(m.status, m.statusErr, fallback)
}
