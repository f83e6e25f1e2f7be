package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/influence-roster/internal/adapter"
	"github.com/MKhiriev/influence-roster/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	reconnectDelay = 3 * time.Second
	statusTTL      = 2 * time.Second
)

// subscribeFunc opens the live roster stream.
type subscribeFunc func(ctx context.Context, serverURL string) (*adapter.Subscription, error)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// boardModel is the player board: profile list on the left, revealed details
// of the selected profile on the right.
type boardModel struct {
	ctx       context.Context
	client    adapter.RosterClient
	subscribe subscribeFunc
	serverURL string
	buildInfo models.AppBuildInfo

	profiles []models.PlayerProfile
	idx      int
	revision uint64

	loading       bool
	live          bool
	spinner       spinner.Model
	status        string
	lastErr       error
	serverVersion string
	showBuildInfo bool
	quitByUser    bool
}

func newBoardModel(ctx context.Context, client adapter.RosterClient, subscribe subscribeFunc, serverURL string, buildInfo models.AppBuildInfo) boardModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return boardModel{
		ctx:       ctx,
		client:    client,
		subscribe: subscribe,
		serverURL: serverURL,
		buildInfo: buildInfo,
		loading:   true,
		spinner:   s,
	}
}

func (m boardModel) Init() tea.Cmd {
	return tea.Batch(m.cmdFetchProfiles(), m.cmdFetchVersion(), m.cmdSubscribe(), m.spinner.Tick)
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case profilesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.lastErr = nil
		m.replaceProfiles(msg.profiles)
		return m, nil

	case versionLoadedMsg:
		if msg.err == nil {
			m.serverVersion = msg.version
		}
		return m, nil

	case subscribedMsg:
		m.live = true
		return m, cmdWaitForPush(msg.sub)

	case rosterPushMsg:
		// every push is a full snapshot; an older one adds nothing
		if msg.msg.Revision >= m.revision {
			m.revision = msg.msg.Revision
			m.loading = false
			m.lastErr = nil
			m.replaceProfiles(msg.msg.Profiles)
		}
		if msg.sub == nil {
			return m, nil
		}
		return m, cmdWaitForPush(msg.sub)

	case subscriptionEndedMsg:
		m.live = false
		if msg.err != nil {
			m.lastErr = msg.err
		}
		return m, cmdReconnectLater()

	case reconnectMsg:
		return m, m.cmdSubscribe()

	case copiedMsg:
		if msg.err != nil {
			m.lastErr = fmt.Errorf("copy to clipboard: %w", msg.err)
			return m, nil
		}
		m.status = "Copied"
		return m, cmdClearStatus()

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.quit) {
		m.quitByUser = true
		return m, tea.Quit
	}

	if m.showBuildInfo {
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.info) {
			m.showBuildInfo = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.profiles)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.refresh):
		m.loading = true
		return m, m.cmdFetchProfiles()
	case key.Matches(msg, keys.copy):
		p, ok := m.current()
		if !ok {
			m.status = "Nothing to copy"
			return m, cmdClearStatus()
		}
		return m, cmdCopyToClipboard(playerCard(p))
	case key.Matches(msg, keys.info):
		m.showBuildInfo = true
	}
	return m, nil
}

// replaceProfiles swaps in a new snapshot and keeps the cursor on the same
// profile when it still exists.
func (m *boardModel) replaceProfiles(profiles []models.PlayerProfile) {
	var selectedID string
	if p, ok := m.current(); ok {
		selectedID = p.ID
	}

	m.profiles = profiles

	if selectedID != "" {
		for i, p := range profiles {
			if p.ID == selectedID {
				m.idx = i
				return
			}
		}
	}
	if m.idx >= len(profiles) {
		m.idx = len(profiles) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m boardModel) current() (models.PlayerProfile, bool) {
	if len(m.profiles) == 0 || m.idx < 0 || m.idx >= len(m.profiles) {
		return models.PlayerProfile{}, false
	}
	return m.profiles[m.idx], true
}

func (m boardModel) View() string {
	if m.showBuildInfo {
		return renderBuildInfoWindow(m.buildInfo, m.serverVersion)
	}

	title := "INFLUENCE ROSTER"
	if m.live {
		title += "  ● live"
	} else {
		title += "  ○ offline"
	}
	if m.loading {
		title += "  " + m.spinner.View()
	}

	left := listPaneStyle.Render(renderList(m.profiles, m.idx, m.loading))
	right := ""
	if p, ok := m.current(); ok {
		right = detailPaneStyle.Render(renderDetail(p))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	if m.status != "" {
		body += "\n\n" + m.status
	}
	if m.lastErr != nil {
		body += "\n\n" + errorStyle.Render("Error: "+humanizeServerUnavailableError(m.lastErr))
	}

	return renderPage(title, body, "↑/↓ select  r refresh  c copy  v about  q quit")
}

func (m boardModel) cmdFetchProfiles() tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		profiles, err := client.PlayerProfiles(ctx)
		return profilesLoadedMsg{profiles: profiles, err: err}
	}
}

func (m boardModel) cmdFetchVersion() tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		version, err := client.Version(ctx)
		return versionLoadedMsg{version: version, err: err}
	}
}

func (m boardModel) cmdSubscribe() tea.Cmd {
	if m.subscribe == nil {
		return nil
	}
	ctx, subscribe, serverURL := m.ctx, m.subscribe, m.serverURL
	return func() tea.Msg {
		sub, err := subscribe(ctx, serverURL)
		if err != nil {
			return subscriptionEndedMsg{err: err}
		}
		return subscribedMsg{sub: sub}
	}
}

// cmdWaitForPush delivers the next push. Handling a rosterPushMsg re-arms
// it for the same subscription.
func cmdWaitForPush(sub *adapter.Subscription) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-sub.Messages
		if !ok {
			return subscriptionEndedMsg{err: sub.Err()}
		}
		return rosterPushMsg{msg: msg, sub: sub}
	}
}

func cmdReconnectLater() tea.Cmd {
	return tea.Tick(reconnectDelay, func(time.Time) tea.Msg {
		return reconnectMsg{}
	})
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: writeClipboard(text)}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
