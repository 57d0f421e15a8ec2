package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chatterm/internal/api"
	"chatterm/internal/cache"
	"chatterm/internal/chat"
	"chatterm/internal/clipboard"
	"chatterm/internal/export"
	"chatterm/internal/highlight"
	"chatterm/internal/route"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type conversationsMsg struct {
	convs []chat.Conversation
	err   error
}
type cachedConversationsMsg struct {
	convs []chat.Conversation
}
type createdMsg struct {
	conv chat.Conversation
	err  error
}
type historyMsg struct {
	convID int64
	gen    int
	msgs   []chat.Message
	err    error
}
type cachedHistoryMsg struct {
	convID int64
	gen    int
	msgs   []chat.Message
}
type sendResultMsg struct {
	convID int64
	gen    int
	reply  chat.Message
	err    error
}
type exportResultMsg struct {
	path string
	err  error
}
type copyResultMsg struct {
	err error
}
type logoutRequestMsg struct{}

type convItem struct {
	c chat.Conversation
}

func (i convItem) Title() string { return i.c.DisplayTitle() }

func (i convItem) Description() string {
	if i.c.UpdatedAt == nil {
		return "—"
	}
	return i.c.UpdatedAt.Local().Format("Jan 2 15:04")
}

func (i convItem) FilterValue() string { return strings.ToLower(i.c.DisplayTitle()) }

// chatModel is the authenticated conversation view: the directory sidebar
// lives for the whole session, the message stream remounts every time the
// selected conversation id changes.
type chatModel struct {
	client   *api.Client
	cache    *cache.Store
	exporter *export.Exporter

	list     list.Model
	viewport viewport.Model
	composer textinput.Model
	search   textinput.Model
	spinner  spinner.Model
	keys     keyMap
	help     help.Model

	width  int
	height int

	focusSidebar bool

	// Directory state, mounted once per session.
	convs       []chat.Conversation
	convsLoaded bool
	autoSelect  bool

	// Stream state, reset on every remount. gen identifies the current
	// stream instance; async results carrying a stale generation or a
	// different conversation id are dropped.
	convID        int64
	gen           int
	messages      []chat.Message
	historyLoaded bool
	sending       bool
	freshReply    bool

	searchMode  bool
	searchQuery string
	matchLines  []int
	matchIndex  int

	status string
}

func newChatModel(client *api.Client, store *cache.Store, exporter *export.Exporter) chatModel {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 32, 20)
	l.Title = "Conversations"
	l.SetShowFilter(false)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	vp := viewport.New(60, 20)
	vp.SetContent("No conversation selected")

	composer := textinput.New()
	composer.Placeholder = "Type your message..."
	composer.CharLimit = 4096
	composer.Focus()

	search := textinput.New()
	search.Placeholder = "Search transcript..."
	search.Prompt = "/ "
	search.CharLimit = 256

	sp := spinner.New()
	sp.Spinner = spinner.Points

	m := chatModel{
		client:     client,
		cache:      store,
		exporter:   exporter,
		list:       l,
		viewport:   vp,
		composer:   composer,
		search:     search,
		spinner:    sp,
		keys:       defaultKeys(),
		help:       help.New(),
		matchIndex: -1,
	}
	m.setFocus(false)
	return m
}

// init starts the directory load: cached copy first for instant paint, then
// the authoritative fetch.
func (m chatModel) init() tea.Cmd {
	return tea.Batch(m.cachedConversationsCmd(), m.conversationsCmd())
}

// setRoute reconciles the model with the chat route. An id change remounts
// the stream; arriving with no id arms the one-shot auto-selection latch.
func (m chatModel) setRoute(r route.Route) (chatModel, tea.Cmd) {
	var cmds []tea.Cmd
	if r.ConvID != m.convID {
		var cmd tea.Cmd
		m, cmd = m.mount(r.ConvID)
		cmds = append(cmds, cmd)
	}
	if r.ConvID == 0 {
		m.autoSelect = true
		if cmd := m.maybeAutoSelect(); cmd != nil {
			m.autoSelect = false
			cmds = append(cmds, cmd)
		}
	} else {
		m.autoSelect = false
	}
	m.markSelected()
	return m, tea.Batch(cmds...)
}

// mount resets the stream for a new conversation id.
func (m chatModel) mount(convID int64) (chatModel, tea.Cmd) {
	m.convID = convID
	m.gen++
	m.messages = nil
	m.historyLoaded = false
	m.sending = false
	m.freshReply = false
	m.clearMatches()

	if convID == 0 {
		m.viewport.SetContent("No conversation selected. Press n for a new chat.")
		return m, nil
	}
	m.viewport.SetContent("Loading history...")
	return m, tea.Batch(m.cachedHistoryCmd(convID, m.gen), m.historyCmd(convID, m.gen))
}

func (m chatModel) maybeAutoSelect() tea.Cmd {
	if !m.autoSelect || m.convID != 0 || !m.convsLoaded || len(m.convs) == 0 {
		return nil
	}
	return navigateTo(route.Chat(m.convs[0].ID))
}

func (m chatModel) conversationsCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		convs, err := client.Conversations(ctx)
		return conversationsMsg{convs: convs, err: err}
	}
}

func (m chatModel) cachedConversationsCmd() tea.Cmd {
	store := m.cache
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		convs, err := store.Conversations()
		if err != nil || len(convs) == 0 {
			return nil
		}
		return cachedConversationsMsg{convs: convs}
	}
}

func (m chatModel) createCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		conv, err := client.CreateConversation(ctx)
		return createdMsg{conv: conv, err: err}
	}
}

func (m chatModel) historyCmd(convID int64, gen int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		msgs, err := client.Messages(ctx, convID)
		return historyMsg{convID: convID, gen: gen, msgs: msgs, err: err}
	}
}

func (m chatModel) cachedHistoryCmd(convID int64, gen int) tea.Cmd {
	store := m.cache
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		msgs, err := store.Messages(convID)
		if err != nil || len(msgs) == 0 {
			return nil
		}
		return cachedHistoryMsg{convID: convID, gen: gen, msgs: msgs}
	}
}

func (m chatModel) sendCmd(convID int64, gen int, content string) tea.Cmd {
	client := m.client
	store := m.cache
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
		defer cancel()
		reply, err := client.SendMessage(ctx, convID, content)
		if err == nil && store != nil {
			// Confirmed turns go to the cache keyed by their conversation,
			// even if the user has navigated away in the meantime.
			_ = store.AppendMessages(convID,
				chat.Message{Role: chat.RoleUser, Content: content}, reply)
		}
		return sendResultMsg{convID: convID, gen: gen, reply: reply, err: err}
	}
}

func (m chatModel) exportCmd() tea.Cmd {
	conv, ok := m.selectedConversation()
	if !ok || m.exporter == nil {
		return nil
	}
	exporter := m.exporter
	msgs := m.messages
	return func() tea.Msg {
		path, err := exporter.Export(conv, msgs)
		return exportResultMsg{path: path, err: err}
	}
}

func (m chatModel) copyCmd() tea.Cmd {
	var last string
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].Role == chat.RoleAssistant {
			last = m.messages[i].Content
			break
		}
	}
	if strings.TrimSpace(last) == "" {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return copyResultMsg{err: clipboard.Copy(ctx, last)}
	}
}

func (m chatModel) Update(msg tea.Msg) (chatModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case conversationsMsg:
		if msg.err != nil {
			// Keep the last known list; the view stays usable for
			// creating a first conversation.
			m.status = "Couldn't load conversations: " + msg.err.Error()
			break
		}
		convs := msg.convs
		chat.SortConversations(convs)
		m.convs = convs
		m.convsLoaded = true
		m.applyConversations()
		cmds = append(cmds, m.writeConversationsCmd(convs))
		if cmd := m.maybeAutoSelect(); cmd != nil {
			m.autoSelect = false
			cmds = append(cmds, cmd)
		}

	case cachedConversationsMsg:
		if m.convsLoaded {
			break
		}
		convs := msg.convs
		chat.SortConversations(convs)
		m.convs = convs
		m.applyConversations()

	case createdMsg:
		if msg.err != nil {
			m.status = "Couldn't create conversation: " + msg.err.Error()
			break
		}
		// The new conversation is by construction the most recent.
		m.convs = append([]chat.Conversation{msg.conv}, m.convs...)
		m.applyConversations()
		cmds = append(cmds, m.writeConversationsCmd(m.convs), navigateTo(route.Chat(msg.conv.ID)))

	case historyMsg:
		if msg.convID != m.convID || msg.gen != m.gen {
			break
		}
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrNotFound) {
				m.dropConversation(msg.convID)
				m.status = "Conversation no longer exists"
				cmds = append(cmds, m.writeConversationsCmd(m.convs), navigateTo(route.Chat(0)))
				break
			}
			m.status = "Couldn't load history: " + msg.err.Error()
			break
		}
		m.messages = msg.msgs
		m.historyLoaded = true
		m.freshReply = false
		m.renderTranscript(true)
		cmds = append(cmds, m.writeHistoryCmd(msg.convID, msg.msgs))

	case cachedHistoryMsg:
		if msg.convID != m.convID || msg.gen != m.gen || m.historyLoaded {
			break
		}
		m.messages = msg.msgs
		m.renderTranscript(true)

	case sendResultMsg:
		if msg.convID != m.convID || msg.gen != m.gen {
			break
		}
		m.sending = false
		if msg.err != nil {
			// The optimistic message stays; the user can retry.
			m.status = "Send failed: " + msg.err.Error()
			m.renderTranscript(true)
			break
		}
		m.messages = append(m.messages, msg.reply)
		m.freshReply = true
		m.renderTranscript(true)

	case exportResultMsg:
		if msg.err != nil {
			m.status = "Export failed: " + msg.err.Error()
		} else {
			m.status = "Exported: " + msg.path
		}

	case copyResultMsg:
		if msg.err != nil {
			if errors.Is(msg.err, clipboard.ErrToolNotFound) {
				m.status = "Could not copy: clipboard tool not found"
			} else {
				m.status = "Could not copy: " + msg.err.Error()
			}
		} else {
			m.status = "Copied last reply to clipboard"
		}

	case spinner.TickMsg:
		if m.sending {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			m.renderTranscript(false)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m chatModel) handleKey(msg tea.KeyMsg) (chatModel, tea.Cmd) {
	if m.searchMode {
		switch msg.String() {
		case "esc":
			m.searchMode = false
			m.searchQuery = ""
			m.search.SetValue("")
			m.search.Blur()
			m.renderTranscript(false)
			return m, nil
		case "enter":
			m.searchMode = false
			m.search.Blur()
			m.searchQuery = strings.TrimSpace(m.search.Value())
			m.renderTranscript(false)
			m.jumpToMatch(0)
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		query := strings.TrimSpace(m.search.Value())
		if query != m.searchQuery {
			m.searchQuery = query
			m.renderTranscript(false)
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Tab):
		m.setFocus(!m.focusSidebar)
		return m, nil
	case key.Matches(msg, m.keys.Logout):
		return m, func() tea.Msg { return logoutRequestMsg{} }
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	case key.Matches(msg, m.keys.Open):
		if item, ok := m.list.SelectedItem().(convItem); ok {
			return m, navigateTo(route.Chat(item.c.ID))
		}
		return m, nil
	case key.Matches(msg, m.keys.NewChat):
		return m, m.createCmd()
	case key.Matches(msg, m.keys.Export):
		return m, m.exportCmd()
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyCmd()
	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.search.SetValue(m.searchQuery)
		m.search.CursorEnd()
		m.search.Focus()
		return m, nil
	case key.Matches(msg, m.keys.ClearSearch):
		m.searchQuery = ""
		m.search.SetValue("")
		m.renderTranscript(false)
		return m, nil
	case key.Matches(msg, m.keys.NextMatch):
		m.jumpToMatch(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevMatch):
		m.jumpToMatch(-1)
		return m, nil
	case key.Matches(msg, m.keys.Send):
		return m.send()
	case key.Matches(msg, m.keys.Blur):
		m.setFocus(true)
		return m, nil
	}

	if m.focusSidebar {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return m, cmd
}

// setFocus moves keyboard focus between the sidebar and the composer and
// flips the key bindings so only the active pane's keys match and show in
// the help line.
func (m *chatModel) setFocus(sidebar bool) {
	m.focusSidebar = sidebar
	if sidebar {
		m.composer.Blur()
	} else {
		m.composer.Focus()
	}
	for _, b := range []*key.Binding{
		&m.keys.Open, &m.keys.NewChat, &m.keys.Export, &m.keys.Copy,
		&m.keys.Search, &m.keys.ClearSearch, &m.keys.NextMatch, &m.keys.PrevMatch,
	} {
		b.SetEnabled(sidebar)
	}
	m.keys.Send.SetEnabled(!sidebar)
	m.keys.Blur.SetEnabled(!sidebar)
}

// send appends the optimistic user message and fires the request. Blank
// input and overlapping sends are no-ops.
func (m chatModel) send() (chatModel, tea.Cmd) {
	content := strings.TrimSpace(m.composer.Value())
	if content == "" || m.sending || m.convID == 0 {
		return m, nil
	}
	m.messages = append(m.messages, chat.Message{Role: chat.RoleUser, Content: content})
	m.composer.SetValue("")
	m.sending = true
	m.freshReply = false
	m.renderTranscript(true)
	return m, tea.Batch(m.spinner.Tick, m.sendCmd(m.convID, m.gen, content))
}

func (m *chatModel) writeConversationsCmd(convs []chat.Conversation) tea.Cmd {
	store := m.cache
	if store == nil {
		return nil
	}
	snapshot := append([]chat.Conversation(nil), convs...)
	return func() tea.Msg {
		_ = store.ReplaceConversations(snapshot)
		return nil
	}
}

func (m *chatModel) writeHistoryCmd(convID int64, msgs []chat.Message) tea.Cmd {
	store := m.cache
	if store == nil {
		return nil
	}
	snapshot := append([]chat.Message(nil), msgs...)
	return func() tea.Msg {
		_ = store.ReplaceMessages(convID, snapshot)
		return nil
	}
}

func (m *chatModel) applyConversations() {
	items := make([]list.Item, 0, len(m.convs))
	for _, c := range m.convs {
		items = append(items, convItem{c: c})
	}
	m.list.SetItems(items)
	m.markSelected()
}

func (m *chatModel) markSelected() {
	for idx, c := range m.convs {
		if c.ID == m.convID {
			m.list.Select(idx)
			return
		}
	}
}

func (m *chatModel) dropConversation(convID int64) {
	kept := m.convs[:0]
	for _, c := range m.convs {
		if c.ID != convID {
			kept = append(kept, c)
		}
	}
	m.convs = kept
	m.applyConversations()
}

func (m chatModel) selectedConversation() (chat.Conversation, bool) {
	for _, c := range m.convs {
		if c.ID == m.convID {
			return c, true
		}
	}
	if m.convID != 0 {
		return chat.Conversation{ID: m.convID}, true
	}
	return chat.Conversation{}, false
}

// renderTranscript rebuilds the viewport from the message buffer. anchor
// scrolls to the end, which every buffer-length change requests.
func (m *chatModel) renderTranscript(anchor bool) {
	if m.convID == 0 {
		return
	}

	wrap := m.viewport.Width - 2
	if wrap < 20 {
		wrap = 20
	}

	var b strings.Builder
	for i, msg := range m.messages {
		fresh := m.freshReply && i == len(m.messages)-1 && msg.Role == chat.RoleAssistant
		b.WriteString(renderMessage(msg, wrap, fresh))
		b.WriteString("\n")
	}
	if m.sending {
		b.WriteString(pendingLabelStyle.Render("Assistant " + m.spinner.View() + " thinking..."))
		b.WriteString("\n")
	}
	content := b.String()
	if strings.TrimSpace(content) == "" {
		content = "No messages yet. Say hello."
	}

	if m.searchQuery != "" {
		res := highlight.Apply(content, m.searchQuery, func(s string) string {
			return searchMatchStyle.Render(s)
		})
		content = res.Text
		m.matchLines = res.LineIndex
		if m.matchIndex < 0 || m.matchIndex >= len(m.matchLines) {
			m.matchIndex = -1
		}
	} else {
		m.clearMatches()
	}

	m.viewport.SetContent(content)
	if anchor {
		m.viewport.GotoBottom()
	}
}

func renderMessage(msg chat.Message, wrap int, fresh bool) string {
	var label string
	switch msg.Role {
	case chat.RoleUser:
		label = userLabelStyle.Render("You")
	case chat.RoleAssistant:
		label = assistantLabelStyle.Render("Assistant")
	default:
		label = pendingLabelStyle.Render(msg.Role)
	}

	body := strings.TrimSpace(msg.Content)
	if msg.Role == chat.RoleAssistant {
		if rendered, err := renderMarkdown(body, wrap); err == nil {
			body = rendered
		}
	}
	block := label + "\n" + body
	if fresh {
		return freshReplyStyle.Render(block)
	}
	return block
}

func renderMarkdown(md string, wrap int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(md)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}

func (m *chatModel) clearMatches() {
	m.matchLines = nil
	m.matchIndex = -1
}

func (m *chatModel) jumpToMatch(delta int) {
	if len(m.matchLines) == 0 {
		if m.searchQuery != "" {
			m.status = "No matches in transcript"
		}
		return
	}
	switch {
	case m.matchIndex < 0:
		m.matchIndex = 0
	case delta > 0:
		m.matchIndex = (m.matchIndex + 1) % len(m.matchLines)
	case delta < 0:
		m.matchIndex = (m.matchIndex - 1 + len(m.matchLines)) % len(m.matchLines)
	}
	m.viewport.SetYOffset(m.clampOffset(m.matchLines[m.matchIndex]))
}

func (m *chatModel) clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	max := m.viewport.TotalLineCount() - m.viewport.Height
	if max < 0 {
		max = 0
	}
	if offset > max {
		return max
	}
	return offset
}

func (m *chatModel) resize(width, height int) {
	m.width, m.height = width, height
	if width <= 0 || height <= 0 {
		return
	}
	left := width / 3
	if left < 26 {
		left = 26
	}
	if left > width-30 {
		left = width - 30
	}
	if left < 20 {
		left = 20
	}
	right := width - left - 1
	if right < 20 {
		right = 20
	}

	bodyHeight := height - 4
	if bodyHeight < 6 {
		bodyHeight = 6
	}

	m.list.SetSize(left-2, bodyHeight-2)
	m.viewport.Width = right - 2
	m.viewport.Height = bodyHeight - 2
	m.composer.Width = width - 6
	m.help.Width = width
	m.renderTranscript(true)
}

func (m chatModel) View() string {
	left := m.list.View()
	right := m.viewport.View()

	leftWidth := m.width / 3
	if leftWidth < 26 {
		leftWidth = 26
	}
	rightWidth := m.width - leftWidth - 1
	if rightWidth < 20 {
		rightWidth = 20
	}
	bodyHeight := m.height - 4
	if bodyHeight < 6 {
		bodyHeight = 6
	}

	leftPane := panelStyle(m.focusSidebar).Width(leftWidth).Height(bodyHeight).Render(left)
	rightPane := panelStyle(!m.focusSidebar).Width(rightWidth).Height(bodyHeight).Render(right)
	body := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)

	var bottom string
	if m.searchMode {
		bottom = m.search.View()
	} else {
		bottom = m.composer.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.statusLine(), body, bottom, m.help.View(m.keys))
}

func (m chatModel) statusLine() string {
	status := fmt.Sprintf("%d conversations", len(m.convs))
	if conv, ok := m.selectedConversation(); ok {
		status = fmt.Sprintf("%s  messages=%d", conv.DisplayTitle(), len(m.messages))
	}
	if m.sending {
		status += "  [awaiting reply]"
	}
	if m.searchQuery != "" {
		if len(m.matchLines) > 0 {
			cur := m.matchIndex + 1
			if cur < 1 {
				cur = 1
			}
			status += fmt.Sprintf("  [match %d/%d]", cur, len(m.matchLines))
		} else {
			status += "  [match 0]"
		}
	}
	if strings.TrimSpace(m.status) != "" {
		status += "  " + strings.TrimSpace(m.status)
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	return statusStyle.Render(ansi.Truncate(status, width-2, "..."))
}

type keyMap struct {
	Tab         key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Open        key.Binding
	NewChat     key.Binding
	Export      key.Binding
	Copy        key.Binding
	Search      key.Binding
	ClearSearch key.Binding
	NextMatch   key.Binding
	PrevMatch   key.Binding
	Send        key.Binding
	Blur        key.Binding
	Logout      key.Binding
	Quit        key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "toggle focus"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		NewChat: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new chat"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy reply"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		ClearSearch: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear search"),
		),
		NextMatch: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next match"),
		),
		PrevMatch: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev match"),
		),
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "to sidebar"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "logout"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Send, k.Open, k.NewChat, k.Tab, k.Search, k.NextMatch, k.PrevMatch,
		k.Export, k.Copy, k.Blur, k.ClearSearch, k.Logout, k.Quit,
	}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Send, k.Open, k.NewChat, k.Tab, k.Blur},
		{k.Search, k.ClearSearch, k.NextMatch, k.PrevMatch, k.PageUp, k.PageDown},
		{k.Export, k.Copy, k.Logout, k.Quit},
	}
}
