package ui

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"chatterm/internal/api"
	"chatterm/internal/chat"
	"chatterm/internal/config"
	"chatterm/internal/route"
	"chatterm/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

// drain executes a command tree and returns every message it produces.
// Commands that would hit the network fail fast against the unroutable
// test client and surface as ordinary error results.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func navigations(msgs []tea.Msg) []route.Route {
	var out []route.Route
	for _, msg := range msgs {
		if nav, ok := msg.(navigateMsg); ok {
			out = append(out, nav.to)
		}
	}
	return out
}

func testChatModel() chatModel {
	client := api.New("http://127.0.0.1:1", staticToken(""))
	return newChatModel(client, nil, nil)
}

func conv(id int64, ts *time.Time) chat.Conversation {
	return chat.Conversation{ID: id, UpdatedAt: ts}
}

func TestAutoSelectPicksTopConversationOnce(t *testing.T) {
	m := testChatModel()
	m, cmd := m.setRoute(route.Chat(0))
	if navs := navigations(drain(cmd)); len(navs) != 0 {
		t.Fatalf("navigated before the list loaded: %v", navs)
	}

	ts := time.Now()
	m, cmd = m.Update(conversationsMsg{convs: []chat.Conversation{conv(5, &ts), conv(2, &ts)}})
	navs := navigations(drain(cmd))
	if len(navs) != 1 || navs[0] != route.Chat(5) {
		t.Fatalf("expected a single navigation to /chat/5, got %v", navs)
	}

	// The root applies the navigation, which disarms the latch.
	m, _ = m.setRoute(route.Chat(5))

	m, cmd = m.Update(conversationsMsg{convs: []chat.Conversation{conv(5, &ts), conv(2, &ts)}})
	if navs := navigations(drain(cmd)); len(navs) != 0 {
		t.Fatalf("auto-selection fired twice: %v", navs)
	}
}

func TestAutoSelectWaitsForNonEmptyList(t *testing.T) {
	m := testChatModel()
	m, _ = m.setRoute(route.Chat(0))

	m, cmd := m.Update(conversationsMsg{convs: nil})
	if navs := navigations(drain(cmd)); len(navs) != 0 {
		t.Fatalf("navigated on an empty list: %v", navs)
	}

	m, cmd = m.Update(conversationsMsg{convs: []chat.Conversation{conv(9, nil)}})
	navs := navigations(drain(cmd))
	if len(navs) != 1 || navs[0] != route.Chat(9) {
		t.Fatalf("expected navigation to /chat/9 once the list arrived, got %v", navs)
	}
}

func TestAutoSelectNotArmedWhenIDPresent(t *testing.T) {
	m := testChatModel()
	m, _ = m.setRoute(route.Chat(2))

	ts := time.Now()
	m, cmd := m.Update(conversationsMsg{convs: []chat.Conversation{conv(5, &ts), conv(2, &ts)}})
	if navs := navigations(drain(cmd)); len(navs) != 0 {
		t.Fatalf("navigated away from an explicit conversation: %v", navs)
	}
}

func TestFailedListFetchKeepsLastKnownDirectory(t *testing.T) {
	m := testChatModel()
	ts := time.Now()
	m, _ = m.Update(conversationsMsg{convs: []chat.Conversation{conv(5, &ts), conv(2, &ts)}})

	m, cmd := m.Update(conversationsMsg{err: errors.New("connection refused")})

	if len(m.convs) != 2 || m.convs[0].ID != 5 || m.convs[1].ID != 2 {
		t.Fatalf("a failed fetch should leave the directory untouched, got %+v", m.convs)
	}
	if navs := navigations(drain(cmd)); len(navs) != 0 {
		t.Fatalf("a failed fetch should not navigate: %v", navs)
	}
	if m.status == "" {
		t.Fatal("a failed fetch should be reported in the status line")
	}
}

func TestFirstListFetchFailureLeavesViewUsable(t *testing.T) {
	m := testChatModel()
	m, _ = m.setRoute(route.Chat(0))

	m, cmd := m.Update(conversationsMsg{err: errors.New("connection refused")})

	if len(m.convs) != 0 {
		t.Fatalf("expected an empty directory, got %+v", m.convs)
	}
	if navs := navigations(drain(cmd)); len(navs) != 0 {
		t.Fatalf("a failed first fetch should not navigate: %v", navs)
	}
	// Creating a first conversation still works.
	if m.createCmd() == nil {
		t.Fatal("creating a conversation should remain available")
	}
}

func TestSendIgnoresOverlappingSubmit(t *testing.T) {
	m := testChatModel()
	m, _ = m.setRoute(route.Chat(7))

	m.composer.SetValue("first question")
	m, cmd := m.send()
	if cmd == nil {
		t.Fatal("expected a send command")
	}
	if !m.sending {
		t.Fatal("expected the in-flight flag to be set")
	}
	if len(m.messages) != 1 || m.messages[0].Content != "first question" {
		t.Fatalf("expected one provisional message, got %+v", m.messages)
	}
	if m.composer.Value() != "" {
		t.Fatal("composer should clear after submit")
	}

	m.composer.SetValue("second question")
	m, cmd = m.send()
	if cmd != nil {
		t.Fatal("second submit while awaiting a reply should be a no-op")
	}
	if len(m.messages) != 1 {
		t.Fatalf("second submit appended a message: %+v", m.messages)
	}
}

func TestSendRejectsBlankInput(t *testing.T) {
	m := testChatModel()
	m, _ = m.setRoute(route.Chat(7))

	m.composer.SetValue("   ")
	m, cmd := m.send()
	if cmd != nil || len(m.messages) != 0 || m.sending {
		t.Fatalf("blank input should not send: sending=%v messages=%+v", m.sending, m.messages)
	}
}

func TestSendResultAppendsReplyAndClearsFlag(t *testing.T) {
	m := testChatModel()
	m, _ = m.setRoute(route.Chat(7))
	m.composer.SetValue("hello")
	m, _ = m.send()

	reply := chat.Message{Role: chat.RoleAssistant, Content: "hi there"}
	m, _ = m.Update(sendResultMsg{convID: 7, gen: m.gen, reply: reply})

	if m.sending {
		t.Fatal("in-flight flag should clear on reply")
	}
	if len(m.messages) != 2 || m.messages[1].Content != "hi there" {
		t.Fatalf("expected the reply appended, got %+v", m.messages)
	}
	if !m.freshReply {
		t.Fatal("latest reply should be marked fresh")
	}
}

func TestSendFailureKeepsOptimisticMessage(t *testing.T) {
	m := testChatModel()
	m, _ = m.setRoute(route.Chat(7))
	m.composer.SetValue("hello")
	m, _ = m.send()

	m, _ = m.Update(sendResultMsg{convID: 7, gen: m.gen, err: errors.New("boom")})

	if m.sending {
		t.Fatal("in-flight flag should clear on failure")
	}
	if len(m.messages) != 1 || m.messages[0].Content != "hello" {
		t.Fatalf("the optimistic message should survive a failed send, got %+v", m.messages)
	}
}

func TestSendThenReloadKeepsEachTurnOnce(t *testing.T) {
	m := testChatModel()
	m, _ = m.setRoute(route.Chat(7))
	m.composer.SetValue("x")
	m, _ = m.send()
	m, _ = m.Update(sendResultMsg{convID: 7, gen: m.gen,
		reply: chat.Message{Role: chat.RoleAssistant, Content: "y"}})

	// A history reload reconciles the buffer with server truth.
	server := []chat.Message{
		{Role: chat.RoleUser, Content: "x"},
		{Role: chat.RoleAssistant, Content: "y"},
	}
	m, _ = m.Update(historyMsg{convID: 7, gen: m.gen, msgs: server})

	if len(m.messages) != 2 {
		t.Fatalf("expected exactly one user turn and one reply, got %+v", m.messages)
	}
	if m.messages[0].Content != "x" || m.messages[1].Content != "y" {
		t.Fatalf("turns out of order: %+v", m.messages)
	}
}

func TestStaleHistoryDiscarded(t *testing.T) {
	m := testChatModel()
	m, _ = m.setRoute(route.Chat(4))
	staleGen := m.gen

	// The user switches before the first load resolves.
	m, _ = m.setRoute(route.Chat(8))

	m, _ = m.Update(historyMsg{convID: 4, gen: staleGen, msgs: []chat.Message{
		{Role: chat.RoleUser, Content: "from the old conversation"},
	}})

	if m.historyLoaded {
		t.Fatal("a stale response must not mark the new stream loaded")
	}
	if len(m.messages) != 0 {
		t.Fatalf("stale history leaked into the buffer: %+v", m.messages)
	}
}

func TestCachedHistoryOnlyBeforeNetworkLoad(t *testing.T) {
	m := testChatModel()
	m, _ = m.setRoute(route.Chat(4))

	fresh := []chat.Message{{Role: chat.RoleUser, Content: "authoritative"}}
	m, _ = m.Update(historyMsg{convID: 4, gen: m.gen, msgs: fresh})

	m, _ = m.Update(cachedHistoryMsg{convID: 4, gen: m.gen, msgs: []chat.Message{
		{Role: chat.RoleUser, Content: "stale cached copy"},
	}})

	if len(m.messages) != 1 || m.messages[0].Content != "authoritative" {
		t.Fatalf("cached history overwrote the network copy: %+v", m.messages)
	}
}

func TestNotFoundRemovesConversationAndRecovers(t *testing.T) {
	m := testChatModel()
	ts := time.Now()
	m, _ = m.Update(conversationsMsg{convs: []chat.Conversation{conv(5, &ts), conv(2, &ts)}})
	m, _ = m.setRoute(route.Chat(5))

	m, cmd := m.Update(historyMsg{convID: 5, gen: m.gen, err: api.ErrNotFound})

	navs := navigations(drain(cmd))
	if len(navs) != 1 || navs[0] != route.Chat(0) {
		t.Fatalf("expected recovery navigation to /chat, got %v", navs)
	}
	for _, c := range m.convs {
		if c.ID == 5 {
			t.Fatal("the vanished conversation should leave the directory")
		}
	}
}

func TestCreatePrependsAndNavigates(t *testing.T) {
	m := testChatModel()
	ts := time.Now()
	m, _ = m.Update(conversationsMsg{convs: []chat.Conversation{conv(2, &ts)}})

	m, cmd := m.Update(createdMsg{conv: conv(9, nil)})

	if len(m.convs) != 2 || m.convs[0].ID != 9 {
		t.Fatalf("new conversation should lead the directory, got %+v", m.convs)
	}
	navs := navigations(drain(cmd))
	if len(navs) != 1 || navs[0] != route.Chat(9) {
		t.Fatalf("expected navigation to the new conversation, got %v", navs)
	}
}

func TestFocusTogglesKeyBindingsAndHelp(t *testing.T) {
	m := testChatModel()
	m, _ = m.setRoute(route.Chat(7))

	// Composer has initial focus: sidebar keys are dormant and "n" is text.
	if m.keys.NewChat.Enabled() || !m.keys.Send.Enabled() {
		t.Fatal("composer focus should enable send and disable sidebar keys")
	}
	m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if cmd != nil {
		t.Fatal("typing n into the composer must not create a conversation")
	}
	if m.composer.Value() != "n" {
		t.Fatalf("expected n in the composer, got %q", m.composer.Value())
	}
	composerHelp := m.help.View(m.keys)

	m.setFocus(true)
	if !m.keys.NewChat.Enabled() || m.keys.Send.Enabled() {
		t.Fatal("sidebar focus should enable sidebar keys and disable send")
	}
	if sidebarHelp := m.help.View(m.keys); sidebarHelp == composerHelp {
		t.Fatal("help line should follow the focused pane")
	}
}

func newTestApp(t *testing.T) App {
	t.Helper()
	dir := t.TempDir()
	sess, err := session.Load(filepath.Join(dir, "token"))
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	client := api.New("http://127.0.0.1:1", sess)
	cfg := config.AppConfig{ServerURL: "http://127.0.0.1:1"}
	return NewApp(cfg, client, sess, nil, nil)
}

func TestGuardRedirectsUnauthenticatedToLogin(t *testing.T) {
	a := newTestApp(t)

	model, _ := a.Update(navigateMsg{to: route.Chat(5)})
	a = model.(App)

	if a.route.Page != route.PageLogin {
		t.Fatalf("expected redirect to login, got %v", a.route)
	}
}

func TestLoginSuccessPersistsTokenAndOpensChat(t *testing.T) {
	a := newTestApp(t)
	model, _ := a.Update(navigateMsg{to: route.Login()})
	a = model.(App)

	model, _ = a.Update(loginResultMsg{token: "tok-123"})
	a = model.(App)

	if !a.sess.Authenticated() {
		t.Fatal("session should be authenticated after login")
	}
	if a.route.Page != route.PageChat {
		t.Fatalf("expected the chat page, got %v", a.route)
	}
}

func TestLogoutClearsConversationState(t *testing.T) {
	a := newTestApp(t)
	if err := a.sess.Login("tok-123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	model, _ := a.Update(navigateMsg{to: route.Chat(0)})
	a = model.(App)

	ts := time.Now()
	model, _ = a.Update(conversationsMsg{convs: []chat.Conversation{conv(3, &ts)}})
	a = model.(App)
	a.chat.messages = []chat.Message{{Role: chat.RoleUser, Content: "secret"}}

	model, _ = a.Update(logoutRequestMsg{})
	a = model.(App)

	if a.sess.Authenticated() {
		t.Fatal("token should be gone after logout")
	}
	if a.route.Page != route.PageLogin {
		t.Fatalf("expected the login page, got %v", a.route)
	}
	if len(a.chat.convs) != 0 || len(a.chat.messages) != 0 {
		t.Fatal("conversation state should be wiped on logout")
	}
}

func TestExpiredSessionForcesLogout(t *testing.T) {
	a := newTestApp(t)
	if err := a.sess.Login("tok-123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	model, _ := a.Update(navigateMsg{to: route.Chat(0)})
	a = model.(App)

	model, _ = a.Update(conversationsMsg{err: api.ErrUnauthorized})
	a = model.(App)

	if a.sess.Authenticated() {
		t.Fatal("a rejected token should end the session")
	}
	if a.route.Page != route.PageLogin {
		t.Fatalf("expected the login page, got %v", a.route)
	}
}
