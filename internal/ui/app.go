package ui

import (
	"errors"
	"strings"

	"chatterm/internal/api"
	"chatterm/internal/cache"
	"chatterm/internal/config"
	"chatterm/internal/export"
	"chatterm/internal/route"
	"chatterm/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// navigateMsg asks the root model to move to another route. Submodels never
// mutate the route directly; they emit one of these and the root applies the
// access policy before switching views.
type navigateMsg struct {
	to route.Route
}

func navigateTo(to route.Route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to} }
}

// App is the root model. It owns the current route, the session store, and
// one submodel per page; everything below it is reached through Update.
type App struct {
	cfg      config.AppConfig
	client   *api.Client
	sess     *session.Store
	cache    *cache.Store
	exporter *export.Exporter

	route route.Route

	login    loginModel
	register registerModel
	chat     chatModel

	width  int
	height int

	status string
}

func NewApp(cfg config.AppConfig, client *api.Client, sess *session.Store, store *cache.Store, exporter *export.Exporter) App {
	return App{
		cfg:      cfg,
		client:   client,
		sess:     sess,
		cache:    store,
		exporter: exporter,
		login:    newLoginModel(client),
		register: newRegisterModel(client),
		chat:     newChatModel(client, store, exporter),
	}
}

func (a App) Init() tea.Cmd {
	// Init cannot mutate the model, so the initial route travels as a
	// message through the first Update.
	initial := route.Resolve(route.Parse(a.cfg.Open), a.sess.Authenticated())
	return func() tea.Msg { return navigateMsg{to: initial} }
}

// applyRoute runs the access policy and switches the active view.
func (a App) applyRoute(requested route.Route) (App, tea.Cmd) {
	resolved := route.Resolve(requested, a.sess.Authenticated())
	prev := a.route
	a.route = resolved

	var cmd tea.Cmd
	switch resolved.Page {
	case route.PageChat:
		var cmds []tea.Cmd
		if prev.Page != route.PageChat {
			cmds = append(cmds, a.chat.init())
		}
		var c tea.Cmd
		a.chat, c = a.chat.setRoute(resolved)
		cmds = append(cmds, c)
		cmd = tea.Batch(cmds...)
	case route.PageLogin:
		a.login = newLoginModel(a.client)
	case route.PageRegister:
		a.register = newRegisterModel(a.client)
	}
	return a, cmd
}

// forceLogout tears down everything conversation-shaped: the persisted
// token, the local cache, and the in-memory chat state.
func (a App) forceLogout(status string) (App, tea.Cmd) {
	if err := a.sess.Logout(); err != nil {
		a.status = "Logout failed: " + err.Error()
		return a, nil
	}
	if a.cache != nil {
		_ = a.cache.Clear()
	}
	a.chat = newChatModel(a.client, a.cache, a.exporter)
	a.chat.resize(a.width, a.height)
	a.status = status
	return a.applyRoute(route.Login())
}

// authFailure reports whether an async result failed because the server
// rejected the session token.
func authFailure(msg tea.Msg) bool {
	var err error
	switch msg := msg.(type) {
	case conversationsMsg:
		err = msg.err
	case createdMsg:
		err = msg.err
	case historyMsg:
		err = msg.err
	case sendResultMsg:
		err = msg.err
	default:
		return false
	}
	return errors.Is(err, api.ErrUnauthorized)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.chat.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case navigateMsg:
		var cmd tea.Cmd
		a, cmd = a.applyRoute(msg.to)
		return a, cmd

	case logoutRequestMsg:
		return a.forceLogout("Logged out")

	case loginResultMsg:
		if msg.err == nil {
			if err := a.sess.Login(msg.token); err != nil {
				a.status = "Couldn't persist session: " + err.Error()
				return a, nil
			}
			a.status = ""
			var cmd tea.Cmd
			a, cmd = a.applyRoute(route.Chat(0))
			return a, cmd
		}
	}

	if authFailure(msg) {
		return a.forceLogout("Session expired. Please log in again.")
	}

	var cmd tea.Cmd
	switch a.route.Page {
	case route.PageLogin:
		a.login, cmd = a.login.Update(msg)
	case route.PageRegister:
		a.register, cmd = a.register.Update(msg)
	case route.PageChat:
		a.chat, cmd = a.chat.Update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	var body string
	switch a.route.Page {
	case route.PageLogin:
		body = a.login.View(a.width, a.height)
	case route.PageRegister:
		body = a.register.View(a.width, a.height)
	case route.PageChat:
		body = a.chat.View()
	}
	if strings.TrimSpace(a.status) != "" && a.route.Page != route.PageChat {
		notice := noticeStyle.Render(a.status)
		body = lipgloss.JoinVertical(lipgloss.Left, notice, body)
	}
	return body
}
