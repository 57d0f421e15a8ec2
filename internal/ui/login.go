package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"chatterm/internal/api"
	"chatterm/internal/route"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type loginResultMsg struct {
	token string
	err   error
}

type loginModel struct {
	client *api.Client

	username textinput.Model
	password textinput.Model
	focus    int

	submitting bool
	errMsg     string
}

func newLoginModel(client *api.Client) loginModel {
	user := textinput.New()
	user.Placeholder = "Username"
	user.CharLimit = 128
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "Password"
	pass.CharLimit = 128
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '*'

	return loginModel{client: client, username: user, password: pass}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrBadCredentials) {
				m.errMsg = "Invalid username or password. Please try again."
			} else {
				m.errMsg = "Login failed: " + msg.err.Error()
			}
			return m, nil
		}
		// Success is handled by the app model.
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.setFocus((m.focus + 1) % 2)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + 1) % 2)
			return m, nil
		case "ctrl+r":
			return m, navigateTo(route.Register())
		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *loginModel) setFocus(i int) {
	m.focus = i
	if i == 0 {
		m.username.Focus()
		m.password.Blur()
	} else {
		m.username.Blur()
		m.password.Focus()
	}
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	username := strings.TrimSpace(m.username.Value())
	password := m.password.Value()
	if username == "" || password == "" {
		m.errMsg = "Username and password are required."
		return m, nil
	}
	m.submitting = true
	m.errMsg = ""
	client := m.client
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		token, err := client.Login(ctx, username, password)
		return loginResultMsg{token: token, err: err}
	}
}

func (m loginModel) View(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Welcome back") + "\n\n")
	b.WriteString(formLabelStyle.Render("Username") + "\n")
	b.WriteString(m.username.View() + "\n\n")
	b.WriteString(formLabelStyle.Render("Password") + "\n")
	b.WriteString(m.password.View() + "\n\n")

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg) + "\n\n")
	}
	if m.submitting {
		b.WriteString("Signing in...\n\n")
	}
	b.WriteString(formLabelStyle.Render("enter sign in · ctrl+r register · ctrl+c quit"))

	card := panelStyle(true).Width(48).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
