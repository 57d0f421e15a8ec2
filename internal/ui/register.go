package ui

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"chatterm/internal/api"
	"chatterm/internal/route"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type registerResultMsg struct {
	err error
}

const registerFields = 4

type registerModel struct {
	client *api.Client

	inputs [registerFields]textinput.Model
	focus  int

	submitting bool
	errMsg     string
	notice     string
}

func newRegisterModel(client *api.Client) registerModel {
	m := registerModel{client: client}
	placeholders := [registerFields]string{"Username", "Email", "Password", "Confirm password"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 128
		if i >= 2 {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '*'
		}
		m.inputs[i] = ti
	}
	m.inputs[0].Focus()
	return m
}

// validatePassword applies the client-side rules checked before any request
// is issued: at least eight characters with one letter and one digit.
func validatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return errors.New("password must include at least one letter and one number")
	}
	return nil
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case registerResultMsg:
		m.submitting = false
		if msg.err != nil {
			var se *api.StatusError
			if errors.As(msg.err, &se) && se.Detail != "" {
				m.errMsg = se.Detail
			} else {
				m.errMsg = "Registration failed: " + msg.err.Error()
			}
			return m, nil
		}
		m.errMsg = ""
		m.notice = "Registration successful. You can now log in."
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.setFocus((m.focus + 1) % registerFields)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + registerFields - 1) % registerFields)
			return m, nil
		case "esc":
			return m, navigateTo(route.Login())
		case "enter":
			if m.focus < registerFields-1 {
				m.setFocus(m.focus + 1)
				return m, nil
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		// Typing invalidates a stale validation message.
		m.errMsg = ""
	}
	return m, cmd
}

func (m *registerModel) setFocus(i int) {
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

func (m registerModel) submit() (registerModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	reg := api.RegisterRequest{
		Username:        strings.TrimSpace(m.inputs[0].Value()),
		Email:           strings.TrimSpace(m.inputs[1].Value()),
		Password:        m.inputs[2].Value(),
		ConfirmPassword: m.inputs[3].Value(),
	}
	if reg.Username == "" || reg.Email == "" {
		m.errMsg = "Username and email are required."
		return m, nil
	}
	if err := validatePassword(reg.Password); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	if reg.Password != reg.ConfirmPassword {
		m.errMsg = "Passwords do not match."
		return m, nil
	}

	m.submitting = true
	m.errMsg = ""
	m.notice = ""
	client := m.client
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return registerResultMsg{err: client.Register(ctx, reg)}
	}
}

func (m registerModel) View(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Create an account") + "\n\n")
	labels := [registerFields]string{"Username", "Email", "Password", "Confirm password"}
	for i, ti := range m.inputs {
		b.WriteString(formLabelStyle.Render(labels[i]) + "\n")
		b.WriteString(ti.View() + "\n\n")
	}

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg) + "\n\n")
	}
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice) + "\n\n")
	}
	if m.submitting {
		b.WriteString("Registering...\n\n")
	}
	b.WriteString(formLabelStyle.Render("enter register · esc back to login · ctrl+c quit"))

	card := panelStyle(true).Width(48).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
