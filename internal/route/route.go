// Package route maps client paths to views and applies the session guard.
// The route value is the single source of truth for which view is active
// and which conversation is selected; everything else derives from it.
package route

import (
	"fmt"
	"strconv"
	"strings"
)

type Page int

const (
	PageRoot Page = iota
	PageLogin
	PageRegister
	PageChat
)

// Route is a parsed client path. ConvID is zero when no conversation is
// selected; it is only meaningful on PageChat.
type Route struct {
	Page   Page
	ConvID int64
}

func Login() Route    { return Route{Page: PageLogin} }
func Register() Route { return Route{Page: PageRegister} }

// Chat returns the conversation view route; id zero means unselected.
func Chat(id int64) Route { return Route{Page: PageChat, ConvID: id} }

// Parse maps a path to a route. "/" and anything unrecognized map to the
// root route, which Resolve then redirects by session status.
func Parse(path string) Route {
	path = strings.TrimSuffix(strings.TrimSpace(path), "/")
	switch path {
	case "":
		return Route{Page: PageRoot}
	case "/login":
		return Login()
	case "/register":
		return Register()
	case "/chat":
		return Chat(0)
	}
	if rest, ok := strings.CutPrefix(path, "/chat/"); ok {
		if id, err := strconv.ParseInt(rest, 10, 64); err == nil && id > 0 {
			return Chat(id)
		}
	}
	return Route{Page: PageRoot}
}

// Path renders the route back to its canonical path form.
func (r Route) Path() string {
	switch r.Page {
	case PageLogin:
		return "/login"
	case PageRegister:
		return "/register"
	case PageChat:
		if r.ConvID > 0 {
			return fmt.Sprintf("/chat/%d", r.ConvID)
		}
		return "/chat"
	default:
		return "/"
	}
}

// Resolve applies the guard policy: the root redirects by session status,
// the auth pages redirect away once a session exists, and the conversation
// view requires one. No post-login return path is kept.
func Resolve(r Route, authenticated bool) Route {
	switch r.Page {
	case PageRoot:
		if authenticated {
			return Chat(0)
		}
		return Login()
	case PageLogin, PageRegister:
		if authenticated {
			return Chat(0)
		}
		return r
	case PageChat:
		if !authenticated {
			return Login()
		}
		return r
	default:
		return Login()
	}
}
