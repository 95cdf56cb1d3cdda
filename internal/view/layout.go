package view

import (
	"jobalert-web/internal/domain/user"
)

type Notice struct {
	Level   string
	Message string
}

// Layout carries the chrome shared by every page.
type Layout struct {
	AppName     string
	Title       string
	CurrentPath string
	Nav         []NavItem
	User        *user.User
	IsAdmin     bool
	Notices     []Notice
	LiveUpdates bool
}

func (l Layout) IsAuthenticated() bool {
	return l.User != nil
}

func (l Layout) Active(href string) bool {
	return l.CurrentPath == href
}

// Page is the root value handed to the layout template.
type Page struct {
	Layout
	Panels Panels
	Data   any
}
