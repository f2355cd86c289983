package client

import "github.com/dmitrijs2005/devlog/internal/api"

// Session is the authenticated identity of one client user. It is passed
// explicitly to every protected call.
type Session struct {
	Token string   `json:"token"`
	User  api.User `json:"user"`
}

func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != ""
}
