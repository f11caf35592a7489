package fakebao

import (
	"github.com/fekuna/bao-console/internal/apiclient"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/fekuna/bao-console/internal/model"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

// NewClient returns an API client for this server holding token.
func (s *Server) NewClient(token string) *apiclient.Client {
	return apiclient.New(s.URL, 0, staticToken(token), logger.NewNop())
}

// AdminClient seeds an admin account (once) and returns a client logged in as it.
func (s *Server) AdminClient() *apiclient.Client {
	const email = "admin@bao.edu"
	s.mu.Lock()
	_, seeded := s.accounts[email]
	s.mu.Unlock()
	if !seeded {
		s.AddAccount(email, "admin123", model.RoleAdmin, "Ada", "Reyes")
	}
	return s.NewClient(s.Session(email))
}
