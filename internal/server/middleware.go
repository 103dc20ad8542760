package server

import (
	"strings"

	"family-tasks/internal/access"
	"family-tasks/internal/auth"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// sessionKey is the fiber locals key holding the resolved session.
const sessionKey = "session"

func sessionFrom(c *fiber.Ctx) auth.Session {
	if session, ok := c.Locals(sessionKey).(auth.Session); ok {
		return session
	}
	return auth.Session{State: auth.SessionAbsent}
}

// resolveSession extracts the bearer token and resolves it to a session.
func (s *Server) resolveSession(c *fiber.Ctx) auth.Session {
	header := c.Get("Authorization")
	token := ""
	if strings.HasPrefix(header, "Bearer ") {
		token = strings.TrimPrefix(header, "Bearer ")
	}
	return s.auth.Resolve(token)
}

// requireSession rejects requests without a valid session token.
func (s *Server) requireSession(c *fiber.Ctx) error {
	session := s.resolveSession(c)
	if session.State != auth.SessionPresent {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "a valid session token is required",
		})
	}

	c.Locals(sessionKey, session)
	return c.Next()
}

// requireAccess runs the access gates and maps their decisions onto HTTP
// responses: no session is 401, no selected member 409, unresolved
// state 503.
func (s *Server) requireAccess(c *fiber.Ctx) error {
	session := sessionFrom(c)
	state := s.managerStateFor(c.UserContext(), session.UserID)

	switch s.gate.Decide(session, state.selection) {
	case access.DecisionProceed:
		return c.Next()
	case access.DecisionRedirectLogin:
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "a valid session token is required",
		})
	case access.DecisionRedirectMemberSelection:
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "member_not_selected",
			Message: "select a family member first",
		})
	default:
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "loading",
			Message: "session state is still being resolved",
		})
	}
}

// requireWebSocketUpgrade gates the change feed endpoint: the request
// must be a websocket upgrade carrying a valid session.
func (s *Server) requireWebSocketUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	session := s.resolveSession(c)
	if session.State != auth.SessionPresent {
		return fiber.ErrUnauthorized
	}

	c.Locals(sessionKey, session)
	return c.Next()
}
