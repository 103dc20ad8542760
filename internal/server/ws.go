package server

import (
	"context"

	"family-tasks/internal/auth"
	"family-tasks/internal/gateway"
	"family-tasks/internal/logging"

	"github.com/gofiber/contrib/websocket"
)

// ChangeMessage is the JSON frame streamed over the change feed.
type ChangeMessage struct {
	Table  string            `json:"table"`
	Type   string            `json:"type"`
	Fields map[string]string `json:"fields,omitempty"`
}

// changeFeedFilters resolves the owner scope for a change feed
// connection: the selected member in family mode, the manager otherwise.
func (s *Server) changeFeedFilters(session auth.Session) ([]gateway.Filter, bool) {
	if !s.cfg.Access.RequireMemberSelection {
		return []gateway.Filter{{Field: string(gateway.OwnerKeyUser), Value: session.UserID}}, true
	}

	state := s.managerStateFor(context.Background(), session.UserID)
	member, _ := state.selection.Selected()
	if member == nil {
		return nil, false
	}
	return []gateway.Filter{{Field: string(gateway.OwnerKeyMember), Value: member.ID}}, true
}

// handleChangeFeed streams task change notifications for the connection's
// owner scope until the client disconnects.
func (s *Server) handleChangeFeed(c *websocket.Conn) {
	defer c.Close()

	session, _ := c.Locals(sessionKey).(auth.Session)
	filters, ok := s.changeFeedFilters(session)
	if !ok {
		c.WriteJSON(ErrorResponse{Error: "member_not_selected", Message: "select a family member first"})
		return
	}

	sub := s.gw.Subscribe(gateway.TableTasks, filters)
	defer s.gw.Unsubscribe(sub)

	// The read loop exists to observe the close; inbound frames are ignored.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-sub.Events:
			if !ok {
				return
			}
			msg := ChangeMessage{Table: string(ev.Table), Type: string(ev.Type), Fields: ev.Fields}
			if err := c.WriteJSON(msg); err != nil {
				logging.Debugf("change feed: write failed: %v\n", err)
				return
			}
		case <-closed:
			return
		}
	}
}
