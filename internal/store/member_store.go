package store

import (
	"context"
	"sync"

	"family-tasks/internal/domain"
	"family-tasks/internal/gateway"
	"family-tasks/internal/logging"
	"family-tasks/internal/validation"
)

// MemberStore holds the family member roster for one manager. Each
// successful mutation triggers a full reload.
type MemberStore struct {
	mu        sync.RWMutex
	gw        gateway.Gateway
	mapper    *domain.MemberMapper
	validator *validation.MemberValidator
	managerID string
	members   []domain.FamilyMember
	loaded    bool
}

// NewMemberStore creates a roster store for the given manager.
func NewMemberStore(gw gateway.Gateway, managerID string) *MemberStore {
	return &MemberStore{
		gw:        gw,
		mapper:    domain.NewMemberMapper(),
		validator: validation.NewMemberValidator(),
		managerID: managerID,
	}
}

func (s *MemberStore) managerFilter() []gateway.Filter {
	return []gateway.Filter{{Field: "manager_id", Value: s.managerID}}
}

// Load fetches the roster in creation order, oldest first. A gateway
// failure is logged and leaves the roster loaded but empty.
func (s *MemberStore) Load(ctx context.Context) {
	rows, err := s.gw.SelectMembers(ctx, gateway.Query{
		Equals:  s.managerFilter(),
		OrderBy: &gateway.Order{Field: "created_at", Ascending: true},
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		logging.Debugf("member store: load failed: %v\n", err)
		s.members = nil
		s.loaded = true
		return
	}

	s.members = s.mapper.FromRows(rows)
	s.loaded = true
}

// Loaded reports whether an initial load has completed.
func (s *MemberStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Members returns a copy of the current roster.
func (s *MemberStore) Members() []domain.FamilyMember {
	s.mu.RLock()
	defer s.mu.RUnlock()

	members := make([]domain.FamilyMember, len(s.members))
	copy(members, s.members)
	return members
}

// Find returns the roster member with the given id.
func (s *MemberStore) Find(id string) (domain.FamilyMember, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, member := range s.members {
		if member.ID == id {
			return member, true
		}
	}
	return domain.FamilyMember{}, false
}

// Add creates a family member. An empty color falls back to the default
// palette color. Validation and gateway errors propagate; on success the
// roster is reloaded.
func (s *MemberStore) Add(ctx context.Context, input domain.MemberInput) error {
	if err := s.validator.ValidateMemberInput(input); err != nil {
		return err
	}

	member := domain.FamilyMember{
		ManagerID: s.managerID,
		Name:      input.Name,
		AvatarURL: input.AvatarURL,
		Color:     input.Color,
	}

	if _, err := s.gw.InsertMember(ctx, s.mapper.ToRow(member)); err != nil {
		return err
	}

	s.Load(ctx)
	return nil
}

// Update replaces a member's mutable fields, scoped by member id only.
func (s *MemberStore) Update(ctx context.Context, id string, input domain.MemberInput) error {
	if err := s.validator.ValidateMemberID(id); err != nil {
		return err
	}
	if err := s.validator.ValidateMemberInput(input); err != nil {
		return err
	}

	color := input.Color
	if color == "" {
		color = domain.DefaultMemberColor
	}

	fields := gateway.Fields{
		"name":       input.Name,
		"avatar_url": nullableString(input.AvatarURL),
		"color":      color,
	}

	if err := s.gw.UpdateMembers(ctx, fields, []gateway.Filter{{Field: "id", Value: id}}); err != nil {
		return err
	}

	s.Load(ctx)
	return nil
}

// Remove deletes a member, scoped by member id only.
func (s *MemberStore) Remove(ctx context.Context, id string) error {
	if err := s.validator.ValidateMemberID(id); err != nil {
		return err
	}

	if err := s.gw.DeleteMembers(ctx, []gateway.Filter{{Field: "id", Value: id}}); err != nil {
		return err
	}

	s.Load(ctx)
	return nil
}
