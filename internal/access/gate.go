package access

import (
	"family-tasks/internal/auth"
	"family-tasks/internal/selection"
)

// Decision is the outcome of running the access gates.
type Decision int

const (
	// DecisionLoading means the gates cannot decide yet because session or
	// selection state is still being resolved.
	DecisionLoading Decision = iota
	// DecisionRedirectLogin means there is no authenticated session.
	DecisionRedirectLogin
	// DecisionRedirectMemberSelection means the session is fine but no
	// family member has been selected.
	DecisionRedirectMemberSelection
	// DecisionProceed means all gates passed.
	DecisionProceed
)

func (d Decision) String() string {
	switch d {
	case DecisionRedirectLogin:
		return "redirect_login"
	case DecisionRedirectMemberSelection:
		return "redirect_member_selection"
	case DecisionProceed:
		return "proceed"
	default:
		return "loading"
	}
}

// Gate decides whether task operations may proceed. The session gate always
// runs; the member-selection gate only when requireMember is set.
type Gate struct {
	requireMember bool
}

// NewGate creates a gate. Each manager carries their own selection, so
// the selection manager is passed per decision rather than held here.
func NewGate(requireMember bool) *Gate {
	return &Gate{requireMember: requireMember}
}

// Decide runs the gates in order: session first, member selection second.
// An unresolved session or an unloaded selection yields DecisionLoading
// rather than a redirect, so callers never bounce a user on transient
// startup state.
func (g *Gate) Decide(session auth.Session, sel *selection.Manager) Decision {
	switch session.State {
	case auth.SessionUnknown:
		return DecisionLoading
	case auth.SessionAbsent:
		return DecisionRedirectLogin
	}

	if !g.requireMember {
		return DecisionProceed
	}

	member, loaded := sel.Selected()
	if !loaded {
		return DecisionLoading
	}
	if member == nil {
		return DecisionRedirectMemberSelection
	}
	return DecisionProceed
}
