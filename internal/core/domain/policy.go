package domain

// Action identifies an operation subject to access control.
type Action string

const (
	ActionCreateProperty Action = "property:create"
	ActionUpdateProperty Action = "property:update"
	ActionDeleteProperty Action = "property:delete"
	ActionListUsers      Action = "user:list"
	ActionBlockUser      Action = "user:block"
	ActionUnblockUser    Action = "user:unblock"
	ActionUpdateProfile  Action = "profile:update"
	ActionDeleteProfile  Action = "profile:delete"
)

// Decide is the access-control policy: given the authenticated actor, the
// requested action and the id of the resource owner (empty when the action
// has no owned resource), it returns nil to allow or ErrForbidden to deny.
//
// The function is total: it never panics and every input combination maps to
// a decision. It has no transport or storage dependencies so it can be
// exercised exhaustively in isolation.
func Decide(actor *User, action Action, resourceOwnerID string) error {
	if actor == nil {
		return ErrForbidden
	}

	// Blocked accounts lose every privilege; public reads never reach the
	// policy because they carry no actor.
	if actor.IsBlocked {
		return ErrForbidden
	}

	switch action {
	case ActionCreateProperty:
		if actor.CanListProperties() {
			return nil
		}
	case ActionUpdateProperty, ActionDeleteProperty:
		if actor.Role == RoleAdmin || (resourceOwnerID != "" && actor.ID == resourceOwnerID) {
			return nil
		}
	case ActionListUsers, ActionBlockUser, ActionUnblockUser:
		if actor.Role == RoleAdmin {
			return nil
		}
	case ActionUpdateProfile, ActionDeleteProfile:
		// Profile mutations are always scoped to the actor's own record by
		// the service layer, so the authenticated actor is always permitted.
		return nil
	}

	return ErrForbidden
}
