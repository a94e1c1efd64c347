package notifications

import (
	"context"
	"fmt"
)

// Preference is a user's per-type channel preference.
type Preference struct {
	Web   bool `json:"web"`
	Email bool `json:"email"`
	Push  bool `json:"push"`
}

// DefaultPreference is used when a user's settings carry no entry for a
// notification type: every channel enabled.
func DefaultPreference() Preference {
	return Preference{Web: true, Email: true, Push: true}
}

// PreferenceResolver determines which channels are enabled for a
// (recipient, type) pair.
type PreferenceResolver struct {
	users UserStore
}

// NewPreferenceResolver creates a resolver over the given user store.
func NewPreferenceResolver(users UserStore) *PreferenceResolver {
	return &PreferenceResolver{users: users}
}

// Resolve fetches the recipient and returns the channel preference for the
// given type, falling back to DefaultPreference when the user's settings
// have no entry. An unknown recipient is a caller or data-integrity bug and
// surfaces as ErrRecipientNotFound rather than silently resolving to "send
// nothing".
//
// The returned user lets the engine apply account-state policy (invited
// users never receive email) without a second lookup.
func (r *PreferenceResolver) Resolve(ctx context.Context, userID int64, t Type) (Preference, *User, error) {
	user, err := r.users.GetUserByID(ctx, userID)
	if err != nil {
		return Preference{}, nil, fmt.Errorf("look up recipient %d: %w", userID, err)
	}
	if user == nil {
		return Preference{}, nil, fmt.Errorf("%w: user %d", ErrRecipientNotFound, userID)
	}

	if pref, ok := user.Settings.Notifications[t]; ok {
		return pref, user, nil
	}
	return DefaultPreference(), user, nil
}
