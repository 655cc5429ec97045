package chatbridge

import (
	"encoding/json"
	"fmt"
)

// User is the messaging identity attached to the current session.
type User struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	PhoneCountryCode string `json:"phoneCountryCode"`
	Phone            string `json:"phone"`
}

// decodeUser rebuilds a User from a getUser reply. Optional phone fields the
// host omits come back as empty strings, never missing.
func decodeUser(raw json.RawMessage) (User, error) {
	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return User{}, fmt.Errorf("decode user reply: %w", err)
	}
	return u, nil
}

func (u User) args() map[string]any {
	return map[string]any{
		"firstName":        u.FirstName,
		"lastName":         u.LastName,
		"email":            u.Email,
		"phoneCountryCode": u.PhoneCountryCode,
		"phone":            u.Phone,
	}
}
