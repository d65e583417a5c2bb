package models

import "time"

// User is the authenticated identity as the auth service reports it.
type User struct {
	ID              int64     `json:"id"`
	Email           string    `json:"email"`
	Username        string    `json:"username"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	IsEmailVerified bool      `json:"is_email_verified"`
	CreatedAt       time.Time `json:"created_at"`
}

// CredentialPair is what login and registration return. It is also the
// persisted session value.
type CredentialPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    User   `json:"user"`
}

func (c CredentialPair) Valid() bool {
	return c.Access != ""
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// ProfileUpdate carries the writable identity fields; nil means unchanged.
type ProfileUpdate struct {
	Email     *string `json:"email,omitempty"`
	Username  *string `json:"username,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// Over fills unset fields from user, so a PUT carries the full writable identity.
func (u ProfileUpdate) Over(user User) ProfileUpdate {
	pick := func(v *string, fallback string) *string {
		if v != nil {
			return v
		}
		return &fallback
	}
	return ProfileUpdate{
		Email:     pick(u.Email, user.Email),
		Username:  pick(u.Username, user.Username),
		FirstName: pick(u.FirstName, user.FirstName),
		LastName:  pick(u.LastName, user.LastName),
	}
}
