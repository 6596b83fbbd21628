package entities

import "time"

// DefaultAvatarURL is used for accounts that never uploaded a picture.
const DefaultAvatarURL = "https://res.cloudinary.com/revbook/image/upload/v1549973773/avatar.png"

// UserProfile is the client-side copy of a server user account.
// It is read-mostly: stores replace whole profiles, they never
// mutate one in place.
type UserProfile struct {
	ID        uint      `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName returns "First Last" for display purposes.
func (u *UserProfile) FullName() string {
	return u.FirstName + " " + u.LastName
}
