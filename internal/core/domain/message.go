package domain

import "time"

// Message is a direct note between two accounts, typically a farmer and the
// doctor handling their animals.
type Message struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Content     string    `json:"content"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

// CanMessage reports whether an account with role from may write to one with
// role to. Farmers and doctors write to each other; admins write to anyone
// and anyone may write to an admin.
func CanMessage(from, to string) bool {
	switch {
	case !ValidRole(from) || !ValidRole(to):
		return false
	case from == RoleAdmin || to == RoleAdmin:
		return true
	}
	return from != to
}

// ContactSubmission is a message left through the public contact form.
type ContactSubmission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
