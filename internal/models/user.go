package models

// UserAccount is the account bound to a single device. At most one live
// account exists per device id. Timestamps are epoch millis.
type UserAccount struct {
	ID        string `json:"id"`
	DeviceID  string `json:"deviceId"`
	Username  string `json:"username" validate:"required"`
	Avatar    string `json:"avatar"`
	Email     string `json:"email,omitempty"`
	CreatedAt int64  `json:"createdAt"`
	LastLogin int64  `json:"lastLogin"`
}

// UserRegistryEntry is the denormalized summary appended to the global
// registry when an account is created. The registry is append-only and
// exactly one entry ever carries IsAdmin=true (the first one).
type UserRegistryEntry struct {
	ID        string `json:"id"`
	DeviceID  string `json:"deviceId"`
	Username  string `json:"username"`
	CreatedAt int64  `json:"createdAt"`
	IsAdmin   bool   `json:"isAdmin"`
}

// Session is the in-memory identity produced by bootstrap or login.
type Session struct {
	ID            string       `json:"id"`
	Authenticated bool         `json:"authenticated"`
	User          *UserAccount `json:"user,omitempty"`
}
