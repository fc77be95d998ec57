package domain

import "time"

// Role represents a user's role code as stored in the users table.
type Role string

const (
	RoleClient     Role = "user"
	RoleSpecialist Role = "specialist"
	RoleAdmin      Role = "admin"
)

// Capability is a permission an actor may hold.
type Capability string

const (
	CapabilityClient     Capability = "client"
	CapabilitySpecialist Capability = "specialist"
	CapabilityAdmin      Capability = "admin"
)

// User represents an account in the system
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
}

// Actor is an authenticated principal carrying a capability set.
// Admin implicitly satisfies every required capability.
type Actor struct {
	UserID       string
	Capabilities map[Capability]struct{}
}

// NewActor builds an actor from a user's role code.
func NewActor(userID string, role Role) Actor {
	caps := make(map[Capability]struct{}, 1)
	switch role {
	case RoleClient:
		caps[CapabilityClient] = struct{}{}
	case RoleSpecialist:
		caps[CapabilitySpecialist] = struct{}{}
	case RoleAdmin:
		caps[CapabilityAdmin] = struct{}{}
	}
	return Actor{UserID: userID, Capabilities: caps}
}

// Has reports whether the actor holds the given capability.
func (a Actor) Has(c Capability) bool {
	if _, ok := a.Capabilities[CapabilityAdmin]; ok {
		return true
	}
	_, ok := a.Capabilities[c]
	return ok
}

// Require returns ErrMissingCapability when the actor lacks c.
func (a Actor) Require(c Capability) error {
	if !a.Has(c) {
		return ErrMissingCapability
	}
	return nil
}
