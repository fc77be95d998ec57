package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleConstants(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		expected string
	}{
		{"Client", RoleClient, "user"},
		{"Specialist", RoleSpecialist, "specialist"},
		{"Admin", RoleAdmin, "admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.role))
		})
	}
}

func TestNewActor(t *testing.T) {
	tests := []struct {
		name  string
		role  Role
		has   []Capability
		lacks []Capability
	}{
		{
			name:  "client",
			role:  RoleClient,
			has:   []Capability{CapabilityClient},
			lacks: []Capability{CapabilitySpecialist, CapabilityAdmin},
		},
		{
			name:  "specialist",
			role:  RoleSpecialist,
			has:   []Capability{CapabilitySpecialist},
			lacks: []Capability{CapabilityClient, CapabilityAdmin},
		},
		{
			name: "admin satisfies everything",
			role: RoleAdmin,
			has:  []Capability{CapabilityClient, CapabilitySpecialist, CapabilityAdmin},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := NewActor("u-1", tt.role)
			assert.Equal(t, "u-1", actor.UserID)
			for _, c := range tt.has {
				assert.True(t, actor.Has(c), "expected capability %s", c)
			}
			for _, c := range tt.lacks {
				assert.False(t, actor.Has(c), "unexpected capability %s", c)
			}
		})
	}
}

func TestNewActor_UnknownRole(t *testing.T) {
	actor := NewActor("u-1", Role("intern"))

	assert.False(t, actor.Has(CapabilityClient))
	assert.False(t, actor.Has(CapabilitySpecialist))
	assert.False(t, actor.Has(CapabilityAdmin))
}

func TestActorRequire(t *testing.T) {
	specialist := NewActor("u-1", RoleSpecialist)

	assert.NoError(t, specialist.Require(CapabilitySpecialist))
	assert.ErrorIs(t, specialist.Require(CapabilityClient), ErrMissingCapability)

	admin := NewActor("u-2", RoleAdmin)
	assert.NoError(t, admin.Require(CapabilityClient))
	assert.NoError(t, admin.Require(CapabilitySpecialist))
}
