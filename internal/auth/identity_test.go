package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	member := &Identity{UserID: 1, Email: "member@shop.test"}
	adminUser := &Identity{UserID: 2, Email: "admin@shop.test", IsAdmin: true}

	tests := []struct {
		name     string
		ident    *Identity
		required Capability
		want     Decision
	}{
		{"anonymous needs auth", nil, CapabilityAuthenticated, DenyUnauthenticated},
		{"anonymous needs admin", nil, CapabilityAdmin, DenyUnauthenticated},
		{"member is authenticated", member, CapabilityAuthenticated, Allow},
		{"member is not admin", member, CapabilityAdmin, DenyForbidden},
		{"admin is authenticated", adminUser, CapabilityAuthenticated, Allow},
		{"admin is admin", adminUser, CapabilityAdmin, Allow},
		{"unknown capability denies", member, Capability("superuser"), DenyForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.ident, tt.required))
		})
	}
}
