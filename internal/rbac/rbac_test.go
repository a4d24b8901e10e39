package rbac

import (
	"testing"

	"github.com/x986x/CW6/internal/models"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role       string
		permission string
		expected   bool
	}{
		{models.RoleAdmin, PermEditAnyRecord, true},
		{models.RoleAdmin, PermDisableMailings, true},
		{models.RoleManager, PermViewAllMailings, true},
		{models.RoleManager, PermDisableMailings, true},
		{models.RoleManager, PermBlockClients, true},
		{models.RoleManager, PermEditAnyRecord, false},
		{models.RoleUser, PermViewAllMailings, false},
		{models.RoleUser, PermBlockClients, false},
		{"nonexistent", PermViewAllMailings, false},
		{models.RoleAdmin, "nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.permission, func(t *testing.T) {
			if got := HasPermission(tt.role, tt.permission); got != tt.expected {
				t.Errorf("HasPermission(%q, %q) = %v, want %v", tt.role, tt.permission, got, tt.expected)
			}
		})
	}
}

func TestCanSeeAll(t *testing.T) {
	if !CanSeeAll(models.RoleManager) {
		t.Error("managers must see all records")
	}
	if CanSeeAll(models.RoleUser) {
		t.Error("plain users must not see all records")
	}
}
