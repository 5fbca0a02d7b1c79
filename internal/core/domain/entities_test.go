package domain

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	for _, s := range []string{"STUDENT", "ADMIN"} {
		role, err := ParseRole(s)
		if err != nil {
			t.Errorf("ParseRole(%q) returned error: %v", s, err)
		}
		if string(role) != s {
			t.Errorf("ParseRole(%q) = %q", s, role)
		}
	}

	for _, s := range []string{"", "student", "Admin", "FACULTY"} {
		if _, err := ParseRole(s); !errors.Is(err, ErrInvalidRole) {
			t.Errorf("ParseRole(%q) error = %v, want ErrInvalidRole", s, err)
		}
	}
}

func TestParseAssetStatus(t *testing.T) {
	for _, s := range []string{"AVAILABLE", "RESERVED", "MAINTENANCE"} {
		if _, err := ParseAssetStatus(s); err != nil {
			t.Errorf("ParseAssetStatus(%q) returned error: %v", s, err)
		}
	}

	for _, s := range []string{"", "available", "BROKEN"} {
		if _, err := ParseAssetStatus(s); !errors.Is(err, ErrInvalidAssetStatus) {
			t.Errorf("ParseAssetStatus(%q) error = %v, want ErrInvalidAssetStatus", s, err)
		}
	}
}

func TestParseRequestStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "APPROVED", "REJECTED"} {
		if _, err := ParseRequestStatus(s); err != nil {
			t.Errorf("ParseRequestStatus(%q) returned error: %v", s, err)
		}
	}

	for _, s := range []string{"", "pending", "CANCELLED"} {
		if _, err := ParseRequestStatus(s); !errors.Is(err, ErrInvalidRequestStatus) {
			t.Errorf("ParseRequestStatus(%q) error = %v, want ErrInvalidRequestStatus", s, err)
		}
	}
}
