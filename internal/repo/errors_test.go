package repo

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"devconnector/internal/domain"
)

func TestWrapWriteDuplicate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		err     error
		wantDup bool
	}{
		{"translated duplicate", fmt.Errorf("exec: %w", gorm.ErrDuplicatedKey), true},
		{"untranslated driver text", errors.New("Error 1062: Duplicate entry 'a' for key 'email'"), false},
		{"other", errors.New("connection reset"), false},
	}
	for _, tc := range cases {
		err := wrapWrite("create user", tc.err)
		if got := errors.Is(err, domain.ErrDuplicate); got != tc.wantDup {
			t.Errorf("%s: dup = %v, want %v (%v)", tc.name, got, tc.wantDup, err)
		}
		if !errors.Is(err, tc.err) && !tc.wantDup {
			t.Errorf("%s: cause lost: %v", tc.name, err)
		}
	}
	if wrapWrite("x", nil) != nil {
		t.Fatal("nil error wrapped")
	}
}
