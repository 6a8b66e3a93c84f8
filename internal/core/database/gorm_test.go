package database

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestMySQLConfig(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name, dsn, user, pass string
		wantPrefix            string
	}{
		{"native dsn", "root:pw@tcp(127.0.0.1:3306)/dev", "", "", "root:pw@tcp(127.0.0.1:3306)/dev?"},
		{"account override", " root:pw@tcp(db:3306)/dev?timeout=5s ", "app", "secret", "app:secret@tcp(db:3306)/dev?"},
	}
	for _, tc := range cases {
		cfg, err := mysqlConfig(tc.dsn, tc.user, tc.pass)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		got := cfg.FormatDSN()
		if !strings.HasPrefix(got, tc.wantPrefix) || !strings.Contains(got, "parseTime=true") {
			t.Errorf("%s: dsn = %q", tc.name, got)
		}
	}

	if _, err := mysqlConfig("root:pw@tcp(db:3306)", "", ""); err == nil {
		t.Fatal("dsn without database separator accepted")
	}
}

func TestMaskedDSNHidesPassword(t *testing.T) {
	t.Parallel()

	cfg, err := mysqlConfig("root:topsecret@tcp(db:3306)/dev", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if got := maskedDSN(cfg); strings.Contains(got, "topsecret") || !strings.HasPrefix(got, "root:****@") {
		t.Fatalf("masked = %q", got)
	}
	if cfg.Passwd != "topsecret" {
		t.Fatal("masking modified the original config")
	}
}

func TestOpenGormRejectsUnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := OpenGorm(context.Background(), Opts{Driver: "sqlite"}, zap.NewNop())
	if !errors.Is(err, ErrUnsupportedDriver) {
		t.Fatalf("err = %v, want ErrUnsupportedDriver", err)
	}
}
