package booking

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/rivalry"
	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/roster"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("booking", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "data/heelturn.club.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.Locale != "en-US" {
		t.Fatalf("expected default locale en-US, got %q", cfg.Locale)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("HEELTURN_BOOKING_DB_PATH", "/tmp/env.db")

	fs := flag.NewFlagSet("booking", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-db-path", "/tmp/flag.db", "-locale", "pt-BR"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "/tmp/flag.db" {
		t.Fatalf("expected flag to win over env, got %q", cfg.DBPath)
	}
	if cfg.Locale != "pt-BR" {
		t.Fatalf("expected locale pt-BR, got %q", cfg.Locale)
	}
}

func TestParseConfigKeepsSubcommandArgs(t *testing.T) {
	fs := flag.NewFlagSet("booking", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"heat", "-a", "w-1", "-b", "w-2", "-delta", "5"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if len(cfg.Args) != 7 || cfg.Args[0] != "heat" {
		t.Fatalf("expected subcommand args preserved, got %v", cfg.Args)
	}
}

func TestLoadIntensityTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intensity.yaml")
	config := `bands:
  - name: cold
    min_heat: 0
    max_heat: 14
    multiplier: 1.0
  - name: hot
    min_heat: 15
    max_heat: -1
    multiplier: 2.0
`
	if err := os.WriteFile(path, []byte(config), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	table, err := loadIntensityTable(path)
	if err != nil {
		t.Fatalf("load intensity table: %v", err)
	}
	if got := table.Classify(20).Name; got != "hot" {
		t.Fatalf("expected heat 20 to classify hot, got %q", got)
	}

	if _, err := loadIntensityTable(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestParseAlignment(t *testing.T) {
	cases := []struct {
		raw  string
		want roster.Alignment
	}{
		{"face", roster.AlignmentFace},
		{"HEEL", roster.AlignmentHeel},
		{" tweener ", roster.AlignmentTweener},
	}
	for _, tc := range cases {
		got, err := parseAlignment(tc.raw)
		if err != nil {
			t.Fatalf("parse alignment %q: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("parse alignment %q: got %v, want %v", tc.raw, got, tc.want)
		}
	}
	if _, err := parseAlignment("antihero"); err == nil {
		t.Fatal("expected an error for unknown alignment")
	}
}

func TestParseKind(t *testing.T) {
	cases := []struct {
		raw  string
		want rivalry.Kind
	}{
		{"individual_rivalry", rivalry.KindIndividual},
		{"rivalry", rivalry.KindIndividual},
		{"faction_rivalry", rivalry.KindFaction},
		{"feud", rivalry.KindFeud},
	}
	for _, tc := range cases {
		got, err := parseKind(tc.raw)
		if err != nil {
			t.Fatalf("parse kind %q: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("parse kind %q: got %v, want %v", tc.raw, got, tc.want)
		}
	}
	if _, err := parseKind("tag_team"); err == nil {
		t.Fatal("expected an error for unknown kind")
	}
}

func TestParseRolls(t *testing.T) {
	rolls, err := parseRolls("12, 7")
	if err != nil {
		t.Fatalf("parse rolls: %v", err)
	}
	if len(rolls) != 2 || rolls[0] != 12 || rolls[1] != 7 {
		t.Fatalf("unexpected rolls %v", rolls)
	}
	if _, err := parseRolls("nat20"); err == nil {
		t.Fatal("expected an error for non-numeric roll")
	}
	empty, err := parseRolls("")
	if err != nil {
		t.Fatalf("parse empty rolls: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no rolls, got %v", empty)
	}
}
