package engine

import (
	"testing"
	"time"

	"dawam/internal/extract"
	"dawam/internal/roster"
)

func TestInferSaturdayWorkday(t *testing.T) {
	cases := []struct {
		name        string
		isSaudi     bool
		satPresence bool
		mode        Mode
		want        bool
	}{
		{"saudi with presence stays off", true, true, ModeByNationality, false},
		{"non-saudi without presence stays off", false, false, ModeByNationality, false},
		{"non-saudi with presence turns on", false, true, ModeByNationality, true},
		{"auto ignores nationality", true, true, ModeAuto, true},
		{"fri mode always on", true, false, ModeFriday, true},
		{"fri_sat mode always off", false, true, ModeFridaySaturday, false},
	}
	for _, tc := range cases {
		if got := InferSaturdayWorkday(tc.isSaudi, tc.satPresence, tc.mode); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestResolvePolicyPriority(t *testing.T) {
	yes, no := true, false

	// Roster override beats the nationality default.
	profile := roster.Profile{EmployeeID: "1", Nationality: "Saudi", SaturdayWork: &yes}
	policy := ResolvePolicy(profile, nil, false, ModeByNationality)
	if !policy.SaturdayWork {
		t.Fatal("roster sat_work override should win over the default")
	}

	// The exceptions table beats the roster.
	override := roster.Override{EmployeeID: "1", SaturdayWork: &no}
	policy = ResolvePolicy(profile, &override, true, ModeByNationality)
	if policy.SaturdayWork {
		t.Fatal("exceptions override should win over the roster")
	}

	// Saturday start/grace carried from the exceptions table.
	start := extract.NewClock(9, 0)
	grace := 30
	override = roster.Override{EmployeeID: "1", SaturdayWork: &yes, SaturdayStart: &start, SaturdayGrace: &grace}
	policy = ResolvePolicy(profile, &override, false, ModeByNationality)
	if policy.SaturdayStart == nil || *policy.SaturdayStart != start {
		t.Fatal("saturday start override not applied")
	}
	if policy.SaturdayGrace == nil || *policy.SaturdayGrace != 30 {
		t.Fatal("saturday grace override not applied")
	}
}

func TestPolicyFridayNeverDefaultsOn(t *testing.T) {
	for _, mode := range []Mode{ModeByNationality, ModeAuto, ModeFriday, ModeFridaySaturday} {
		policy := ResolvePolicy(roster.Profile{Nationality: "Egyptian"}, nil, true, mode)
		if policy.IsWorkday(time.Friday) {
			t.Fatalf("mode %s turned Friday into a workday", mode)
		}
	}

	yes := true
	policy := ResolvePolicy(roster.Profile{FridayWork: &yes}, nil, false, ModeByNationality)
	if !policy.IsWorkday(time.Friday) {
		t.Fatal("explicit fri_work override must enable Friday")
	}
}

func TestPolicyLabel(t *testing.T) {
	if (Policy{SaturdayWork: true}).Label() != "جمعة فقط" {
		t.Fatal("saturday workday should label the Friday-only schedule")
	}
	if (Policy{}).Label() != "جمعة وسبت" {
		t.Fatal("default schedule should label both weekend days")
	}
}

func TestParseMode(t *testing.T) {
	if ParseMode("auto") != ModeAuto || ParseMode("fri") != ModeFriday || ParseMode("fri_sat") != ModeFridaySaturday {
		t.Fatal("explicit modes should parse")
	}
	if ParseMode("") != ModeByNationality || ParseMode("bogus") != ModeByNationality {
		t.Fatal("unknown modes should fall back to by_nationality")
	}
}
