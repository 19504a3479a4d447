package config

import "testing"

func validConfig() Config {
	return Config{
		DatabaseURL:  "postgres://localhost/dawam",
		Environment:  "development",
		MaxBodyBytes: 1 << 20,
		GraceMinutes: 15,
		StartTime:    "08:00",
		OvertimeEnd:  "17:00",
		SeasonStart:  "09:30",
		SeasonEnd:    "15:30",
		SeasonFrom:   "2026-02-18",
		SeasonTo:     "2026-03-17",
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRequiresDatabaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseURL = " "
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected missing DATABASE_URL to fail")
	}
}

func TestValidateRejectsBadClock(t *testing.T) {
	cfg := validConfig()
	cfg.StartTime = "eight"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected invalid START_TIME to fail")
	}
}

func TestValidateRejectsBadSeasonDate(t *testing.T) {
	cfg := validConfig()
	cfg.SeasonFrom = "18/02/2026"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected invalid SEASON_FROM to fail")
	}
}

func TestValidateProductionNeedsSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Environment = "production"
	cfg.RunSeed = false
	cfg.JWTSecret = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected missing JWT_SECRET to fail in production")
	}
}
