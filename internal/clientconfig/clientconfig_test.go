package clientconfig

import "testing"

func TestParseRequiresPort(t *testing.T) {
	_, status, err := Parse(nil)
	if err == nil || status != UsageError {
		t.Fatalf("Parse(nil) = status %v err %v, want UsageError", status, err)
	}
}

func TestParseRejectsTooManyArgs(t *testing.T) {
	_, status, err := Parse([]string{"3000", "jobs.txt", "extra"})
	if err == nil || status != UsageError {
		t.Fatalf("Parse with 3 args = status %v err %v, want UsageError", status, err)
	}
}

func TestParsePortOnly(t *testing.T) {
	cfg, status, err := Parse([]string{"3000"})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if status != OK || cfg.Port != "3000" || cfg.JobFile != "" {
		t.Fatalf("cfg = %+v status = %v, want Port=3000 JobFile=\"\"", cfg, status)
	}
}

func TestParsePortAndJobFile(t *testing.T) {
	cfg, status, err := Parse([]string{"3000", "jobs.txt"})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if status != OK || cfg.Port != "3000" || cfg.JobFile != "jobs.txt" {
		t.Fatalf("cfg = %+v status = %v, want Port=3000 JobFile=jobs.txt", cfg, status)
	}
}
