package serverconfig

import "testing"

func TestParseDefaults(t *testing.T) {
	cfg, status, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error: %v", err)
	}
	if status != OK {
		t.Fatalf("status = %v, want OK", status)
	}
	if cfg.Port != 0 || cfg.MaxConn != 0 || cfg.Dictionary != DefaultDictionary {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestParseRejectsDuplicateFlag(t *testing.T) {
	_, status, err := Parse([]string{"--port", "1025", "--port", "1026"})
	if err == nil {
		t.Fatal("expected an error for a duplicate --port flag")
	}
	if status != UsageError {
		t.Fatalf("status = %v, want UsageError", status)
	}
}

func TestParseRejectsOutOfRangePort(t *testing.T) {
	for _, p := range []string{"1", "1023", "65536", "-1"} {
		_, status, err := Parse([]string{"--port", p})
		if err == nil {
			t.Errorf("port %q: expected a validation error", p)
		}
		if status != UsageError {
			t.Errorf("port %q: status = %v, want UsageError", p, status)
		}
	}
}

func TestParseAcceptsValidFlags(t *testing.T) {
	cfg, status, err := Parse([]string{"--port", "5000", "--maxconn", "3", "--dictionary", "/tmp/words"})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if status != OK {
		t.Fatalf("status = %v, want OK", status)
	}
	if cfg.Port != 5000 || cfg.MaxConn != 3 || cfg.Dictionary != "/tmp/words" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestParseRejectsNegativeMaxConn(t *testing.T) {
	_, status, err := Parse([]string{"--maxconn", "-5"})
	if err == nil {
		t.Fatal("expected an error for negative --maxconn")
	}
	if status != UsageError {
		t.Fatalf("status = %v, want UsageError", status)
	}
}

func TestParseAppliesEnvVarWithoutConfigFile(t *testing.T) {
	t.Setenv("CRACKSERVER_PORT", "5050")
	t.Setenv("CRACKSERVER_MAXCONN", "7")

	cfg, status, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if status != OK {
		t.Fatalf("status = %v, want OK", status)
	}
	if cfg.Port != 5050 || cfg.MaxConn != 7 {
		t.Fatalf("cfg = %+v, want Port=5050 MaxConn=7 from environment alone", cfg)
	}
}

func TestParseFlagWinsOverEnvVar(t *testing.T) {
	t.Setenv("CRACKSERVER_PORT", "5050")

	cfg, status, err := Parse([]string{"--port", "6060"})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if status != OK {
		t.Fatalf("status = %v, want OK", status)
	}
	if cfg.Port != 6060 {
		t.Fatalf("cfg.Port = %d, want 6060 (explicit flag must win over environment)", cfg.Port)
	}
}
