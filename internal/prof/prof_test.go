package prof

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		CPUPath: filepath.Join(dir, "cpu.pprof"),
		MemPath: filepath.Join(dir, "mem.pprof"),
	}
	if !cfg.Enabled() {
		t.Fatal("config with paths reports disabled")
	}
	s, err := Start(cfg)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
	for _, p := range []string{cfg.CPUPath, cfg.MemPath} {
		info, err := os.Stat(p)
		if err != nil {
			t.Fatalf("stat %s: %v", p, err)
		}
		if info.Size() == 0 {
			t.Fatalf("%s is empty", p)
		}
	}
}

func TestStartFailsCleanly(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "missing", "cpu.pprof")
	if _, err := Start(Config{CPUPath: bad}); err == nil {
		t.Fatal("Start into a missing directory succeeded")
	}
	// a failed Start must not leave the cpu profiler running
	s, err := Start(Config{CPUPath: filepath.Join(t.TempDir(), "cpu.pprof")})
	if err != nil {
		t.Fatalf("Start after failure: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
	if (Config{}).Enabled() {
		t.Fatal("empty config reports enabled")
	}
}
