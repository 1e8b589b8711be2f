package harden

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestDisableOOMKill(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oom_score_adj")
	if err := os.WriteFile(path, []byte("0"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := DisableOOMKill(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "-1000" {
		t.Errorf("expected -1000, got %q", data)
	}
}

func TestDisableOOMKillMissing(t *testing.T) {
	if err := DisableOOMKill(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestUmask(t *testing.T) {
	old := Umask(0077)
	defer Umask(old)

	if got := Umask(0077); got != 0077 {
		t.Errorf("expected mask 0077, got %#o", got)
	}

	path := filepath.Join(t.TempDir(), "f")
	if err := os.WriteFile(path, nil, 0666); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600, got %s", info.Mode().Perm())
	}
}

// lowering priority needs no privileges, so check that every thread ends up at 19
func TestRenice(t *testing.T) {
	if err := Renice(TaskDir, 19); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := os.ReadDir(TaskDir)
	if err != nil {
		t.Skip("no procfs")
	}
	for _, e := range entries {
		stat, err := os.ReadFile(filepath.Join(TaskDir, e.Name(), "stat"))
		if err != nil {
			continue
		}
		// fields after the command name start at field 3, nice is field 19
		fields := strings.Fields(string(stat[bytes.LastIndexByte(stat, ')')+1:]))
		if len(fields) < 17 {
			t.Fatalf("short stat for task %s: %q", e.Name(), stat)
		}
		if fields[16] != "19" {
			t.Errorf("task %s: expected nice 19, got %s", e.Name(), fields[16])
		}
	}
}

func TestReniceMissingTaskDir(t *testing.T) {
	// falls back to the calling thread
	if err := Renice(filepath.Join(t.TempDir(), "task"), 19); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRedirectStdio(t *testing.T) {
	if os.Getenv("HARDEN_REDIRECT_TO") != "" {
		return
	}

	sink := filepath.Join(t.TempDir(), "sink")
	if err := os.WriteFile(sink, nil, 0600); err != nil {
		t.Fatal(err)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestRedirectStdioHelper")
	cmd.Env = append(os.Environ(), "HARDEN_REDIRECT_TO="+sink)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("helper failed: %v\n%s", err, stderr.String())
	}

	if strings.Contains(stdout.String(), "to-stdout") || strings.Contains(stderr.String(), "to-stderr") {
		t.Errorf("helper output leaked: stdout %q stderr %q", stdout.String(), stderr.String())
	}

	data, err := os.ReadFile(sink)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "to-stdout") || !strings.Contains(string(data), "to-stderr") {
		t.Errorf("expected both streams in sink, got %q", data)
	}
}

func TestRedirectStdioHelper(t *testing.T) {
	sink := os.Getenv("HARDEN_REDIRECT_TO")
	if sink == "" {
		return
	}
	if err := RedirectStdio(sink); err != nil {
		t.Fatal(err)
	}
	fmt.Fprintln(os.Stdout, "to-stdout")
	fmt.Fprintln(os.Stderr, "to-stderr")
}
