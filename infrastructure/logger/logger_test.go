package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

type bufferCloser struct {
	sync.Mutex
	bytes.Buffer
	closed bool
}

func (b *bufferCloser) Write(p []byte) (int, error) {
	b.Lock()
	defer b.Unlock()
	return b.Buffer.Write(p)
}

func (b *bufferCloser) Close() error {
	b.Lock()
	defer b.Unlock()
	b.closed = true
	return nil
}

func TestBackendWritesByLevel(t *testing.T) {
	backend := NewBackendWithFlags(0)
	all := &bufferCloser{}
	errorsOnly := &bufferCloser{}
	if err := backend.AddLogWriter(all, LevelTrace); err != nil {
		t.Fatalf("TestBackendWritesByLevel: AddLogWriter unexpectedly failed: %+v", err)
	}
	if err := backend.AddLogWriter(errorsOnly, LevelError); err != nil {
		t.Fatalf("TestBackendWritesByLevel: AddLogWriter unexpectedly failed: %+v", err)
	}

	log := backend.Logger("TEST")
	log.Infof("dropped before Run")

	if err := backend.Run(); err != nil {
		t.Fatalf("TestBackendWritesByLevel: Run unexpectedly failed: %+v", err)
	}
	if err := backend.Run(); err == nil {
		t.Fatalf("TestBackendWritesByLevel: second Run unexpectedly succeeded")
	}
	if err := backend.AddLogWriter(&bufferCloser{}, LevelInfo); err == nil {
		t.Fatalf("TestBackendWritesByLevel: AddLogWriter unexpectedly succeeded on a running backend")
	}

	log.Debugf("filtered by the logger level")
	log.Infof("edge %s stored", "V2VParent")
	log.Errorf("something failed")
	backend.Close()

	allOutput := all.String()
	if strings.Contains(allOutput, "dropped before Run") || strings.Contains(allOutput, "filtered") {
		t.Fatalf("TestBackendWritesByLevel: unexpected output %q", allOutput)
	}
	if !strings.Contains(allOutput, "[INF] TEST: edge V2VParent stored\n") {
		t.Fatalf("TestBackendWritesByLevel: missing info line in %q", allOutput)
	}
	if !strings.Contains(allOutput, "[ERR] TEST: something failed") {
		t.Fatalf("TestBackendWritesByLevel: missing error line in %q", allOutput)
	}
	if strings.Contains(errorsOnly.String(), "INF") || !strings.Contains(errorsOnly.String(), "ERR") {
		t.Fatalf("TestBackendWritesByLevel: unexpected error writer output %q", errorsOnly.String())
	}
	if !all.closed || !errorsOnly.closed {
		t.Fatalf("TestBackendWritesByLevel: Close didn't close the writers")
	}

	// Writing after Close must not panic.
	log.Errorf("after close")
}

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		ok       bool
	}{
		{"trace", LevelTrace, true},
		{"DBG", LevelDebug, true},
		{"Info", LevelInfo, true},
		{"wrn", LevelWarn, true},
		{"error", LevelError, true},
		{"critical", LevelCritical, true},
		{"off", LevelOff, true},
		{"verbose", LevelInfo, false},
	}
	for _, test := range tests {
		level, ok := LevelFromString(test.input)
		if level != test.expected || ok != test.ok {
			t.Errorf("TestLevelFromString: %s: got (%s, %t), want (%s, %t)",
				test.input, level, ok, test.expected, test.ok)
		}
	}
	if Level(100).String() != "OFF" {
		t.Errorf("TestLevelFromString: out of range level isn't OFF")
	}
}

func TestParseAndSetLogLevels(t *testing.T) {
	edgeLog := RegisterSubSystem("EDGS")
	headerLog := RegisterSubSystem("HDRS")
	if RegisterSubSystem("EDGS") != edgeLog {
		t.Fatalf("TestParseAndSetLogLevels: RegisterSubSystem returned a new logger for an existing subsystem")
	}

	if err := ParseAndSetLogLevels("debug"); err != nil {
		t.Fatalf("TestParseAndSetLogLevels: unexpected error: %+v", err)
	}
	if edgeLog.Level() != LevelDebug || headerLog.Level() != LevelDebug {
		t.Fatalf("TestParseAndSetLogLevels: levels weren't set for every subsystem")
	}

	if err := ParseAndSetLogLevels("EDGS=trace,HDRS=warn"); err != nil {
		t.Fatalf("TestParseAndSetLogLevels: unexpected error: %+v", err)
	}
	if edgeLog.Level() != LevelTrace || headerLog.Level() != LevelWarn {
		t.Fatalf("TestParseAndSetLogLevels: per subsystem levels weren't set")
	}

	for _, invalid := range []string{"loud", "EDGS=loud", "NOPE=info", "EDGS"} {
		if err := ParseAndSetLogLevels(invalid + ",HDRS=info"); err == nil {
			t.Fatalf("TestParseAndSetLogLevels: %s unexpectedly succeeded", invalid)
		}
	}
}
