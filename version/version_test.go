package version

import "testing"

func TestCheckAppBuild(t *testing.T) {
	tests := []struct {
		build    string
		expected string
	}{
		{"", ""},
		{"abc-123", "abc-123"},
		{"abc.123", ""},
		{"abc 123", ""},
	}
	for _, test := range tests {
		if got := checkAppBuild(test.build); got != test.expected {
			t.Fatalf("TestCheckAppBuild: checkAppBuild(%q) = %q, want %q", test.build, got, test.expected)
		}
	}
	if Version() != "0.1.0" {
		t.Fatalf("TestCheckAppBuild: unexpected version %s", Version())
	}
}
