package logging

import (
	"os"
	"testing"
)

func TestDebugEnabled(t *testing.T) {
	// Test with FT_DEBUG not set
	os.Unsetenv("FT_DEBUG")
	if DebugEnabled() {
		t.Error("DebugEnabled() should return false when FT_DEBUG is not set")
	}

	// Test with FT_DEBUG set to empty string
	os.Setenv("FT_DEBUG", "")
	if DebugEnabled() {
		t.Error("DebugEnabled() should return false when FT_DEBUG is empty")
	}

	// Test with FT_DEBUG set to any value
	os.Setenv("FT_DEBUG", "1")
	if !DebugEnabled() {
		t.Error("DebugEnabled() should return true when FT_DEBUG is set")
	}

	// Clean up
	os.Unsetenv("FT_DEBUG")
}

func TestDebugf(t *testing.T) {
	// We can't easily capture stdout in tests, so we just ensure it doesn't crash
	os.Unsetenv("FT_DEBUG")
	Debugf("This should not appear: %s", "test")

	os.Setenv("FT_DEBUG", "1")
	Debugf("This should appear: %s", "test")

	os.Unsetenv("FT_DEBUG")
}

func TestDebugln(t *testing.T) {
	os.Unsetenv("FT_DEBUG")
	Debugln("This should not appear")

	os.Setenv("FT_DEBUG", "1")
	Debugln("This should appear")

	os.Unsetenv("FT_DEBUG")
}
