package mdalconfig

import "testing"

func TestDriverPathUsesEnv(t *testing.T) {
	t.Setenv("MDAL_DRIVER_PATH", "/opt/mdal/drivers")
	if got := DriverPath(); got != "/opt/mdal/drivers" {
		t.Fatalf("DriverPath() = %q, want /opt/mdal/drivers", got)
	}
}

func TestDebugDefaultsFalse(t *testing.T) {
	t.Setenv("MDAL_DEBUG", "")
	if Debug() {
		t.Fatalf("Debug() = true, want false when empty")
	}
}

func TestDebugParsesTruthy(t *testing.T) {
	t.Setenv("MDAL_DEBUG", "true")
	if !Debug() {
		t.Fatalf("Debug() = false, want true")
	}
}
