package main

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("INVENTORY_TEST_KEY", "set")
	if got := getEnv("INVENTORY_TEST_KEY", "fallback"); got != "set" {
		t.Errorf("getEnv() = %q, want %q", got, "set")
	}
	if got := getEnv("INVENTORY_TEST_KEY_UNSET", "fallback"); got != "fallback" {
		t.Errorf("getEnv() = %q, want %q", got, "fallback")
	}
}
