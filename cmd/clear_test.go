package cmd

import (
	"strings"
	"testing"
)

func TestClearRequiresConfirmation(t *testing.T) {
	err := clearCmd.RunE(clearCmd, nil)
	if err == nil {
		t.Fatal("RunE() error = nil, want confirmation error")
	}
	if !strings.Contains(err.Error(), "--yes") {
		t.Errorf("error = %v, want mention of --yes", err)
	}
}

func TestClearRequiresDatabase(t *testing.T) {
	t.Setenv("SNAPSOLVE_DATABASE_URL", "")

	if err := clearCmd.Flags().Set("yes", "true"); err != nil {
		t.Fatal(err)
	}
	defer clearCmd.Flags().Set("yes", "false")

	err := clearCmd.RunE(clearCmd, nil)
	if err == nil || !strings.Contains(err.Error(), "no database configured") {
		t.Errorf("error = %v, want no-database error", err)
	}
}
