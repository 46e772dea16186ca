package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["dbcheck"])
}

func TestDBCheck_FailsWithoutSettings(t *testing.T) {
	for _, k := range []string{"DATABASE_URL", "SECRET_KEY", "ALGORITHM", "ACCESS_TOKEN_EXPIRE_MINUTES", "OPENAI_API_KEY", "OPENWEATHER_API_KEY"} {
		t.Setenv(k, "")
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"dbcheck", "--env-file", filepath.Join(t.TempDir(), "missing.env")})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestServe_FailsOnBadConfig(t *testing.T) {
	rootCmd.SetArgs([]string{"serve", "--config", filepath.Join(t.TempDir(), "absent.yaml")})
	assert.Error(t, rootCmd.Execute())
}
