package org

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("SF_USERNAME", "user@example.com")
	t.Setenv("SF_PASSWORD", "secret")
	t.Setenv("SF_TOKEN", "TOKEN")
	t.Setenv("SF_LOGIN_URL", "")

	o, err := FromEnv("https://test.salesforce.com")
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", o.Username)
	assert.Equal(t, "https://test.salesforce.com", o.LoginURL, "falls back to the configured default")
	assert.Equal(t, "secretTOKEN", o.LoginPassword())
}

func TestFromEnv_EnvLoginURLWins(t *testing.T) {
	t.Setenv("SF_USERNAME", "user@example.com")
	t.Setenv("SF_PASSWORD", "secret")
	t.Setenv("SF_TOKEN", "")
	t.Setenv("SF_LOGIN_URL", "https://custom.my.salesforce.com")

	o, err := FromEnv("https://login.salesforce.com")
	require.NoError(t, err)
	assert.Equal(t, "https://custom.my.salesforce.com", o.LoginURL)
}

func TestFromEnv_MissingCredentials(t *testing.T) {
	t.Setenv("SF_USERNAME", "")
	t.Setenv("SF_PASSWORD", "secret")
	t.Setenv("SF_TOKEN", "")
	t.Setenv("SF_LOGIN_URL", "")

	_, err := FromEnv("https://login.salesforce.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SF_USERNAME")
}

func TestLoginPassword_NoToken(t *testing.T) {
	o := &Org{Username: "u", Password: "secret"}
	assert.Equal(t, "secret", o.LoginPassword())
}
