package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "61.0", cfg.APIVersion)
	assert.Equal(t, "https://login.salesforce.com", cfg.LoginURL)
	assert.Equal(t, ",", cfg.CSV.Delimiter)
	assert.Equal(t, "UTF-8", cfg.CSV.Encoding)
	assert.Empty(t, cfg.StagingDir)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_version: \"59.0\"\ncsv:\n  delimiter: \"|\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "59.0", cfg.APIVersion)
	assert.Equal(t, "|", cfg.CSV.Delimiter)
	// Unset values keep their defaults.
	assert.Equal(t, "https://login.salesforce.com", cfg.LoginURL)
	assert.Equal(t, "UTF-8", cfg.CSV.Encoding)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_version: [unterminated"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"Bad api version", "api_version: nope\n", "api_version"},
		{"Bad encoding", "csv:\n  encoding: ebcdic\n", "unsupported csv encoding"},
		{"Missing staging dir", "staging_dir: /definitely/not/here\n", "staging_dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}
