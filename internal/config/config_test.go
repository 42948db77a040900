package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseWhitelist(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{"pdf,txt", []string{"pdf", "txt"}},
		{" PDF , Txt ", []string{"pdf", "txt"}},
		{"pdf,,txt,", []string{"pdf", "txt"}},
		{"", nil},
		{" , ", nil},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, parseWhitelist(tc.raw), "raw=%q", tc.raw)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	require.NotEmpty(t, cfg.Port)
	require.NotEmpty(t, cfg.ExtensionWhitelist)
	require.Positive(t, cfg.UploadWorkers)
	require.Positive(t, cfg.UploadQueueCapacity)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("FILE_EXTENSION_WHITELIST", "PDF, txt")
	t.Setenv("UPLOAD_WORKERS", "9")
	t.Setenv("UPLOAD_QUEUE_CAPACITY", "not-a-number")

	cfg := Load()

	require.Equal(t, []string{"pdf", "txt"}, cfg.ExtensionWhitelist)
	require.Equal(t, 9, cfg.UploadWorkers)
	require.Equal(t, 64, cfg.UploadQueueCapacity, "invalid value falls back to default")
}
