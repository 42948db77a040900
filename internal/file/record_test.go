package file

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractExtension(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"a.PDF", "pdf"},
		{"cartina.pdf", "pdf"},
		{"noext", ""},
		{"archive.tar.gz", "gz"},
		{"trailing.", ""},
		{".hidden", "hidden"},
		{"", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ExtractExtension(tc.name), "name=%q", tc.name)
	}
}

func TestNewFileRecordGeneratesSuffixedKey(t *testing.T) {
	rec := NewFileRecord("report.PDF")

	require.Equal(t, "report.PDF", rec.OriginalName)
	require.Equal(t, "pdf", rec.Extension)
	require.True(t, strings.HasSuffix(rec.StorageKey, ".pdf"), "key %q should carry the extension", rec.StorageKey)
	require.Zero(t, rec.ID, "ID is assigned by the store, not the factory")
}

func TestNewFileRecordWithoutExtension(t *testing.T) {
	rec := NewFileRecord("noext")

	require.Equal(t, "noext", rec.OriginalName)
	require.Empty(t, rec.Extension)
	require.NotContains(t, rec.StorageKey, ".")
}

func TestNewFileRecordFallsBackToKeyAsName(t *testing.T) {
	rec := NewFileRecord("")

	require.Equal(t, rec.StorageKey, rec.OriginalName)
	require.Empty(t, rec.Extension)
}

func TestNewFileRecordKeysAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		rec := NewFileRecord("a.txt")
		require.False(t, seen[rec.StorageKey], "duplicate storage key %q", rec.StorageKey)
		seen[rec.StorageKey] = true
	}
}
