package file

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWhitelistCaseInsensitive(t *testing.T) {
	w := NewWhitelist([]string{"PDF", "txt"})

	require.True(t, w.Allowed("pdf"))
	require.True(t, w.Allowed("PDF"))
	require.True(t, w.Allowed("Txt"))
	require.False(t, w.Allowed("exe"))
}

func TestWhitelistNeverAllowsEmptyExtension(t *testing.T) {
	// Even an explicit empty entry is dropped: extensionless files are
	// always rejected.
	w := NewWhitelist([]string{"pdf", "", "  "})

	require.False(t, w.Allowed(""))
	require.True(t, w.Allowed("pdf"))
}
