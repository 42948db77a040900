package file

import "strings"

// Whitelist is the set of permitted file extensions. Lookups are
// case-insensitive. The empty extension is never a member: a filename without
// a dot is always rejected, regardless of configuration.
type Whitelist map[string]struct{}

// NewWhitelist builds a Whitelist from the configured extension list,
// normalizing entries to lowercase and dropping empties.
func NewWhitelist(extensions []string) Whitelist {
	w := make(Whitelist, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		w[ext] = struct{}{}
	}
	return w
}

// Allowed reports whether ext is a member of the whitelist.
func (w Whitelist) Allowed(ext string) bool {
	_, ok := w[strings.ToLower(ext)]
	return ok
}
