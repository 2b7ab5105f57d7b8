package navigation

// Visible reports whether entry may be shown to a viewer.
func Visible(entry Entry, isAdmin bool) bool {
	return !entry.AdminOnly || isAdmin
}

// VisibleTo returns the entries a viewer may see, in display order.
func (c *Config) VisibleTo(isAdmin bool) []Entry {
	return c.Filter(func(entry Entry) bool {
		return Visible(entry, isAdmin)
	})
}

// Filter returns the entries for which keep returns true, in display order.
func (c *Config) Filter(keep func(Entry) bool) []Entry {
	out := make([]Entry, 0, c.Len())
	for _, entry := range c.All() {
		if keep(entry) {
			out = append(out, entry)
		}
	}
	return out
}
