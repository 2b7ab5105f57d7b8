package navigation

import "sync"

// PlaceholderURL marks an entry whose route does not exist yet. It is kept
// as an ordinary string; nothing treats it specially.
const PlaceholderURL = "#"

// DefaultEntries returns the built-in dashboard sidebar.
func DefaultEntries() []Entry {
	return []Entry{
		{
			ID:        "dashboard",
			Title:     "仪表盘",
			Icon:      "bi-speedometer2",
			URL:       "/dashboard",
			AdminOnly: false,
		},
		{
			ID:        "user-management",
			Title:     "用户管理",
			Icon:      "bi-people",
			URL:       PlaceholderURL,
			AdminOnly: true,
		},
		{
			ID:        "snake-game",
			Title:     "贪吃蛇游戏",
			Icon:      "bi-controller",
			URL:       "/snake-game",
			AdminOnly: false,
		},
	}
}

var defaultConfig = sync.OnceValue(func() *Config {
	return MustNew(DefaultEntries()...)
})

// Default returns the Config built from DefaultEntries. It is built on first
// use and the same instance is returned afterwards.
func Default() *Config {
	return defaultConfig()
}
