package config

// BuiltinApps returns the default application registry.
//
// Users replace the whole list by defining apps in their config file; the
// order here is the dock order.
func BuiltinApps() []AppConfig {
	return []AppConfig{
		{
			ID:    "launchpad",
			Title: "Launchpad",
			Icon:  "launchpad",
		},
		{
			ID:      "notes",
			Title:   "Notes",
			Icon:    "notes",
			Desktop: true,
			Width:   860,
			Height:  500,
			Show:    true,
			Y:       -20,
		},
		{
			ID:        "browser",
			Title:     "Browser",
			Icon:      "browser",
			Desktop:   true,
			Width:     1024,
			MinWidth:  375,
			MinHeight: 200,
			X:         -20,
		},
		{
			ID:      "editor",
			Title:   "Editor",
			Icon:    "editor",
			Desktop: true,
			Width:   900,
			Height:  600,
			X:       80,
			Y:       -30,
		},
		{
			ID:          "camera",
			Title:       "Camera",
			Icon:        "camera",
			Desktop:     true,
			Width:       500 * 1.7,
			Height:      500 + 40,
			MinWidth:    350 * 1.7,
			MinHeight:   350 + 40,
			AspectRatio: 1.7,
			X:           -80,
			Y:           20,
		},
		{
			ID:      "terminal",
			Title:   "Terminal",
			Icon:    "terminal",
			Desktop: true,
			X:       20,
			Y:       -20,
		},
		{
			ID:    "source",
			Title: "Source Code",
			Icon:  "github",
			Link:  "https://github.com/1broseidon/deskwm",
		},
	}
}
