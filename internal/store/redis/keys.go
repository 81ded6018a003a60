package redis

const (
	// KeySession holds the serialized session record.
	KeySession = "dakiya:session"
	// KeyAccessToken and KeyRefreshToken hold the bearer tokens.
	KeyAccessToken  = "dakiya:token:access"
	KeyRefreshToken = "dakiya:token:refresh"
	// KeyBookmarks is the set of bookmarked listing IDs.
	KeyBookmarks = "dakiya:bookmarks"
	// KeySidebarCollapsed is the sidebar-collapse UI preference.
	KeySidebarCollapsed = "dakiya:prefs:sidebar"
)
