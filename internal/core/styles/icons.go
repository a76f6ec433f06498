package styles

var (
	IconScene  = "¶"
	IconAnchor = "➤"
)

// Notification icons
var (
	IconNotifyInfo    = "ℹ"
	IconNotifyWarning = "⚠"
	IconNotifyError   = "✗"
)
