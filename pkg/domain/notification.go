package domain

// Notification is an entry in a role's notification list.
type Notification struct {
	ID     int64  `json:"id"`
	Text   string `json:"text"`
	Time   string `json:"time"`
	Unread bool   `json:"unread"`
}

// JustNow is the relative time label stamped on fresh logs and notifications.
const JustNow = "Just now"
