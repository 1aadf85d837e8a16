package domain

import "time"

// Storage keys in the durable key-value store. Fixed names, matching
// what the UI layer expects to find after a reload.
const (
	StorageKeyUser         = "user"
	StorageKeyChatSessions = "chatSessions"
)

// User is the current account for the session. FavoriteBooks holds book
// ids in insertion order; membership is what matters, but the order is
// kept for display.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Avatar        string    `json:"avatar"`
	FavoriteBooks []string  `json:"favoriteBooks"`
	JoinDate      time.Time `json:"joinDate"`
}
