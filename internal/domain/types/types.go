// Package types contains common types used across the application
package types

// Entry represents a leaderboard entry
type Entry struct {
	Rank  int    `json:"rank"`
	ID    string `json:"id"`
	Title string `json:"title"`
	Score int64  `json:"score"`
}
