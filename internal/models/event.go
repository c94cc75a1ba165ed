package models

// RecipeEvent is published to Kafka on recipe lifecycle changes.
type RecipeEvent struct {
	EventID   string `json:"event_id"`  // Unique event id
	Operation string `json:"operation"` // "created", "updated" or "deleted"
	RecipeID  string `json:"recipe_id"` // Affected recipe
	UserID    string `json:"user_id"`   // Acting user
	Timestamp int64  `json:"timestamp"` // Unix time of the event
}
