package domain

import "time"

const (
	SwipeLike = "like"
	SwipePass = "pass"
)

// Swipe records one directional action. PK: actor_id, SK: target_id —
// re-swiping the same target overwrites rather than duplicates.
type Swipe struct {
	ActorID   string    `json:"actor_id" dynamodbav:"actor_id"`
	TargetID  string    `json:"target_id" dynamodbav:"target_id"`
	Action    string    `json:"action" dynamodbav:"action"` // "like" | "pass"
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

type SubmitSwipeRequest struct {
	TargetID string `json:"target_id" validate:"required"`
	Action   string `json:"action" validate:"required,oneof=like pass"`
}

// SwipeResult reports whether the swipe completed a mutual like.
type SwipeResult struct {
	Matched bool   `json:"matched"`
	MatchID string `json:"match_id,omitempty"`
}
