package domain

import "time"

// Message belongs to a match. PK: match_id, SK: seq — seq is assigned
// monotonically and gaplessly per match and is the authoritative display
// order.
type Message struct {
	MatchID   string    `json:"match_id" dynamodbav:"match_id"`
	Seq       int64     `json:"seq" dynamodbav:"seq"`
	MessageID string    `json:"id" dynamodbav:"message_id"`
	SenderID  string    `json:"sender_id" dynamodbav:"sender_id"`
	Text      string    `json:"text" dynamodbav:"text"`
	SentAt    time.Time `json:"sent_at" dynamodbav:"sent_at"`
}

type SendMessageRequest struct {
	Text string `json:"text" validate:"required"`
}
