package domain

import "time"

// Match is created exactly once per unordered profile pair.
// PK: pair_id — the canonical "min#max" key, which is what makes the
// conditional insert race-free. ProfileA < ProfileB always.
type Match struct {
	PairID    string    `json:"-" dynamodbav:"pair_id"`
	MatchID   string    `json:"id" dynamodbav:"match_id"`
	ProfileA  string    `json:"profile_a" dynamodbav:"profile_a"`
	ProfileB  string    `json:"profile_b" dynamodbav:"profile_b"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}

// Other returns the counterpart of profileID in the pair.
func (m *Match) Other(profileID string) string {
	if m.ProfileA == profileID {
		return m.ProfileB
	}
	return m.ProfileA
}

// HasParticipant reports whether profileID is one of the pair.
func (m *Match) HasParticipant(profileID string) bool {
	return m.ProfileA == profileID || m.ProfileB == profileID
}

// MatchWithProfile pairs a match with the counterpart profile for display.
type MatchWithProfile struct {
	Match *Match   `json:"match"`
	Other *Profile `json:"other"`
}
