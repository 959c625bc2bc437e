package event

import "time"

const CredentialsRotatedDestination string = "access.credentials.rotated"

type CredentialsRotatedMessage struct {
	Trigger   string    `json:"trigger"`
	Total     int       `json:"total"`
	Rotated   int       `json:"rotated"`
	Skipped   int       `json:"skipped"`
	Failed    int       `json:"failed"`
	RotatedAt time.Time `json:"rotated_at"`
}
