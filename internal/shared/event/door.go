package event

import "time"

const DoorIssuedDestination string = "access.door.issued"
const DoorUnlockedDestination string = "access.door.unlocked"

// DoorIssuedMessage never carries the code itself.
type DoorIssuedMessage struct {
	OTPID      int64     `json:"otp_id"`
	IssuedBy   string    `json:"issued_by"`
	ExpiresAt  time.Time `json:"expires_at"`
	Recipients int       `json:"recipients"`
}

type DoorUnlockedMessage struct {
	OTPID      int64     `json:"otp_id"`
	UnlockedAt time.Time `json:"unlocked_at"`
}
