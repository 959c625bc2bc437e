package entity

// Purpose scopes an OTP to one workflow. A code issued for one purpose never
// verifies for another.
type Purpose int16

const (
	PurposeUnknown Purpose = 0
	PurposeAdmin   Purpose = 1
	PurposeDoor    Purpose = 2
	PurposeReset   Purpose = 3
)

// Purposes lists every known purpose.
var Purposes = []Purpose{PurposeAdmin, PurposeDoor, PurposeReset}

func (p Purpose) String() string {
	switch p {
	case PurposeAdmin:
		return "ADMIN"
	case PurposeDoor:
		return "DOOR"
	case PurposeReset:
		return "RESET"
	default:
		return "UNKNOWN"
	}
}

// Reason explains why an OTP failed to verify.
type Reason string

const (
	ReasonNotFound Reason = "NOT_FOUND"
	ReasonExpired  Reason = "EXPIRED"
	ReasonMismatch Reason = "MISMATCH"
)
