package event

import "time"

const EntryLoggedDestination string = "access.entry.logged"

type EntryLoggedMessage struct {
	RegNo     string    `json:"reg_no"`
	EnteredAt time.Time `json:"entered_at"`
}
