package domain

import "time"

// SavedCard is a masked reference to a previously used funding instrument.
// Only the last four digits and the holder name are ever retained; the full
// card number and CVV never reach the persisted store.
type SavedCard struct {
	ID        string    `json:"id"`
	LastFour  string    `json:"last_four"`
	Holder    string    `json:"holder"`
	CreatedAt time.Time `json:"created_at"`
}
