package model

import "time"

// Interaction pairs an entry's user utterance with the response it
// produced. It is derived at insertion time, never constructed from a
// raw payload.
type Interaction struct {
	ID        string    `json:"_id"`
	Date      time.Time `json:"date"`
	Utterance string    `json:"utterance"`
	Response  string    `json:"response"`
}

// NewInteraction derives an interaction from a validated entry and the
// response text. The id and date mirror the source entry.
func NewInteraction(e *Entry, response string) *Interaction {
	return &Interaction{
		ID:        e.ID,
		Date:      e.CreatedOn,
		Utterance: e.Prompt(),
		Response:  response,
	}
}
