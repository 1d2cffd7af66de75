package dice

import (
	"encoding/json"
	"fmt"
)

// Payload is the shared game document exchanged through a room's
// gameState field. Each side writes only its own roll; the round
// resolves once both rolls are present.
type Payload struct {
	Round      int `json:"round"`
	HostRoll   int `json:"hostRoll,omitempty"`
	GuestRoll  int `json:"guestRoll,omitempty"`
	HostScore  int `json:"hostScore"`
	GuestScore int `json:"guestScore"`
}

// Complete reports whether both rolls for the current round are in.
func (p Payload) Complete() bool {
	return p.HostRoll != 0 && p.GuestRoll != 0
}

// NextRound resolves the finished round and starts a fresh one.
func (p Payload) NextRound() Payload {
	switch Resolve(p.HostRoll, p.GuestRoll) {
	case OutcomeWin:
		p.HostScore++
	case OutcomeLoss:
		p.GuestScore++
	}
	p.Round++
	p.HostRoll = 0
	p.GuestRoll = 0
	return p
}

// Encode serializes the payload for the room document.
func (p Payload) Encode() (json.RawMessage, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("dice: encode payload: %w", err)
	}
	return data, nil
}

// DecodePayload parses a room gameState document. An empty document
// yields the zero payload for round zero.
func DecodePayload(raw json.RawMessage) (Payload, error) {
	var p Payload
	if len(raw) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payload{}, fmt.Errorf("dice: decode payload: %w", err)
	}
	return p, nil
}
