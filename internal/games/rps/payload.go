package rps

import (
	"encoding/json"
	"fmt"
)

// Payload is the shared game document exchanged through a room's
// gameState field. Throws stay hidden from the opponent's UI until both
// are present.
type Payload struct {
	Round      int    `json:"round"`
	HostMove   Choice `json:"hostMove,omitempty"`
	GuestMove  Choice `json:"guestMove,omitempty"`
	HostScore  int    `json:"hostScore"`
	GuestScore int    `json:"guestScore"`
}

// Complete reports whether both throws for the current round are in.
func (p Payload) Complete() bool {
	return p.HostMove != "" && p.GuestMove != ""
}

// NextRound resolves the finished round and starts a fresh one.
func (p Payload) NextRound() Payload {
	switch Resolve(p.HostMove, p.GuestMove) {
	case OutcomeWin:
		p.HostScore++
	case OutcomeLoss:
		p.GuestScore++
	}
	p.Round++
	p.HostMove = ""
	p.GuestMove = ""
	return p
}

// Encode serializes the payload for the room document.
func (p Payload) Encode() (json.RawMessage, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("rps: encode payload: %w", err)
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
		return Payload{}, fmt.Errorf("rps: decode payload: %w", err)
	}
	return p, nil
}
