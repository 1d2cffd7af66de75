package room

import "errors"

// Errors surfaced to the UI layer for user-facing display. Backend
// unavailability is never surfaced: the fallback store absorbs it and
// it is only observable via logs.
var (
	// ErrRoomNotFound means the room id has no live record.
	ErrRoomNotFound = errors.New("room not found")

	// ErrRoomFull means the guest slot is already occupied.
	ErrRoomFull = errors.New("room is full")

	// ErrRoomNotAvailable means the room is not in the waiting state.
	ErrRoomNotAvailable = errors.New("room is not available")

	// ErrCreateFailed means id generation exhausted its retries.
	ErrCreateFailed = errors.New("could not create room")
)
