// README: Per-conversation state (slots, last asked slot, turn counter).
package session

import "smartdrive/internal/modules/slots"

type Session struct {
	Key       string
	Slots     slots.Slots
	LastAsked slots.Name
	Turns     int
}

func newSession(key string) Session {
	return Session{Key: key, Slots: slots.Default()}
}
