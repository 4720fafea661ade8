package core

// SessionStore holds bounded conversation windows keyed by session id.
type SessionStore interface {
	GetOrCreate(sessionID string) (string, []Message)
	Append(sessionID string, human, assistant Message) error
	EvictIfOverCapacity() int
	History(sessionID string) ([]Message, error)
	Forget(sessionID string) bool
}
