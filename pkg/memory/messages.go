package memory

import (
	"time"
)

type ChatRole uint8

const (
	UserRole ChatRole = iota
	ModelRole
	SystemRole
)

func (c ChatRole) String() string {
	s := "user"

	switch c {
	case ModelRole:
		s = "model"
	case SystemRole:
		s = "system"
	}

	return s
}

// Message is one role-tagged turn sent to or received from a model.
type Message struct {
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

func NewMessage(role ChatRole, text string) Message {
	return Message{
		Timestamp: time.Now(),
		Role:      role,
		Text:      text,
	}
}
