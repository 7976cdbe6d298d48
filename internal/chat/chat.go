// Package chat defines the transport boundary the game core speaks to. The
// core never assumes a specific chat platform: it posts text to a Channel,
// edits countdown messages through EditableMessage, whispers hole cards over
// a PlayerChannel, and consumes a stream of inbound Messages tagged with the
// sender.
package chat

// Message is a single inbound chat event
type Message struct {
	SenderID  string
	Text      string
	ChannelID string
}

// EditableMessage is a posted message that can be re-rendered in place,
// used for the once-per-second countdown prompt.
type EditableMessage interface {
	Update(text string)
}

// Channel is where the game is played: board reveals, prompts, outcomes
type Channel interface {
	Send(text string) EditableMessage
}

// PlayerChannel delivers a private message to one player (hole cards)
type PlayerChannel interface {
	Send(text string)
}
