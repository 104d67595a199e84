package ctxzip

import "github.com/youssefsiam38/ctxzip/types"

// BoundaryType identifies a boundary policy.
type BoundaryType string

const (
	// BoundarySinceLastText starts the window just after the most recent
	// assistant or user message with text content. This is the default.
	BoundarySinceLastText BoundaryType = "since-last-assistant-or-user-text"

	// BoundaryEntireConversation starts the window at the beginning.
	BoundaryEntireConversation BoundaryType = "entire-conversation"

	// BoundaryFirstN keeps the first Count messages intact.
	BoundaryFirstN BoundaryType = "first-n-messages"
)

// Boundary controls which prefix of a conversation is exempt from
// compaction. The zero value behaves like SinceLastAssistantOrUserText.
type Boundary struct {
	Type  BoundaryType
	Count int
}

// SinceLastAssistantOrUserText returns the default boundary.
func SinceLastAssistantOrUserText() Boundary {
	return Boundary{Type: BoundarySinceLastText}
}

// EntireConversation returns a boundary covering the whole conversation.
func EntireConversation() Boundary {
	return Boundary{Type: BoundaryEntireConversation}
}

// FirstNMessages returns a boundary that keeps the first count messages
// intact.
func FirstNMessages(count int) Boundary {
	return Boundary{Type: BoundaryFirstN, Count: count}
}

// DetectWindow determines the half-open [start, endExclusive) index range
// eligible for compaction. The final message is never part of the window;
// conversations of one message or fewer yield an empty window.
func DetectWindow(messages []types.Message, boundary Boundary) (start, endExclusive int) {
	if len(messages) <= 1 {
		return 0, 0
	}
	return detectWindowStart(messages, boundary), len(messages) - 1
}

// detectWindowStart computes the starting index of the compaction window.
func detectWindowStart(messages []types.Message, boundary Boundary) int {
	switch boundary.Type {
	case BoundaryFirstN:
		n := boundary.Count
		if n < 0 {
			n = 0
		}
		if upper := len(messages) - 1; n > upper {
			n = upper
		}
		return n

	case BoundaryEntireConversation:
		return 0
	}

	// Default: since-last-assistant-or-user-text. Scan backward, skipping
	// the final message, for the most recent assistant/user text message.
	for i := len(messages) - 2; i >= 0; i-- {
		msg := messages[i]
		if (msg.Role == types.RoleAssistant || msg.Role == types.RoleUser) && msg.Content.HasText() {
			return i + 1
		}
	}
	return 0
}
