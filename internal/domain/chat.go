package domain

// ChatRole is the author of a chat message.
type ChatRole string

const (
	ChatRoleSystem    ChatRole = "system"
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// IsValid returns true if the role is one of the known values.
func (r ChatRole) IsValid() bool {
	switch r {
	case ChatRoleSystem, ChatRoleUser, ChatRoleAssistant:
		return true
	}
	return false
}

// ChatMessage is one turn of a conversation with the digital twin.
type ChatMessage struct {
	Role    ChatRole
	Content string
}
