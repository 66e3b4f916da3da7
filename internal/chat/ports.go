package chat

import (
	"context"
	"time"

	"github.com/selimbz/partsbot/internal/catalog"
)

type State string

const (
	StateWelcome          State = "welcome"
	StateAskVehicle       State = "ask_vehicle"
	StateConfirmVehicle   State = "confirm_vehicle"
	StateAskSearchType    State = "ask_search_type"
	StateAskReference     State = "ask_reference"
	StateConfirmReference State = "confirm_reference"
	StateAskPartName      State = "ask_part_name"
	StateConfirmPart      State = "confirm_part"
	StateAskOrder         State = "ask_order"
	StateAskContact       State = "ask_contact"
	StateAskEmail         State = "ask_email"
	StateCompleteOrder    State = "complete_order"
)

type SearchMode string

const (
	SearchByReference SearchMode = "reference"
	SearchByPartName  SearchMode = "part_name"
)

// Pending stages a tentative resolution until the user confirms it.
type Pending struct {
	Brand     string
	Model     string
	Year      int
	PartName  string
	Reference string
	Product   *catalog.Entry
}

// Session is one user conversation. It is value-copied out of the
// store and committed back, so a failed turn never half-mutates it.
type Session struct {
	ID             string
	ConversationID string
	State          State

	Brand      string
	Model      string
	Year       int
	PartName   string
	Reference  string
	SearchMode SearchMode

	Pending Pending

	Phone string
	Email string
	Found bool
}

// Sessions is the in-memory session store, keyed by the caller-supplied
// session id. Get creates lazily.
type Sessions interface {
	Get(id string) Session
	Put(id string, s Session)
}

type ConversationSummary struct {
	ConversationID string     `json:"conversation_id"`
	SessionID      string     `json:"session_id"`
	Brand          string     `json:"brand,omitempty"`
	Model          string     `json:"model,omitempty"`
	Year           int        `json:"year,omitempty"`
	SparePartName  string     `json:"spare_part_name,omitempty"`
	Reference      string     `json:"reference,omitempty"`
	Phone          string     `json:"user_phone,omitempty"`
	Email          string     `json:"user_email,omitempty"`
	Found          bool       `json:"found"`
	MessageCount   int        `json:"message_count"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

type StoredMessage struct {
	ID             int64     `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

type CountRow struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type Stats struct {
	TotalConversations int        `json:"total_conversations"`
	TotalMessages      int        `json:"total_messages"`
	ConversationsToday int        `json:"conversations_today"`
	Leads              int        `json:"leads"`
	TopBrands          []CountRow `json:"top_brands"`
	TopParts           []CountRow `json:"top_parts"`
}

// Repo is the durable side of a conversation: the per-conversation row
// of resolved entities plus the message transcript. Writes must be
// durable before returning; the engine logs failures and carries on.
type Repo interface {
	UpsertConversation(ctx context.Context, s Session) error
	AppendMessage(ctx context.Context, conversationID, role, content string) error

	ListConversations(ctx context.Context) ([]ConversationSummary, error)
	GetConversation(ctx context.Context, conversationID string) (*ConversationSummary, []StoredMessage, error)
	Stats(ctx context.Context) (*Stats, error)
}

// Lead is the handoff payload sent when an order completes.
type Lead struct {
	ConversationID string `json:"conversation_id"`
	Brand          string `json:"brand,omitempty"`
	Model          string `json:"model,omitempty"`
	Year           int    `json:"year,omitempty"`
	PartName       string `json:"spare_part_name,omitempty"`
	Reference      string `json:"reference,omitempty"`
	Phone          string `json:"phone"`
	Email          string `json:"email,omitempty"`
	Found          bool   `json:"found"`
}

type LeadNotifier interface {
	NotifyLead(ctx context.Context, lead Lead) error
}
