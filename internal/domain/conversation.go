package domain

import "time"

// Role identifies the author of a conversation entry.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// MaxHistory is the number of entries kept per session.
const MaxHistory = 10

// DefaultSessionID is used when a client does not send a conversation id.
const DefaultSessionID = "default"

// Message is a single entry in a conversation session.
type Message struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Intent is the response template selected for a visitor message.
type Intent string

const (
	IntentPrice          Intent = "price"
	IntentBenefits       Intent = "benefits"
	IntentMechanism      Intent = "mechanism"
	IntentGuarantee      Intent = "guarantee"
	IntentTestimonials   Intent = "testimonials"
	IntentBonus          Intent = "bonus"
	IntentPurchase       Intent = "purchase_process"
	IntentTiming         Intent = "timing"
	IntentHelp           Intent = "help"
	IntentPurchaseIntent Intent = "purchase_intent"
	IntentDefault        Intent = "default"
)
