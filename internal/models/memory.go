package models

import "time"

const (
	MinSpiciness     = 1
	MaxSpiciness     = 5
	DefaultSpiciness = 3

	MinLibido = 1
	MaxLibido = 10
)

// ClampSpiciness pins n into [MinSpiciness, MaxSpiciness].
func ClampSpiciness(n int) int {
	return clamp(n, MinSpiciness, MaxSpiciness)
}

func ClampLibido(n int) int {
	return clamp(n, MinLibido, MaxLibido)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

type Mood struct {
	Current     string    `json:"current"`
	Libido      int       `json:"libido"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// UserIdentity is the subset of the user record a session starts from.
type UserIdentity struct {
	ID        string `json:"id"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Identity  string `json:"identity,omitempty"`
}

// UserMemoryContext is the per-session view of a user used to personalize
// prompts. Its fields are persisted independently.
type UserMemoryContext struct {
	UserID           string            `json:"userId"`
	FirstName        string            `json:"firstName,omitempty"`
	Gender           string            `json:"gender,omitempty"`
	Identity         string            `json:"identity,omitempty"`
	SpicinessLevel   int               `json:"spicinessLevel"`
	Blueprint        *BlueprintProfile `json:"blueprint,omitempty"`
	PartnerID        string            `json:"partnerId,omitempty"`
	PartnerName      string            `json:"partnerName,omitempty"`
	PartnerLinked    bool              `json:"partnerLinked"`
	PartnerBlueprint *PartnerBlueprint `json:"partnerBlueprint,omitempty"`
	Mood             *Mood             `json:"mood,omitempty"`
}

// Clone returns a deep copy so snapshots never alias session state.
func (m UserMemoryContext) Clone() UserMemoryContext {
	out := m
	if m.Blueprint != nil {
		bp := *m.Blueprint
		out.Blueprint = &bp
	}
	if m.PartnerBlueprint != nil {
		pb := *m.PartnerBlueprint
		out.PartnerBlueprint = &pb
	}
	if m.Mood != nil {
		mood := *m.Mood
		out.Mood = &mood
	}
	return out
}
