package group

import (
	"slices"
	"time"
)

// Group is a named set of participants who share expenses
type Group struct {
	ID           string    `json:"groupId"`
	Name         string    `json:"groupName"`
	Participants []string  `json:"participants"` // Order matters for equal splits
	CreatedAt    time.Time `json:"createdAt"`
}

// HasParticipant reports whether id is a declared participant (case-sensitive)
func (g *Group) HasParticipant(id string) bool {
	return slices.Contains(g.Participants, id)
}

// Clone returns a deep copy of the group
func (g *Group) Clone() *Group {
	c := *g
	c.Participants = slices.Clone(g.Participants)
	return &c
}
