package group

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateGroupRequest represents the request to create a new group
type CreateGroupRequest struct {
	Name         string   `json:"groupName" validate:"required,max=100"`
	Participants []string `json:"participants" validate:"required,min=1,dive,required"`
}

// GroupResponse represents the response for a group
type GroupResponse struct {
	ID               string          `json:"groupId"`
	Name             string          `json:"groupName"`
	Participants     []string        `json:"participants"`
	ParticipantCount int             `json:"participantCount"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	CreatedAt        string          `json:"createdAt"`
}

// GroupWithTotal pairs a group with the sum of its expense amounts
type GroupWithTotal struct {
	Group        *Group
	TotalExpense decimal.Decimal
}

// ToResponse converts a GroupWithTotal to a GroupResponse DTO
func (g *GroupWithTotal) ToResponse() *GroupResponse {
	return &GroupResponse{
		ID:               g.Group.ID,
		Name:             g.Group.Name,
		Participants:     g.Group.Participants,
		ParticipantCount: len(g.Group.Participants),
		TotalExpense:     g.TotalExpense,
		CreatedAt:        g.Group.CreatedAt.UTC().Format(time.RFC3339),
	}
}
