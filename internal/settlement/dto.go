package settlement

// SettlementResponse represents the response for a settlement
type SettlementResponse struct {
	ID               string `json:"id"`
	GroupID          string `json:"group_id"`
	SenderID         string `json:"sender_id"`
	SenderUsername   string `json:"sender_username,omitempty"`
	ReceiverID       string `json:"receiver_id"`
	ReceiverUsername string `json:"receiver_username,omitempty"`
	Amount           string `json:"amount"`
}

// ToResponse converts a Settlement model to a SettlementResponse DTO
func (s *Settlement) ToResponse() *SettlementResponse {
	return &SettlementResponse{
		ID:               s.ID,
		GroupID:          s.GroupID,
		SenderID:         s.SenderID,
		SenderUsername:   s.SenderUsername,
		ReceiverID:       s.ReceiverID,
		ReceiverUsername: s.ReceiverUsername,
		Amount:           s.Amount.StringFixed(2),
	}
}
