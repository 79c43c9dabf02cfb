package models

// Generation is the append-only telemetry record of one text-generation
// call. Written once per successful generation; never updated or deleted.
type Generation struct {
	ID           string   `gorm:"type:char(36);primaryKey" json:"id"`
	UserID       string   `gorm:"type:char(36);not null;index" json:"userId"`
	Prompt       string   `gorm:"type:text" json:"prompt"`
	Model        string   `gorm:"size:64" json:"model"`
	InputTokens  *int     `json:"inputTokens"`
	OutputTokens *int     `json:"outputTokens"`
	CostUsd      *float64 `json:"costUsd"`
	LatencyMs    int64    `json:"latencyMs"`
	CreatedAt    int64    `gorm:"not null" json:"createdAt"` // epoch ms
}

// TableName overrides the table name for Generation
func (Generation) TableName() string {
	return "generations"
}
