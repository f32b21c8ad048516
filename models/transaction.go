package models

import (
	"time"
)

// Типы транзакций
const (
	TransactionTypeCredit = "credit"
	TransactionTypeDebit  = "debit"
)

type Transaction struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	Amount        float64   `gorm:"column:amount;not null" json:"amount"`
	Type          string    `gorm:"column:type;not null;size:20" json:"type"` // credit, debit
	Reason        string    `gorm:"column:reason;size:255" json:"reason"`
	TransactionID string    `gorm:"column:transaction_id;not null;size:100" json:"transaction_id"`
	UNQID         string    `gorm:"column:unqid;size:40" json:"unqid"`
	CreatedAt     time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
