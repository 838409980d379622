package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction states as reported by the transactions service
const (
	TransactionPending    = "PENDIENTE"
	TransactionNormal     = "NORMAL"
	TransactionSuspicious = "SOSPECHOSA"
	TransactionBlocked    = "BLOQUEADA"
)

// Transaction is a single money movement between two accounts.
// Field names on the wire follow the transactions service schema.
type Transaction struct {
	ID          int64           `json:"id"`
	FromAccount string          `json:"cuenta_origen"`
	ToAccount   string          `json:"cuenta_destino"`
	Amount      decimal.Decimal `json:"monto"`
	Location    string          `json:"ubicacion"`
	Time        time.Time       `json:"hora"`
	Status      string          `json:"status"`
}

// TransactionCreate is the payload for creating a new transaction
type TransactionCreate struct {
	FromAccount string          `json:"cuenta_origen"`
	ToAccount   string          `json:"cuenta_destino"`
	Amount      decimal.Decimal `json:"monto"`
	Location    string          `json:"ubicacion"`
}

// Incoming reports whether tx credits the given account
func (t Transaction) Incoming(account string) bool {
	return t.ToAccount == account
}
