package domain

import "time"

// EventType names a mutation observers can subscribe to.
type EventType string

const (
	EventRoleGranted          EventType = "ROLE_GRANTED"
	EventRoleRevoked          EventType = "ROLE_REVOKED"
	EventOwnershipTransferred EventType = "OWNERSHIP_TRANSFERRED"
	EventAccountCreated       EventType = "ACCOUNT_CREATED"
	EventAccountUpdated       EventType = "ACCOUNT_UPDATED"
	EventAccountStatusChanged EventType = "ACCOUNT_STATUS_CHANGED"
	EventTransactionRecorded  EventType = "TRANSACTION_RECORDED"
)

// Event is emitted after a mutation has been applied. Only the fields relevant
// to Type are populated.
type Event struct {
	Type        EventType
	Actor       Principal
	OccurredAt  time.Time
	Target      Principal          // Role and ownership events
	Role        Role               // Role events
	Account     *Account           // Account events
	Transaction *TransactionRecord // Transaction events
	Balances    map[int64]int64    // Post-transaction balances of the touched accounts
}
