package finance

import (
	"time"

	"github.com/google/uuid"
)

// ClientStatus marks whether a client is still billed
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
)

// Client is a billed party. The export pipeline only reads clients.
type Client struct {
	ID        uuid.UUID
	Name      string
	Company   string
	Email     string
	Status    ClientStatus
	CreatedAt time.Time
}

// Ref returns the snapshot stored on invoices
func (c *Client) Ref() ClientRef {
	return ClientRef{ID: c.ID, Name: c.Name, Company: c.Company, Email: c.Email}
}
