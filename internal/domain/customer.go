package domain

import "github.com/google/uuid"

// Customer is a single customer record.
type Customer struct {
	ID          uuid.UUID     `json:"id"`
	Version     int           `json:"version"`
	Name        string        `json:"name"`
	CreatedDate LocalDateTime `json:"createdDate"`
	UpdatedDate LocalDateTime `json:"updatedDate"`
}

// CustomerPatch carries a partial update. A nil field is left untouched.
type CustomerPatch struct {
	Name *string `json:"name"`
}

// ApplyUpdate overwrites every mutable field, empty values included.
func (c *Customer) ApplyUpdate(src Customer) {
	c.Name = src.Name
}

func (c *Customer) ApplyPatch(p CustomerPatch) {
	if p.Name != nil {
		c.Name = *p.Name
	}
}
