// Package contact holds the minimal contact aggregate the ticket and
// kanban cores need: a name for card titles and an address for outbound
// messages. Contact management itself lives outside this core.
package contact

import (
	"context"
	"fmt"
)

type Contact struct {
	id        uint
	companyID uint
	name      string
	number    string
	isGroup   bool
}

func ReconstructContact(id, companyID uint, name, number string, isGroup bool) (*Contact, error) {
	if id == 0 {
		return nil, fmt.Errorf("contact ID cannot be zero")
	}
	if companyID == 0 {
		return nil, fmt.Errorf("company ID is required")
	}

	return &Contact{
		id:        id,
		companyID: companyID,
		name:      name,
		number:    number,
		isGroup:   isGroup,
	}, nil
}

func (c *Contact) ID() uint {
	return c.id
}

func (c *Contact) CompanyID() uint {
	return c.companyID
}

func (c *Contact) Name() string {
	return c.name
}

// Number is the contact's address on the messaging channel.
func (c *Contact) Number() string {
	return c.number
}

func (c *Contact) IsGroup() bool {
	return c.isGroup
}

type ContactRepository interface {
	GetByID(ctx context.Context, id, companyID uint) (*Contact, error)
}
