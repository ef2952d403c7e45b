package inventory

import (
	"github.com/zunayn/carpet-auction/internal/domain/carpet"
	"github.com/zunayn/carpet-auction/internal/domain/shared"
)

// Admin is a privileged role scoped to exactly one inventory. The reference is
// non-owning: the inventory holds admins in its registry, the admin only knows
// which catalog it manages.
type Admin struct {
	shared.Account

	inv *Inventory
}

// NewAdmin creates an admin and registers it into the inventory it manages.
func NewAdmin(username, secret string, inv *Inventory) *Admin {
	a := &Admin{
		Account: shared.NewAccount(username, secret),
		inv:     inv,
	}
	inv.admins[username] = a
	return a
}

// Identity implements shared.User.
func (a *Admin) Identity() shared.Account {
	return a.Account
}

// AddCarpet creates a carpet with the next sequential catalog id and adds it
// to the inventory. Dimension and price magnitudes are not validated here.
func (a *Admin) AddCarpet(width, height float64, fabric string, basePrice int64) *carpet.Carpet {
	c := carpet.New(a.inv.nextID(), width, height, fabric, basePrice, a.inv.bidRounds)
	a.inv.carpets[c.ID] = c
	a.inv.order = append(a.inv.order, c.ID)
	return c
}
