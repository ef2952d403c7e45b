package inventory

import (
	"github.com/zunayn/carpet-auction/internal/domain/bidder"
	"github.com/zunayn/carpet-auction/internal/domain/carpet"
	"github.com/zunayn/carpet-auction/internal/domain/shared"
)

// CanBid is the capability surface of a bidding participant.
type CanBid interface {
	shared.User
	Bid(c *carpet.Carpet, amount int64) error
	IncreaseBid(c *carpet.Carpet, amount int64) error
	CancelBid(c *carpet.Carpet) error
	CancelAllBids(res bidder.CarpetResolver) error
}

// CanManageCatalog is the capability surface of an administrative role.
type CanManageCatalog interface {
	shared.User
	AddCarpet(width, height float64, fabric string, basePrice int64) *carpet.Carpet
}

var (
	_ CanBid                = (*bidder.Bidder)(nil)
	_ CanManageCatalog      = (*Admin)(nil)
	_ bidder.CarpetResolver = (*Inventory)(nil)
)
