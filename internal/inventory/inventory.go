package inventory

import (
	"sort"

	"github.com/zunayn/carpet-auction/internal/domain/bidder"
	"github.com/zunayn/carpet-auction/internal/domain/carpet"
	"github.com/zunayn/carpet-auction/internal/domain/shared"
)

// Inventory is the aggregate root of the auction: it owns the carpet catalog
// and the user registries and is the only entry point the presentation layer
// talks to. Carpets and bidders live in id-keyed arenas and are referenced by
// id everywhere else.
type Inventory struct {
	carpets map[int]*carpet.Carpet
	order   []int // catalog ids in creation order, never shrinks
	bidders map[string]*bidder.Bidder
	admins  map[string]*Admin

	bidRounds int
}

type Params struct {
	// BidRounds overrides the number of bid rounds new carpets start with.
	// Zero or less means carpet.DefaultBidRounds.
	BidRounds int
}

// New creates an empty inventory.
func New(params Params) *Inventory {
	rounds := params.BidRounds
	if rounds <= 0 {
		rounds = carpet.DefaultBidRounds
	}
	return &Inventory{
		carpets:   make(map[int]*carpet.Carpet),
		bidders:   make(map[string]*bidder.Bidder),
		admins:    make(map[string]*Admin),
		bidRounds: rounds,
	}
}

// Count returns the size of the full catalog, including exhausted and sold
// carpets.
func (inv *Inventory) Count() int {
	return len(inv.order)
}

// Carpets returns the carpets still available for bidding, in creation order.
func (inv *Inventory) Carpets() []*carpet.Carpet {
	var available []*carpet.Carpet
	for _, id := range inv.order {
		if c := inv.carpets[id]; c.InStock() {
			available = append(available, c)
		}
	}
	return available
}

// Catalog returns every carpet ever created, in creation order.
func (inv *Inventory) Catalog() []*carpet.Carpet {
	all := make([]*carpet.Carpet, 0, len(inv.order))
	for _, id := range inv.order {
		all = append(all, inv.carpets[id])
	}
	return all
}

// CarpetIDs returns all catalog ids ever assigned, in creation order.
func (inv *Inventory) CarpetIDs() []int {
	return append([]int(nil), inv.order...)
}

// Carpet looks up a carpet by id across the full catalog, so exhausted
// carpets stay reachable for cancellation and settlement.
func (inv *Inventory) Carpet(id int) (*carpet.Carpet, error) {
	c, ok := inv.carpets[id]
	if !ok {
		return nil, shared.ErrCarpetNotFound
	}
	return c, nil
}

// AddBidder creates and registers a bidder. The username must be unique among
// bidders; a failed registration leaves the registry unchanged.
func (inv *Inventory) AddBidder(username, secret string) (*bidder.Bidder, error) {
	if _, exists := inv.bidders[username]; exists {
		return nil, shared.ErrDuplicateBidder
	}
	b := bidder.New(username, secret)
	inv.bidders[username] = b
	return b, nil
}

// Bidder looks up a registered bidder by username.
func (inv *Inventory) Bidder(username string) (*bidder.Bidder, error) {
	b, ok := inv.bidders[username]
	if !ok {
		return nil, shared.ErrUserNotFound
	}
	return b, nil
}

// Bidders returns the registered bidders sorted by username.
func (inv *Inventory) Bidders() []*bidder.Bidder {
	all := make([]*bidder.Bidder, 0, len(inv.bidders))
	for _, b := range inv.bidders {
		all = append(all, b)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Username < all[j].Username })
	return all
}

// DeleteBidder cancels all of the bidder's active bids, scrubs any ledger
// entries left on exhausted unsold carpets, and removes the bidder from the
// registry. Winnings recorded on sold carpets persist.
func (inv *Inventory) DeleteBidder(b *bidder.Bidder) error {
	if _, ok := inv.bidders[b.Username]; !ok {
		return shared.ErrUserNotFound
	}
	if err := b.CancelAllBids(inv); err != nil {
		return err
	}
	for _, id := range inv.order {
		c := inv.carpets[id]
		if c.Sold() {
			continue
		}
		if _, ok := c.Amount(b.Username); ok {
			if err := c.RemoveBidder(b.Username); err != nil {
				return err
			}
		}
	}
	delete(inv.bidders, b.Username)
	return nil
}

// User resolves a username to a registered user, searching bidders first and
// admins second. The two registries are separate namespaces, so the same
// username may exist in both.
func (inv *Inventory) User(username string) (shared.User, error) {
	if b, ok := inv.bidders[username]; ok {
		return b, nil
	}
	if a, ok := inv.admins[username]; ok {
		return a, nil
	}
	return nil, shared.ErrUserNotFound
}

// Sell settles one exhausted carpet: the current highest bidder is awarded
// the carpet exactly once. Settling an already sold carpet returns the same
// result again.
func (inv *Inventory) Sell(id int) (*shared.SaleResult, error) {
	c, err := inv.Carpet(id)
	if err != nil {
		return nil, err
	}
	winner, err := c.Sell()
	if err != nil {
		return nil, err
	}
	if b, ok := inv.bidders[winner]; ok {
		b.Award(c.ID)
	}
	return &shared.SaleResult{
		CarpetID:   c.ID,
		Winner:     winner,
		FinalPrice: c.Price(),
	}, nil
}

// nextID assigns catalog ids sequentially, 1-based. Ids are never reused.
func (inv *Inventory) nextID() int {
	return len(inv.order) + 1
}
