package carpet

import (
	"github.com/zunayn/carpet-auction/internal/domain/shared"
)

// DefaultBidRounds is the number of bid rounds a new carpet starts with.
const DefaultBidRounds = 7

// Entry is one slot of a carpet's bid ledger.
type Entry struct {
	Bidder string `json:"bidder"`
	Amount int64  `json:"amount"`
}

// Carpet is an auctionable catalog item with a bounded number of bid rounds.
//
// The ledger keeps one slot per bidder in insertion order: re-bidding replaces
// the amount in place and keeps the original position, so the final slot is
// always the most recently added bidder.
type Carpet struct {
	ID        int     `json:"id"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Fabric    string  `json:"fabric"`
	BasePrice int64   `json:"base_price"`

	BidsLeft int `json:"bids_left"`

	ledger  []Entry
	last    string
	hasLast bool
	sold    bool
	winner  string
}

// New creates a carpet. A bidRounds value of zero or less falls back to
// DefaultBidRounds.
func New(id int, width, height float64, fabric string, basePrice int64, bidRounds int) *Carpet {
	if bidRounds <= 0 {
		bidRounds = DefaultBidRounds
	}
	return &Carpet{
		ID:        id,
		Width:     width,
		Height:    height,
		Fabric:    fabric,
		BasePrice: basePrice,
		BidsLeft:  bidRounds,
	}
}

// InStock returns true while the carpet can still be bid upon.
func (c *Carpet) InStock() bool {
	return c.BidsLeft > 0
}

// LastBidder returns the bidder who placed the most recent accepted bid, if
// any. Presence is tracked explicitly so an empty username is a valid key.
func (c *Carpet) LastBidder() (string, bool) {
	return c.last, c.hasLast
}

// HighestBidder returns the ledger key holding the maximum amount. Ties go to
// the later insertion position, matching a stable ascending sort by amount
// with the final element taken.
func (c *Carpet) HighestBidder() (string, bool) {
	if len(c.ledger) == 0 {
		return "", false
	}
	best := 0
	for i, e := range c.ledger {
		if e.Amount >= c.ledger[best].Amount {
			best = i
		}
	}
	return c.ledger[best].Bidder, true
}

// Price returns the current bid price, or the base price when the ledger is
// empty.
func (c *Carpet) Price() int64 {
	if len(c.ledger) == 0 {
		return c.BasePrice
	}
	best := c.ledger[0].Amount
	for _, e := range c.ledger[1:] {
		if e.Amount > best {
			best = e.Amount
		}
	}
	return best
}

// Amount returns the amount the given bidder currently has on the ledger.
func (c *Carpet) Amount(bidder string) (int64, bool) {
	for _, e := range c.ledger {
		if e.Bidder == bidder {
			return e.Amount, true
		}
	}
	return 0, false
}

// Ledger returns a copy of the bid ledger in insertion order.
func (c *Carpet) Ledger() []Entry {
	return append([]Entry(nil), c.ledger...)
}

// AddBid consumes one bid round and records amount at the bidder's ledger
// slot. The bidder may not be the current last bidder, and the carpet must
// still have rounds left.
func (c *Carpet) AddBid(bidder string, amount int64) error {
	if !c.InStock() {
		return shared.ErrOutOfStock
	}
	if last, ok := c.LastBidder(); ok && last == bidder {
		return shared.ErrSameBidder
	}

	c.BidsLeft--
	c.last = bidder
	c.hasLast = true
	for i := range c.ledger {
		if c.ledger[i].Bidder == bidder {
			c.ledger[i].Amount = amount
			return nil
		}
	}
	c.ledger = append(c.ledger, Entry{Bidder: bidder, Amount: amount})
	return nil
}

// RemoveBidder drops the bidder's ledger entry and restores one bid round,
// which may re-open bidding on an exhausted carpet. Sold carpets are final.
func (c *Carpet) RemoveBidder(bidder string) error {
	if c.sold {
		return shared.ErrCarpetSold
	}
	for i := range c.ledger {
		if c.ledger[i].Bidder == bidder {
			c.ledger = append(c.ledger[:i], c.ledger[i+1:]...)
			c.BidsLeft++
			if c.last == bidder {
				// fall back to the most recently inserted remaining key
				c.last = ""
				c.hasLast = false
				if n := len(c.ledger); n > 0 {
					c.last = c.ledger[n-1].Bidder
					c.hasLast = true
				}
			}
			return nil
		}
	}
	return shared.ErrBidNotFound
}

// Sell decides the winner once bidding is exhausted. Settling an already sold
// carpet returns the recorded winner again.
func (c *Carpet) Sell() (string, error) {
	if c.InStock() {
		return "", shared.ErrStillInStock
	}
	if c.sold {
		return c.winner, nil
	}
	winner, ok := c.HighestBidder()
	if !ok {
		return "", shared.ErrNoBids
	}
	c.sold = true
	c.winner = winner
	return winner, nil
}

// Sold reports whether the carpet has been awarded.
func (c *Carpet) Sold() bool {
	return c.sold
}

// Winner returns the awarded bidder, if the carpet has been sold.
func (c *Carpet) Winner() (string, bool) {
	if !c.sold {
		return "", false
	}
	return c.winner, true
}
