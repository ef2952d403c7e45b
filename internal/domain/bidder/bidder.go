package bidder

import (
	"github.com/zunayn/carpet-auction/internal/domain/carpet"
	"github.com/zunayn/carpet-auction/internal/domain/shared"
)

// CarpetResolver resolves catalog ids to live carpets. The inventory aggregate
// satisfies it.
type CarpetResolver interface {
	Carpet(id int) (*carpet.Carpet, error)
}

// Bidder is a registered auction participant. History and winnings reference
// carpets by id so that entities never hold pointer cycles.
type Bidder struct {
	shared.Account

	// History lists every carpet ever bid on, in bid order. Re-bidding the
	// same carpet adds another entry.
	History []int `json:"history"`

	// Won lists awarded carpets, each at most once.
	Won []int `json:"won"`
}

// New creates a bidder with a fresh identity.
func New(username, secret string) *Bidder {
	return &Bidder{Account: shared.NewAccount(username, secret)}
}

// Identity implements shared.User.
func (b *Bidder) Identity() shared.Account {
	return b.Account
}

// Bid places a bid of amount on the carpet. Bidding on an exhausted carpet
// fails with ErrOutOfStock, and bidding twice in a row with ErrSameBidder; on
// success the carpet is appended to the bid history.
func (b *Bidder) Bid(c *carpet.Carpet, amount int64) error {
	if !c.InStock() {
		return shared.ErrOutOfStock
	}
	if err := c.AddBid(b.Username, amount); err != nil {
		return err
	}
	b.History = append(b.History, c.ID)
	return nil
}

// IncreaseBid raises the amount placed on the carpet. The new amount must
// exceed the bidder's current ledger amount, or the base price when no bid is
// placed yet. An accepted increase does not grow the bid history.
func (b *Bidder) IncreaseBid(c *carpet.Carpet, amount int64) error {
	floor := c.BasePrice
	if current, ok := c.Amount(b.Username); ok {
		floor = current
	}
	if amount <= floor {
		return &shared.BidTooLowError{Floor: floor}
	}
	return c.AddBid(b.Username, amount)
}

// CancelBid withdraws the bid placed on the carpet, restoring one bid round.
// The carpet must appear in the bid history and in the carpet's ledger; if
// either is missing, nothing is changed.
func (b *Bidder) CancelBid(c *carpet.Carpet) error {
	at := -1
	for i, id := range b.History {
		if id == c.ID {
			at = i
			break
		}
	}
	if at < 0 {
		return shared.ErrBidNotFound
	}
	if _, ok := c.Amount(b.Username); !ok {
		return shared.ErrBidNotFound
	}
	if err := c.RemoveBidder(b.Username); err != nil {
		return err
	}
	b.History = append(b.History[:at], b.History[at+1:]...)
	return nil
}

// CancelAllBids cancels every active bid. The active set is snapshotted first
// because cancellation mutates the history being walked.
func (b *Bidder) CancelAllBids(res CarpetResolver) error {
	active := b.ActiveBids(res)
	cancelled := make(map[int]bool, len(active))
	for _, c := range active {
		if cancelled[c.ID] {
			continue
		}
		cancelled[c.ID] = true
		if err := b.CancelBid(c); err != nil {
			return err
		}
	}
	return nil
}

// ActiveBids resolves the subsequence of the bid history whose carpets are
// still in stock and still hold a ledger entry for this bidder. A history
// entry can outlive its ledger entry when a re-bid is followed by a single
// cancellation; such entries are not active.
func (b *Bidder) ActiveBids(res CarpetResolver) []*carpet.Carpet {
	var active []*carpet.Carpet
	for _, id := range b.History {
		c, err := res.Carpet(id)
		if err != nil {
			continue
		}
		if !c.InStock() {
			continue
		}
		if _, ok := c.Amount(b.Username); !ok {
			continue
		}
		active = append(active, c)
	}
	return active
}

// Award adds the carpet to the winnings exactly once.
func (b *Bidder) Award(carpetID int) {
	if b.HasWon(carpetID) {
		return
	}
	b.Won = append(b.Won, carpetID)
}

// HasWon reports whether the carpet was awarded to this bidder.
func (b *Bidder) HasWon(carpetID int) bool {
	for _, id := range b.Won {
		if id == carpetID {
			return true
		}
	}
	return false
}
