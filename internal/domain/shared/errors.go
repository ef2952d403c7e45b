package shared

import (
	"errors"
	"fmt"
)

// Domain-specific errors
var (
	// Catalog errors
	ErrCarpetNotFound = errors.New("carpet not found")
	ErrStillInStock   = errors.New("carpet is still open for bidding")
	ErrCarpetSold     = errors.New("carpet has already been sold")

	// Bidding errors
	ErrSameBidder  = errors.New("bidder cannot be the same as the last bidder")
	ErrOutOfStock  = errors.New("carpet has no bidding rounds left")
	ErrBidNotFound = errors.New("no bid found for this carpet")
	ErrNoBids      = errors.New("no bids were placed on this carpet")

	// Registry errors
	ErrUserNotFound    = errors.New("user not found")
	ErrDuplicateBidder = errors.New("bidder with this username already exists")
	ErrNotAdmin        = errors.New("user is not an admin")
	ErrNotBidder       = errors.New("user is not a bidder")
)

// BidTooLowError reports a rejected bid increase together with the floor the
// next amount must exceed.
type BidTooLowError struct {
	Floor int64
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid cannot be smaller than %d", e.Floor)
}
