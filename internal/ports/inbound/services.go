package inbound

import (
	"context"

	"github.com/zunayn/carpet-auction/internal/domain/bidder"
	"github.com/zunayn/carpet-auction/internal/domain/carpet"
	"github.com/zunayn/carpet-auction/internal/domain/shared"
)

// CatalogService defines catalog and registry operations
type CatalogService interface {
	// AddCarpet creates a carpet on behalf of an admin
	AddCarpet(ctx context.Context, req AddCarpetRequest) (*carpet.Carpet, error)

	// ListCarpets returns the carpets available for bidding
	ListCarpets(ctx context.Context) []*carpet.Carpet

	// ListCatalog returns the full catalog, including exhausted and sold carpets
	ListCatalog(ctx context.Context) []*carpet.Carpet

	// GetCarpet retrieves a carpet by catalog id
	GetCarpet(ctx context.Context, id int) (*carpet.Carpet, error)

	// GetUser resolves a username to a registered user
	GetUser(ctx context.Context, username string) (shared.User, error)

	// RegisterBidder creates and registers a new bidder
	RegisterBidder(ctx context.Context, req RegisterBidderRequest) (*bidder.Bidder, error)

	// RemoveBidder deletes a bidder, cancelling its active bids first
	RemoveBidder(ctx context.Context, username string) error

	// ListBidders returns the registered bidders
	ListBidders(ctx context.Context) []*bidder.Bidder
}

// BidService defines the bidding operations
type BidService interface {
	// PlaceBid places a new bid on a carpet
	PlaceBid(ctx context.Context, req PlaceBidRequest) error

	// IncreaseBid raises the amount a bidder has placed on a carpet
	IncreaseBid(ctx context.Context, req PlaceBidRequest) error

	// CancelBid withdraws a bid, restoring one bid round on the carpet
	CancelBid(ctx context.Context, req CancelBidRequest) error

	// CancelAllBids withdraws every active bid of a bidder
	CancelAllBids(ctx context.Context, username string) error

	// Settle awards every exhausted, unsold carpet to its highest bidder
	Settle(ctx context.Context) ([]*shared.SaleResult, error)

	// BidHistory returns every carpet the bidder ever bid on, in bid order
	BidHistory(ctx context.Context, username string) ([]*carpet.Carpet, error)

	// ActiveBids returns the carpets from the history still open for bidding
	ActiveBids(ctx context.Context, username string) ([]*carpet.Carpet, error)

	// WonCarpets returns the carpets awarded to the bidder
	WonCarpets(ctx context.Context, username string) ([]*carpet.Carpet, error)
}

// request to create a carpet
type AddCarpetRequest struct {
	AdminUsername string  `json:"admin_username"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Fabric        string  `json:"fabric"`
	BasePrice     int64   `json:"base_price"`
}

// request to register a bidder
type RegisterBidderRequest struct {
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

// request to place or increase a bid
type PlaceBidRequest struct {
	CarpetID int    `json:"carpet_id"`
	Username string `json:"username"`
	Amount   int64  `json:"amount"`
}

// request to cancel a bid
type CancelBidRequest struct {
	CarpetID int    `json:"carpet_id"`
	Username string `json:"username"`
}
