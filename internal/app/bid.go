package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/zunayn/carpet-auction/internal/domain/bidder"
	"github.com/zunayn/carpet-auction/internal/domain/carpet"
	"github.com/zunayn/carpet-auction/internal/domain/shared"
	"github.com/zunayn/carpet-auction/internal/inventory"
	"github.com/zunayn/carpet-auction/internal/ports/inbound"
)

// BidService implements the bidding use cases
type BidService struct {
	inv    *inventory.Inventory
	logger zerolog.Logger
}

type BidServiceParams struct {
	Inventory *inventory.Inventory
	Logger    zerolog.Logger
}

// NewBidService creates a new bid service
func NewBidService(params BidServiceParams) *BidService {
	return &BidService{
		inv:    params.Inventory,
		logger: params.Logger.With().Str("component", "bid_service").Logger(),
	}
}

// PlaceBid places a new bid on a carpet
func (service *BidService) PlaceBid(ctx context.Context, req inbound.PlaceBidRequest) error {
	service.logger.Info().
		Int("carpet_id", req.CarpetID).
		Str("username", req.Username).
		Int64("amount", req.Amount).
		Msg("Attempting to place bid")

	b, c, err := service.resolve(req.Username, req.CarpetID)
	if err != nil {
		return err
	}

	if err := b.Bid(c, req.Amount); err != nil {
		service.logger.Warn().Err(err).
			Int("carpet_id", c.ID).
			Str("username", b.Username).
			Msg("Bid rejected")
		return err
	}

	service.logger.Info().
		Int("carpet_id", c.ID).
		Int64("current_price", c.Price()).
		Int("bids_left", c.BidsLeft).
		Msg("Bid placed")

	return nil
}

// IncreaseBid raises the amount a bidder has placed on a carpet
func (service *BidService) IncreaseBid(ctx context.Context, req inbound.PlaceBidRequest) error {
	service.logger.Info().
		Int("carpet_id", req.CarpetID).
		Str("username", req.Username).
		Int64("amount", req.Amount).
		Msg("Attempting to increase bid")

	b, c, err := service.resolve(req.Username, req.CarpetID)
	if err != nil {
		return err
	}

	if err := b.IncreaseBid(c, req.Amount); err != nil {
		service.logger.Warn().Err(err).
			Int("carpet_id", c.ID).
			Str("username", b.Username).
			Msg("Bid increase rejected")
		return err
	}

	service.logger.Info().
		Int("carpet_id", c.ID).
		Int64("current_price", c.Price()).
		Msg("Bid increased")

	return nil
}

// CancelBid withdraws a bid, restoring one bid round on the carpet
func (service *BidService) CancelBid(ctx context.Context, req inbound.CancelBidRequest) error {
	service.logger.Info().
		Int("carpet_id", req.CarpetID).
		Str("username", req.Username).
		Msg("Attempting to cancel bid")

	b, c, err := service.resolve(req.Username, req.CarpetID)
	if err != nil {
		return err
	}

	if err := b.CancelBid(c); err != nil {
		service.logger.Warn().Err(err).
			Int("carpet_id", c.ID).
			Str("username", b.Username).
			Msg("Bid cancellation rejected")
		return err
	}

	service.logger.Info().
		Int("carpet_id", c.ID).
		Int("bids_left", c.BidsLeft).
		Msg("Bid cancelled")

	return nil
}

// CancelAllBids withdraws every active bid of a bidder
func (service *BidService) CancelAllBids(ctx context.Context, username string) error {
	b, err := service.inv.Bidder(username)
	if err != nil {
		service.logger.Warn().Str("username", username).Msg("Bidder not found")
		return err
	}

	if err := b.CancelAllBids(service.inv); err != nil {
		service.logger.Error().Err(err).Str("username", username).Msg("Failed to cancel all bids")
		return err
	}

	service.logger.Info().Str("username", username).Msg("All active bids cancelled")
	return nil
}

// Settle awards every exhausted, unsold carpet to its highest bidder
func (service *BidService) Settle(ctx context.Context) ([]*shared.SaleResult, error) {
	var results []*shared.SaleResult
	for _, c := range service.inv.Catalog() {
		if c.InStock() || c.Sold() {
			continue
		}
		result, err := service.inv.Sell(c.ID)
		if err != nil {
			if errors.Is(err, shared.ErrNoBids) {
				continue
			}
			service.logger.Error().Err(err).Int("carpet_id", c.ID).Msg("Failed to settle carpet")
			return results, err
		}

		service.logger.Info().
			Int("carpet_id", result.CarpetID).
			Str("winner", result.Winner).
			Int64("final_price", result.FinalPrice).
			Msg("Carpet sold")

		results = append(results, result)
	}
	return results, nil
}

// BidHistory returns every carpet the bidder ever bid on, in bid order
func (service *BidService) BidHistory(ctx context.Context, username string) ([]*carpet.Carpet, error) {
	b, err := service.inv.Bidder(username)
	if err != nil {
		return nil, err
	}
	return service.resolveIDs(b.History), nil
}

// ActiveBids returns the carpets from the history still open for bidding
func (service *BidService) ActiveBids(ctx context.Context, username string) ([]*carpet.Carpet, error) {
	b, err := service.inv.Bidder(username)
	if err != nil {
		return nil, err
	}
	return b.ActiveBids(service.inv), nil
}

// WonCarpets returns the carpets awarded to the bidder
func (service *BidService) WonCarpets(ctx context.Context, username string) ([]*carpet.Carpet, error) {
	b, err := service.inv.Bidder(username)
	if err != nil {
		return nil, err
	}
	return service.resolveIDs(b.Won), nil
}

func (service *BidService) resolve(username string, carpetID int) (*bidder.Bidder, *carpet.Carpet, error) {
	b, err := service.inv.Bidder(username)
	if err != nil {
		service.logger.Warn().Str("username", username).Msg("Bidder not found")
		return nil, nil, err
	}
	c, err := service.inv.Carpet(carpetID)
	if err != nil {
		service.logger.Warn().Int("carpet_id", carpetID).Msg("Carpet not found")
		return nil, nil, err
	}
	return b, c, nil
}

func (service *BidService) resolveIDs(ids []int) []*carpet.Carpet {
	carpets := make([]*carpet.Carpet, 0, len(ids))
	for _, id := range ids {
		if c, err := service.inv.Carpet(id); err == nil {
			carpets = append(carpets, c)
		}
	}
	return carpets
}
