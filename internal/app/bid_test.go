package app

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/zunayn/carpet-auction/internal/domain/shared"
	"github.com/zunayn/carpet-auction/internal/inventory"
	"github.com/zunayn/carpet-auction/internal/ports/inbound"
)

func newServices() (*inventory.Inventory, *CatalogService, *BidService) {
	inv := inventory.New(inventory.Params{})
	inventory.NewAdmin("admin", "admin", inv)

	catalog := NewCatalogService(CatalogServiceParams{Inventory: inv, Logger: zerolog.Nop()})
	bids := NewBidService(BidServiceParams{Inventory: inv, Logger: zerolog.Nop()})
	return inv, catalog, bids
}

func TestBidService_PlaceBid(t *testing.T) {
	ctx := context.Background()
	_, catalog, bids := newServices()

	c, err := catalog.AddCarpet(ctx, inbound.AddCarpetRequest{
		AdminUsername: "admin", Width: 4, Height: 6, Fabric: "wool", BasePrice: 100,
	})
	require.NoError(t, err)

	_, err = catalog.RegisterBidder(ctx, inbound.RegisterBidderRequest{Username: "alice", Secret: "secret"})
	require.NoError(t, err)

	tests := []struct {
		name          string
		req           inbound.PlaceBidRequest
		expectedError error
	}{
		{
			name: "valid_first_bid",
			req:  inbound.PlaceBidRequest{CarpetID: c.ID, Username: "alice", Amount: 120},
		},
		{
			name:          "unknown_bidder",
			req:           inbound.PlaceBidRequest{CarpetID: c.ID, Username: "ghost", Amount: 130},
			expectedError: shared.ErrUserNotFound,
		},
		{
			name:          "unknown_carpet",
			req:           inbound.PlaceBidRequest{CarpetID: 42, Username: "alice", Amount: 130},
			expectedError: shared.ErrCarpetNotFound,
		},
		{
			name:          "immediate_repeat",
			req:           inbound.PlaceBidRequest{CarpetID: c.ID, Username: "alice", Amount: 200},
			expectedError: shared.ErrSameBidder,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := bids.PlaceBid(ctx, tc.req)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
		})
	}

	require.Equal(t, int64(120), c.Price())
	require.Equal(t, 6, c.BidsLeft)
}

func TestBidService_IncreaseBid(t *testing.T) {
	ctx := context.Background()
	_, catalog, bids := newServices()

	c, err := catalog.AddCarpet(ctx, inbound.AddCarpetRequest{
		AdminUsername: "admin", Width: 4, Height: 6, Fabric: "wool", BasePrice: 100,
	})
	require.NoError(t, err)

	for _, username := range []string{"alice", "bob"} {
		_, err := catalog.RegisterBidder(ctx, inbound.RegisterBidderRequest{Username: username, Secret: "secret"})
		require.NoError(t, err)
	}

	require.NoError(t, bids.PlaceBid(ctx, inbound.PlaceBidRequest{CarpetID: c.ID, Username: "alice", Amount: 120}))
	require.NoError(t, bids.PlaceBid(ctx, inbound.PlaceBidRequest{CarpetID: c.ID, Username: "bob", Amount: 150}))

	err = bids.IncreaseBid(ctx, inbound.PlaceBidRequest{CarpetID: c.ID, Username: "alice", Amount: 110})
	var tooLow *shared.BidTooLowError
	require.ErrorAs(t, err, &tooLow)
	require.Equal(t, int64(120), tooLow.Floor)

	require.NoError(t, bids.IncreaseBid(ctx, inbound.PlaceBidRequest{CarpetID: c.ID, Username: "alice", Amount: 200}))
	require.Equal(t, int64(200), c.Price())
}

func TestBidService_CancelBid(t *testing.T) {
	ctx := context.Background()
	_, catalog, bids := newServices()

	c, err := catalog.AddCarpet(ctx, inbound.AddCarpetRequest{
		AdminUsername: "admin", Width: 4, Height: 6, Fabric: "wool", BasePrice: 100,
	})
	require.NoError(t, err)

	_, err = catalog.RegisterBidder(ctx, inbound.RegisterBidderRequest{Username: "alice", Secret: "secret"})
	require.NoError(t, err)

	require.NoError(t, bids.PlaceBid(ctx, inbound.PlaceBidRequest{CarpetID: c.ID, Username: "alice", Amount: 120}))
	require.NoError(t, bids.CancelBid(ctx, inbound.CancelBidRequest{CarpetID: c.ID, Username: "alice"}))
	require.Equal(t, 7, c.BidsLeft)

	err = bids.CancelBid(ctx, inbound.CancelBidRequest{CarpetID: c.ID, Username: "alice"})
	require.ErrorIs(t, err, shared.ErrBidNotFound)
}

func TestBidService_SettleAndWonCarpets(t *testing.T) {
	ctx := context.Background()
	inv := inventory.New(inventory.Params{BidRounds: 2})
	inventory.NewAdmin("admin", "admin", inv)
	catalog := NewCatalogService(CatalogServiceParams{Inventory: inv, Logger: zerolog.Nop()})
	bids := NewBidService(BidServiceParams{Inventory: inv, Logger: zerolog.Nop()})

	c, err := catalog.AddCarpet(ctx, inbound.AddCarpetRequest{
		AdminUsername: "admin", Width: 4, Height: 6, Fabric: "wool", BasePrice: 100,
	})
	require.NoError(t, err)
	open, err := catalog.AddCarpet(ctx, inbound.AddCarpetRequest{
		AdminUsername: "admin", Width: 3, Height: 5, Fabric: "silk", BasePrice: 80,
	})
	require.NoError(t, err)

	for _, username := range []string{"alice", "bob"} {
		_, err := catalog.RegisterBidder(ctx, inbound.RegisterBidderRequest{Username: username, Secret: "secret"})
		require.NoError(t, err)
	}

	require.NoError(t, bids.PlaceBid(ctx, inbound.PlaceBidRequest{CarpetID: c.ID, Username: "alice", Amount: 110}))
	require.NoError(t, bids.PlaceBid(ctx, inbound.PlaceBidRequest{CarpetID: c.ID, Username: "bob", Amount: 150}))
	require.NoError(t, bids.PlaceBid(ctx, inbound.PlaceBidRequest{CarpetID: open.ID, Username: "alice", Amount: 90}))

	results, err := bids.Settle(ctx)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, &shared.SaleResult{CarpetID: c.ID, Winner: "bob", FinalPrice: 150}, results[0])

	// settlement is idempotent: a second sweep finds nothing left to settle
	results, err = bids.Settle(ctx)
	require.NoError(t, err)
	require.Empty(t, results)

	won, err := bids.WonCarpets(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, won, 1)
	require.Equal(t, c.ID, won[0].ID)

	won, err = bids.WonCarpets(ctx, "alice")
	require.NoError(t, err)
	require.Empty(t, won)

	active, err := bids.ActiveBids(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, open.ID, active[0].ID)

	history, err := bids.BidHistory(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, history, 2)
}

func TestBidService_CancelAllBids(t *testing.T) {
	ctx := context.Background()
	_, catalog, bids := newServices()

	first, err := catalog.AddCarpet(ctx, inbound.AddCarpetRequest{
		AdminUsername: "admin", Width: 4, Height: 6, Fabric: "wool", BasePrice: 100,
	})
	require.NoError(t, err)
	second, err := catalog.AddCarpet(ctx, inbound.AddCarpetRequest{
		AdminUsername: "admin", Width: 3, Height: 5, Fabric: "silk", BasePrice: 80,
	})
	require.NoError(t, err)

	_, err = catalog.RegisterBidder(ctx, inbound.RegisterBidderRequest{Username: "alice", Secret: "secret"})
	require.NoError(t, err)

	require.NoError(t, bids.PlaceBid(ctx, inbound.PlaceBidRequest{CarpetID: first.ID, Username: "alice", Amount: 120}))
	require.NoError(t, bids.PlaceBid(ctx, inbound.PlaceBidRequest{CarpetID: second.ID, Username: "alice", Amount: 90}))

	require.NoError(t, bids.CancelAllBids(ctx, "alice"))
	require.Equal(t, 7, first.BidsLeft)
	require.Equal(t, 7, second.BidsLeft)

	active, err := bids.ActiveBids(ctx, "alice")
	require.NoError(t, err)
	require.Empty(t, active)
}
