package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zunayn/carpet-auction/internal/domain/shared"
	"github.com/zunayn/carpet-auction/internal/ports/inbound"
)

func TestCatalogService_AddCarpet(t *testing.T) {
	ctx := context.Background()
	_, catalog, _ := newServices()

	_, err := catalog.RegisterBidder(ctx, inbound.RegisterBidderRequest{Username: "alice", Secret: "secret"})
	require.NoError(t, err)

	tests := []struct {
		name          string
		req           inbound.AddCarpetRequest
		expectedID    int
		expectedError error
	}{
		{
			name:       "admin_creates_carpet",
			req:        inbound.AddCarpetRequest{AdminUsername: "admin", Width: 4, Height: 6, Fabric: "wool", BasePrice: 100},
			expectedID: 1,
		},
		{
			name:       "ids_are_sequential",
			req:        inbound.AddCarpetRequest{AdminUsername: "admin", Width: 3, Height: 5, Fabric: "silk", BasePrice: 200},
			expectedID: 2,
		},
		{
			name:          "unknown_admin",
			req:           inbound.AddCarpetRequest{AdminUsername: "ghost", Width: 2, Height: 3, Fabric: "jute", BasePrice: 50},
			expectedError: shared.ErrUserNotFound,
		},
		{
			name:          "bidder_cannot_manage_catalog",
			req:           inbound.AddCarpetRequest{AdminUsername: "alice", Width: 2, Height: 3, Fabric: "jute", BasePrice: 50},
			expectedError: shared.ErrNotAdmin,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := catalog.AddCarpet(ctx, tc.req)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expectedID, c.ID)
		})
	}

	require.Len(t, catalog.ListCatalog(ctx), 2)
}

func TestCatalogService_RegisterAndRemoveBidder(t *testing.T) {
	ctx := context.Background()
	_, catalog, bids := newServices()

	c, err := catalog.AddCarpet(ctx, inbound.AddCarpetRequest{
		AdminUsername: "admin", Width: 4, Height: 6, Fabric: "wool", BasePrice: 100,
	})
	require.NoError(t, err)

	b, err := catalog.RegisterBidder(ctx, inbound.RegisterBidderRequest{Username: "alice", Secret: "secret"})
	require.NoError(t, err)
	require.Equal(t, "alice", b.Username)

	_, err = catalog.RegisterBidder(ctx, inbound.RegisterBidderRequest{Username: "alice", Secret: "other"})
	require.ErrorIs(t, err, shared.ErrDuplicateBidder)

	require.NoError(t, bids.PlaceBid(ctx, inbound.PlaceBidRequest{CarpetID: c.ID, Username: "alice", Amount: 120}))

	// deletion cancels the active bid before dropping the registration
	require.NoError(t, catalog.RemoveBidder(ctx, "alice"))
	require.Equal(t, 7, c.BidsLeft)
	require.Empty(t, catalog.ListBidders(ctx))

	err = catalog.RemoveBidder(ctx, "alice")
	require.ErrorIs(t, err, shared.ErrUserNotFound)
}

func TestCatalogService_GetUser(t *testing.T) {
	ctx := context.Background()
	_, catalog, _ := newServices()

	user, err := catalog.GetUser(ctx, "admin")
	require.NoError(t, err)
	require.Equal(t, "admin", user.Identity().Username)

	_, err = catalog.GetUser(ctx, "nobody")
	require.ErrorIs(t, err, shared.ErrUserNotFound)
}
