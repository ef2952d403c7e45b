package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/zunayn/carpet-auction/internal/domain/bidder"
	"github.com/zunayn/carpet-auction/internal/domain/carpet"
	"github.com/zunayn/carpet-auction/internal/domain/shared"
	"github.com/zunayn/carpet-auction/internal/inventory"
	"github.com/zunayn/carpet-auction/internal/ports/inbound"
)

// CatalogService implements the catalog and registry use cases
type CatalogService struct {
	inv    *inventory.Inventory
	logger zerolog.Logger
}

type CatalogServiceParams struct {
	Inventory *inventory.Inventory
	Logger    zerolog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(params CatalogServiceParams) *CatalogService {
	return &CatalogService{
		inv:    params.Inventory,
		logger: params.Logger.With().Str("component", "catalog_service").Logger(),
	}
}

// AddCarpet creates a carpet on behalf of an admin
func (service *CatalogService) AddCarpet(ctx context.Context, req inbound.AddCarpetRequest) (*carpet.Carpet, error) {
	service.logger.Info().
		Str("admin", req.AdminUsername).
		Float64("width", req.Width).
		Float64("height", req.Height).
		Str("fabric", req.Fabric).
		Int64("base_price", req.BasePrice).
		Msg("Attempting to add carpet")

	user, err := service.inv.User(req.AdminUsername)
	if err != nil {
		service.logger.Error().Err(err).Str("admin", req.AdminUsername).Msg("Admin not found")
		return nil, err
	}

	admin, ok := user.(inventory.CanManageCatalog)
	if !ok {
		service.logger.Warn().Str("username", req.AdminUsername).Msg("User cannot manage the catalog")
		return nil, shared.ErrNotAdmin
	}

	c := admin.AddCarpet(req.Width, req.Height, req.Fabric, req.BasePrice)

	service.logger.Info().
		Int("carpet_id", c.ID).
		Int("bids_left", c.BidsLeft).
		Msg("Carpet added to inventory")

	return c, nil
}

// ListCarpets returns the carpets available for bidding
func (service *CatalogService) ListCarpets(ctx context.Context) []*carpet.Carpet {
	return service.inv.Carpets()
}

// ListCatalog returns the full catalog
func (service *CatalogService) ListCatalog(ctx context.Context) []*carpet.Carpet {
	return service.inv.Catalog()
}

// GetCarpet retrieves a carpet by catalog id
func (service *CatalogService) GetCarpet(ctx context.Context, id int) (*carpet.Carpet, error) {
	c, err := service.inv.Carpet(id)
	if err != nil {
		service.logger.Debug().Int("carpet_id", id).Msg("Carpet not found")
		return nil, err
	}
	return c, nil
}

// GetUser resolves a username to a registered user
func (service *CatalogService) GetUser(ctx context.Context, username string) (shared.User, error) {
	user, err := service.inv.User(username)
	if err != nil {
		service.logger.Debug().Str("username", username).Msg("User not found")
		return nil, err
	}
	return user, nil
}

// RegisterBidder creates and registers a new bidder
func (service *CatalogService) RegisterBidder(ctx context.Context, req inbound.RegisterBidderRequest) (*bidder.Bidder, error) {
	service.logger.Info().Str("username", req.Username).Msg("Attempting to register bidder")

	b, err := service.inv.AddBidder(req.Username, req.Secret)
	if err != nil {
		service.logger.Warn().Err(err).Str("username", req.Username).Msg("Bidder registration rejected")
		return nil, err
	}

	service.logger.Info().
		Str("bidder_id", b.ID.String()).
		Str("username", b.Username).
		Msg("Bidder registered")

	return b, nil
}

// RemoveBidder deletes a bidder, cancelling its active bids first
func (service *CatalogService) RemoveBidder(ctx context.Context, username string) error {
	service.logger.Info().Str("username", username).Msg("Attempting to delete bidder")

	b, err := service.inv.Bidder(username)
	if err != nil {
		service.logger.Warn().Str("username", username).Msg("Bidder not found")
		return err
	}

	if err := service.inv.DeleteBidder(b); err != nil {
		service.logger.Error().Err(err).Str("username", username).Msg("Failed to delete bidder")
		return err
	}

	service.logger.Info().Str("username", username).Msg("Bidder deleted")
	return nil
}

// ListBidders returns the registered bidders
func (service *CatalogService) ListBidders(ctx context.Context) []*bidder.Bidder {
	return service.inv.Bidders()
}
