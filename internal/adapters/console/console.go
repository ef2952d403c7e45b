// Package console is the interactive text-menu front end of the auction. It
// owns all prompting, input parsing and entity rendering, and talks to the
// core exclusively through the inbound service interfaces.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/zunayn/carpet-auction/internal/domain/carpet"
	"github.com/zunayn/carpet-auction/internal/domain/shared"
	"github.com/zunayn/carpet-auction/internal/inventory"
	"github.com/zunayn/carpet-auction/internal/ports/inbound"
)

type Console struct {
	catalog inbound.CatalogService
	bids    inbound.BidService
	in      *bufio.Scanner
	out     io.Writer
	logger  zerolog.Logger
}

type Params struct {
	Catalog inbound.CatalogService
	Bids    inbound.BidService
	Input   io.Reader
	Output  io.Writer
	Logger  zerolog.Logger
}

// New creates a console bound to the given input and output streams.
func New(params Params) *Console {
	return &Console{
		catalog: params.Catalog,
		bids:    params.Bids,
		in:      bufio.NewScanner(params.Input),
		out:     params.Output,
		logger:  params.Logger.With().Str("component", "console").Logger(),
	}
}

// errSessionEnded signals that the input stream is exhausted.
var errSessionEnded = errors.New("console session ended")

// Run drives the main menu until the user quits or input ends.
func (c *Console) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		c.printf("\n[A]dmin page.\n[B]idder page.\n[N]ew bidder.\n[D]elete bidder.\n[Q]uit.\n")

		choice, err := c.menuChoice()
		if err != nil {
			return nil
		}

		switch {
		case strings.HasPrefix(choice, "a"):
			if err := c.adminPage(ctx); err != nil {
				return nil
			}

		case strings.HasPrefix(choice, "b"):
			if err := c.bidderPage(ctx); err != nil {
				return nil
			}

		case strings.HasPrefix(choice, "n"):
			if err := c.newBidder(ctx); err != nil {
				return nil
			}

		case strings.HasPrefix(choice, "d"):
			if err := c.deleteBidder(ctx); err != nil {
				return nil
			}

		case strings.HasPrefix(choice, "q"):
			return nil

		default:
			c.printf("Invalid input!\n")
		}
	}
	return nil
}

// adminPage resolves a user and enters the admin menu if the user holds the
// catalog capability.
func (c *Console) adminPage(ctx context.Context) error {
	user, err := c.getUser(ctx)
	if err != nil {
		return err
	}

	if _, ok := user.(inventory.CanManageCatalog); !ok {
		c.printf("Not an admin!\n")
		return nil
	}
	return c.adminMenu(ctx, user.Identity().Username)
}

func (c *Console) adminMenu(ctx context.Context, username string) error {
	c.printf("\nADMIN MENU:\n")

	for {
		c.printf("\n[C]arpets.\n[B]idders.\n[A]dd carpet.\n[R]eturn.\n")

		choice, err := c.menuChoice()
		if err != nil {
			return err
		}

		switch {
		case strings.HasPrefix(choice, "c"):
			c.printf("Carpets in Inventory:\n\n")
			for _, item := range c.catalog.ListCarpets(ctx) {
				c.printf("%s\n", renderCarpet(item))
			}

		case strings.HasPrefix(choice, "b"):
			c.printf("Bidders:\n\n")
			for _, b := range c.catalog.ListBidders(ctx) {
				c.printf("%s\n", b.Username)
			}

		case strings.HasPrefix(choice, "a"):
			if err := c.addCarpet(ctx, username); err != nil {
				return err
			}

		case strings.HasPrefix(choice, "r"):
			return nil

		default:
			c.printf("Invalid input!\n")
		}
	}
}

// bidderPage resolves a user and enters the bidder menu if the user holds the
// bidding capability.
func (c *Console) bidderPage(ctx context.Context) error {
	user, err := c.getUser(ctx)
	if err != nil {
		return err
	}

	if _, ok := user.(inventory.CanBid); !ok {
		c.printf("Not a bidder!\n")
		return nil
	}
	return c.bidderMenu(ctx, user.Identity().Username)
}

func (c *Console) bidderMenu(ctx context.Context, username string) error {
	c.printf("\nBIDDER MENU:\n")

	for {
		c.printf("\n[A]vailable carpets.\n[B]ids.\n[C]urrent bids.\n[W]on bids.\n[P]lace bid.\n[R]eturn.\n")

		choice, err := c.menuChoice()
		if err != nil {
			return err
		}

		switch {
		case strings.HasPrefix(choice, "a"):
			c.printf("Carpets available for bidding:\n\n")
			for _, item := range c.catalog.ListCarpets(ctx) {
				c.printf("%s\n", renderCarpet(item))
			}

		case strings.HasPrefix(choice, "b"):
			c.printf("Bid history:\n\n")
			history, err := c.bids.BidHistory(ctx, username)
			if err != nil {
				c.printf("%s\n", err)
				continue
			}
			for _, item := range history {
				c.printf("%s\n", renderCarpet(item))
			}

		case strings.HasPrefix(choice, "c"):
			c.printf("Active bids:\n\n")
			active, err := c.bids.ActiveBids(ctx, username)
			if err != nil {
				c.printf("%s\n", err)
				continue
			}
			for _, item := range active {
				c.printf("%s\n", renderCarpet(item))
			}
			if err := c.bidOptions(ctx, username); err != nil {
				return err
			}

		case strings.HasPrefix(choice, "w"):
			// settle exhausted carpets before showing the winnings
			if _, err := c.bids.Settle(ctx); err != nil {
				c.printf("%s\n", err)
				continue
			}
			c.printf("Bids won in auction:\n\n")
			won, err := c.bids.WonCarpets(ctx, username)
			if err != nil {
				c.printf("%s\n", err)
				continue
			}
			for _, item := range won {
				c.printf("%s\n", renderCarpet(item))
			}

		case strings.HasPrefix(choice, "p"):
			if err := c.placeBid(ctx, username); err != nil {
				return err
			}

		case strings.HasPrefix(choice, "r"):
			return nil

		default:
			c.printf("Invalid input!\n")
		}
	}
}

// bidOptions lets a bidder act on one of its active bids.
func (c *Console) bidOptions(ctx context.Context, username string) error {
	for {
		c.printf("\n[C]ancel bid.\n[I]ncrease bid.\n[R]eturn.\n")

		choice, err := c.menuChoice()
		if err != nil {
			return err
		}

		switch {
		case strings.HasPrefix(choice, "c"):
			item, err := c.getCarpet(ctx)
			if err != nil {
				return err
			}
			if err := c.bids.CancelBid(ctx, inbound.CancelBidRequest{CarpetID: item.ID, Username: username}); err != nil {
				c.printf("%s\n", err)
				continue
			}
			c.printf("Bid canceled!\n")

		case strings.HasPrefix(choice, "i"):
			item, err := c.getCarpet(ctx)
			if err != nil {
				return err
			}
			amount, err := c.promptAmount("New price: $")
			if err != nil {
				return err
			}
			if err := c.bids.IncreaseBid(ctx, inbound.PlaceBidRequest{CarpetID: item.ID, Username: username, Amount: amount}); err != nil {
				var tooLow *shared.BidTooLowError
				if errors.As(err, &tooLow) {
					c.printf("Bid cannot be smaller than $%d\n", tooLow.Floor)
					continue
				}
				c.printf("%s\n", err)
				continue
			}
			c.printf("Bid increased!\n")

		case strings.HasPrefix(choice, "r"):
			return nil

		default:
			c.printf("Invalid input!\n")
		}
	}
}

func (c *Console) newBidder(ctx context.Context) error {
	username, secret, err := c.login()
	if err != nil {
		return err
	}

	b, err := c.catalog.RegisterBidder(ctx, inbound.RegisterBidderRequest{Username: username, Secret: secret})
	if err != nil {
		c.printf("%s\n", err)
		return nil
	}
	return c.bidderMenu(ctx, b.Username)
}

func (c *Console) deleteBidder(ctx context.Context) error {
	user, err := c.getUser(ctx)
	if err != nil {
		return err
	}

	if err := c.catalog.RemoveBidder(ctx, user.Identity().Username); err != nil {
		c.printf("%s\n", err)
		return nil
	}
	c.printf("Bidder deleted!\n")
	return nil
}

func (c *Console) addCarpet(ctx context.Context, username string) error {
	c.printf("\n")
	width, err := c.promptFloat("Width: ")
	if err != nil {
		return err
	}
	height, err := c.promptFloat("Height: ")
	if err != nil {
		return err
	}
	price, err := c.promptAmount("Price: $")
	if err != nil {
		return err
	}
	fabric, err := c.prompt("Fabric: ")
	if err != nil {
		return err
	}

	if _, err := c.catalog.AddCarpet(ctx, inbound.AddCarpetRequest{
		AdminUsername: username,
		Width:         width,
		Height:        height,
		Fabric:        fabric,
		BasePrice:     price,
	}); err != nil {
		c.printf("%s\n", err)
		return nil
	}
	c.printf("Carpet added to inventory!\n")
	return nil
}

func (c *Console) placeBid(ctx context.Context, username string) error {
	item, err := c.getCarpet(ctx)
	if err != nil {
		return err
	}
	amount, err := c.promptAmount("Amount: ")
	if err != nil {
		return err
	}

	if err := c.bids.PlaceBid(ctx, inbound.PlaceBidRequest{CarpetID: item.ID, Username: username, Amount: amount}); err != nil {
		if errors.Is(err, shared.ErrSameBidder) {
			c.printf("Cannot place bid. Wait for another bidder to place bid!\n")
			return nil
		}
		c.printf("%s\n", err)
		return nil
	}
	c.printf("Bid successfully placed!\n")
	return nil
}

// getCarpet prompts for carpet ids until one resolves.
func (c *Console) getCarpet(ctx context.Context) (*carpet.Carpet, error) {
	for {
		id, err := c.promptInt("Carpet ID: ")
		if err != nil {
			return nil, err
		}
		item, err := c.catalog.GetCarpet(ctx, id)
		if err != nil {
			c.printf("Please enter a valid Carpet ID!\n")
			continue
		}
		return item, nil
	}
}

// getUser prompts for credentials until the username resolves.
func (c *Console) getUser(ctx context.Context) (shared.User, error) {
	for {
		username, _, err := c.login()
		if err != nil {
			return nil, err
		}
		user, err := c.catalog.GetUser(ctx, username)
		if err != nil {
			c.printf("User not found. Please enter a valid username!\n")
			continue
		}
		return user, nil
	}
}

func (c *Console) login() (username, secret string, err error) {
	c.printf("\n")
	username, err = c.prompt("Username: ")
	if err != nil {
		return "", "", err
	}
	secret, err = c.prompt("Password: ")
	if err != nil {
		return "", "", err
	}
	return username, secret, nil
}

func (c *Console) prompt(label string) (string, error) {
	c.printf("%s", label)
	if !c.in.Scan() {
		return "", errSessionEnded
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// menuChoice reads a menu selection, case-insensitively.
func (c *Console) menuChoice() (string, error) {
	choice, err := c.prompt(">> ")
	if err != nil {
		return "", err
	}
	return strings.ToLower(choice), nil
}

func (c *Console) promptInt(label string) (int, error) {
	for {
		text, err := c.prompt(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(text)
		if err != nil {
			c.printf("Please enter a number!\n")
			continue
		}
		return n, nil
	}
}

func (c *Console) promptAmount(label string) (int64, error) {
	for {
		text, err := c.prompt(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			c.printf("Please enter a number!\n")
			continue
		}
		return n, nil
	}
}

func (c *Console) promptFloat(label string) (float64, error) {
	for {
		text, err := c.prompt(label)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			c.printf("Please enter a number!\n")
			continue
		}
		return f, nil
	}
}

func (c *Console) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(c.out, format, args...); err != nil {
		c.logger.Error().Err(err).Msg("Failed to write console output")
	}
}

func renderCarpet(c *carpet.Carpet) string {
	return fmt.Sprintf("%s %gx%g ID: %d, Highest Bid: $%d, In Stock: %t",
		c.Fabric, c.Width, c.Height, c.ID, c.Price(), c.InStock())
}
