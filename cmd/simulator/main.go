// Command simulator races a handful of automated bidders against each other
// on two auctions, then closes the auctions and prints the winners and full
// bid histories. It exercises only the public engine surface and serves as a
// live demonstration of the transactional bidding protocol under contention.
package main

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pH14/mini-auction/internal/auctionerrors"
	"github.com/pH14/mini-auction/internal/engine"
	"github.com/pH14/mini-auction/internal/models"
	"github.com/pH14/mini-auction/internal/store"
	"github.com/pH14/mini-auction/utils"
)

// strategy computes a bidder's next offer from the current highest bid.
type strategy func(current decimal.Decimal) decimal.Decimal

func add(step string) strategy {
	inc := decimal.RequireFromString(step)
	return func(current decimal.Decimal) decimal.Decimal {
		return current.Add(inc)
	}
}

func mul(factor string) strategy {
	f := decimal.RequireFromString(factor)
	return func(current decimal.Decimal) decimal.Decimal {
		next := current.Mul(f).Round(2)
		if !next.GreaterThan(current) {
			next = current.Add(decimal.New(1, -2))
		}
		return next
	}
}

type contestant struct {
	bidder     models.Bidder
	impatience time.Duration
	strategies map[string]strategy // auction name -> bidding strategy
}

func main() {
	ctx := context.Background()
	e := engine.NewAuctionEngine(store.NewMemoryStore())

	cake := models.Auction{Name: "cake", Description: "delicious, delicious cake"}
	toothbrush := models.Auction{Name: "toothbrush", Description: "hardly used"}
	auctions := []models.Auction{cake, toothbrush}

	contestants := []contestant{
		{
			bidder:     models.Bidder{Name: "Paul", DisplayName: "Paul"},
			impatience: 375 * time.Millisecond,
			strategies: map[string]strategy{"cake": add("0.5"), "toothbrush": add("4")},
		},
		{
			bidder:     models.Bidder{Name: "Ori", DisplayName: "Ori"},
			impatience: 500 * time.Millisecond,
			strategies: map[string]strategy{"cake": add("2.25"), "toothbrush": add("1")},
		},
		{
			bidder:     models.Bidder{Name: "Nathan", DisplayName: "Nathan"},
			impatience: 625 * time.Millisecond,
			strategies: map[string]strategy{"cake": mul("1.3"), "toothbrush": add("1.25")},
		},
	}

	if err := e.Reset(ctx); err != nil {
		utils.Fatal("failed to reset keyspace", map[string]any{"error": err.Error()})
	}
	for _, auction := range auctions {
		if err := e.CreateAuction(ctx, auction); err != nil {
			utils.Fatal("failed to create auction", map[string]any{"auction": auction.Name, "error": err.Error()})
		}
	}

	var wg sync.WaitGroup
	for _, c := range contestants {
		wg.Add(1)
		go func(c contestant) {
			defer wg.Done()
			runBidder(ctx, e, c, auctions)
		}(c)
	}

	time.Sleep(6 * time.Second)
	for _, auction := range auctions {
		if err := e.CloseAuction(ctx, auction); err != nil {
			utils.Error("failed to close auction", map[string]any{"auction": auction.Name, "error": err.Error()})
		}
	}
	wg.Wait()

	announceWinners(ctx, e, auctions)
	printHistories(ctx, e, auctions, contestants)
}

// runBidder keeps raising against the current highest bid on every auction
// until all auctions close. A bidder never raises against itself.
func runBidder(ctx context.Context, e *engine.AuctionEngine, c contestant, auctions []models.Auction) {
	if err := e.RegisterBidder(ctx, c.bidder); err != nil {
		utils.Error("failed to register bidder", map[string]any{"bidder": c.bidder.Name, "error": err.Error()})
		return
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	for open := len(auctions); open > 0; {
		open = 0
		for _, auction := range auctions {
			state, err := e.GetAuctionState(ctx, auction)
			if err != nil || state.Status != models.AuctionOpen {
				continue
			}
			open++

			if state.WinningBidder == c.bidder.Name {
				continue // still winning
			}

			offer := c.strategies[auction.Name](state.HighestBid)
			err = e.SubmitBid(ctx, models.Bid{Bidder: c.bidder, Auction: auction, Amount: offer})
			switch {
			case err == nil:
				utils.Info("new highest bid", map[string]any{
					"bidder":  c.bidder.Name,
					"auction": auction.Name,
					"amount":  offer.StringFixed(2),
				})
			case errors.Is(err, auctionerrors.ErrBidTooLow),
				errors.Is(err, auctionerrors.ErrAlreadyWinning),
				errors.Is(err, auctionerrors.ErrAuctionClosed):
				// Lost the race to a concurrent bid; try again next round.
				utils.Debug("bid rejected", map[string]any{
					"bidder":  c.bidder.Name,
					"auction": auction.Name,
					"amount":  offer.StringFixed(2),
					"reason":  err.Error(),
				})
			default:
				utils.Error("bid failed", map[string]any{"bidder": c.bidder.Name, "error": err.Error()})
				return
			}

			time.Sleep(time.Duration(rnd.Float64() / 2 * float64(c.impatience)))
		}
	}
}

func announceWinners(ctx context.Context, e *engine.AuctionEngine, auctions []models.Auction) {
	for _, auction := range auctions {
		state, err := e.GetAuctionState(ctx, auction)
		if err != nil {
			utils.Error("failed to read final state", map[string]any{"auction": auction.Name, "error": err.Error()})
			continue
		}
		utils.Info("auction won", map[string]any{
			"auction":     auction.Name,
			"winner":      state.WinningBidder,
			"winning_bid": state.HighestBid.StringFixed(2),
			"total_bids":  state.BidCount,
		})
	}
}

func printHistories(ctx context.Context, e *engine.AuctionEngine, auctions []models.Auction, contestants []contestant) {
	for _, auction := range auctions {
		bids, err := e.ListBidsForAuction(ctx, auction)
		if err != nil {
			utils.Error("failed to list auction bids", map[string]any{"auction": auction.Name, "error": err.Error()})
			os.Exit(1)
		}
		for i, bid := range bids {
			utils.Info("auction bid history", map[string]any{
				"auction": auction.Name,
				"seq":     i + 1,
				"bidder":  bid.Bidder.Name,
				"amount":  bid.Amount.StringFixed(2),
			})
		}
	}

	for _, c := range contestants {
		bids, err := e.ListBidsForBidder(ctx, c.bidder)
		if err != nil {
			utils.Error("failed to list bidder bids", map[string]any{"bidder": c.bidder.Name, "error": err.Error()})
			os.Exit(1)
		}
		for i, bid := range bids {
			utils.Info("bidder bid history", map[string]any{
				"bidder":  c.bidder.Name,
				"seq":     i + 1,
				"auction": bid.Auction.Name,
				"amount":  bid.Amount.StringFixed(2),
			})
		}
	}
}
