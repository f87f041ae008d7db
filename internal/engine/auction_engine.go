// Package engine implements the transactional auction operations. Every
// operation is exactly one logical transaction against the store: it re-reads
// current committed state, validates its preconditions, and writes its
// effects, all through the transaction handle. The store may re-run an
// operation body after a conflict, so bodies stay free of outside effects;
// the engine itself never locks and never caches state across calls.
package engine

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/pH14/mini-auction/internal/auctionerrors"
	"github.com/pH14/mini-auction/internal/bidlog"
	"github.com/pH14/mini-auction/internal/keys"
	"github.com/pH14/mini-auction/internal/models"
	"github.com/pH14/mini-auction/internal/store"
)

// AuctionEngine owns all auction and bidder state exclusively through the
// injected store.
type AuctionEngine struct {
	store store.TransactionalStore
	index *bidlog.Index
}

// NewAuctionEngine creates an engine over the given store.
func NewAuctionEngine(s store.TransactionalStore) *AuctionEngine {
	return &AuctionEngine{
		store: s,
		index: bidlog.NewIndex(s),
	}
}

// CreateAuction opens a new auction with no bids. Fails with
// auctionerrors.ErrAuctionExists if the (name, description) pair is taken.
func (e *AuctionEngine) CreateAuction(ctx context.Context, auction models.Auction) error {
	if auction.Name == "" {
		return fmt.Errorf("engine: %w - auction name must not be empty", auctionerrors.ErrInvalidInput)
	}

	return e.store.RunTransaction(ctx, func(tx store.Transaction) error {
		recordKey := keys.AuctionRecordKey(auction)
		existing, err := tx.Get(recordKey)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("create %s: %w", auction, auctionerrors.ErrAuctionExists)
		}

		tx.Set(recordKey, []byte(models.AuctionOpen))
		tx.Set(keys.AuctionFieldKey(auction, keys.FieldHighestBid), []byte(decimal.Zero.String()))
		tx.Set(keys.AuctionFieldKey(auction, keys.FieldWinningBidder), []byte{})
		tx.Set(keys.AuctionFieldKey(auction, keys.FieldNumBids), []byte("0"))
		return nil
	})
}

// CloseAuction transitions the auction to CLOSED. Closing an already-closed
// auction is an idempotent no-op, not an error. Fails with
// auctionerrors.ErrAuctionNotFound if the auction was never created.
func (e *AuctionEngine) CloseAuction(ctx context.Context, auction models.Auction) error {
	return e.store.RunTransaction(ctx, func(tx store.Transaction) error {
		recordKey := keys.AuctionRecordKey(auction)
		existing, err := tx.Get(recordKey)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("close %s: %w", auction, auctionerrors.ErrAuctionNotFound)
		}

		tx.Set(recordKey, []byte(models.AuctionClosed))
		return nil
	})
}

// RegisterBidder records a new bidder with a zero bid counter. Fails with
// auctionerrors.ErrBidderExists if the name is taken.
func (e *AuctionEngine) RegisterBidder(ctx context.Context, bidder models.Bidder) error {
	if bidder.Name == "" {
		return fmt.Errorf("engine: %w - bidder name must not be empty", auctionerrors.ErrInvalidInput)
	}

	return e.store.RunTransaction(ctx, func(tx store.Transaction) error {
		recordKey := keys.BidderRecordKey(bidder)
		existing, err := tx.Get(recordKey)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("register %s: %w", bidder, auctionerrors.ErrBidderExists)
		}

		tx.Set(recordKey, []byte(bidder.DisplayName))
		tx.Set(keys.BidderFieldKey(bidder, keys.FieldNumBids), []byte("0"))
		return nil
	})
}

// GetAuctionState reads the auction's current committed state. Pure read.
func (e *AuctionEngine) GetAuctionState(ctx context.Context, auction models.Auction) (models.AuctionState, error) {
	var state models.AuctionState
	err := e.store.RunTransaction(ctx, func(tx store.Transaction) error {
		status, err := tx.Get(keys.AuctionRecordKey(auction))
		if err != nil {
			return err
		}
		if status == nil {
			return fmt.Errorf("state of %s: %w", auction, auctionerrors.ErrAuctionNotFound)
		}

		highest, err := readDecimal(tx, keys.AuctionFieldKey(auction, keys.FieldHighestBid))
		if err != nil {
			return err
		}
		winner, err := tx.Get(keys.AuctionFieldKey(auction, keys.FieldWinningBidder))
		if err != nil {
			return err
		}
		count, err := readCounter(tx, keys.AuctionFieldKey(auction, keys.FieldNumBids))
		if err != nil {
			return err
		}

		state = models.AuctionState{
			Status:        models.AuctionStatus(status),
			HighestBid:    highest,
			WinningBidder: string(winner),
			BidCount:      count,
		}
		return nil
	})
	if err != nil {
		return models.AuctionState{}, err
	}
	return state, nil
}

// SubmitBid validates and applies one bid. On acceptance it atomically
// updates the highest bid and winning bidder, increments both bid counters,
// and appends the bid to the auction's and the bidder's logs; all effects
// commit together or not at all. Precondition failures surface as the typed
// errors of package auctionerrors. Among racing submissions, whichever
// transaction commits first wins; the loser is re-evaluated against the
// updated highest bid.
func (e *AuctionEngine) SubmitBid(ctx context.Context, bid models.Bid) error {
	if !bid.Amount.IsPositive() {
		return fmt.Errorf("engine: %w - bid amount must be positive, got %s", auctionerrors.ErrInvalidInput, bid.Amount)
	}

	return e.store.RunTransaction(ctx, func(tx store.Transaction) error {
		auctionKey := keys.AuctionRecordKey(bid.Auction)
		status, err := tx.Get(auctionKey)
		if err != nil {
			return err
		}
		if status == nil {
			return fmt.Errorf("bid on %s: %w", bid.Auction, auctionerrors.ErrAuctionNotFound)
		}
		if models.AuctionStatus(status) == models.AuctionClosed {
			return fmt.Errorf("bid on %s: %w", bid.Auction, auctionerrors.ErrAuctionClosed)
		}

		highest, err := readDecimal(tx, keys.AuctionFieldKey(bid.Auction, keys.FieldHighestBid))
		if err != nil {
			return err
		}
		if !bid.Amount.GreaterThan(highest) {
			return fmt.Errorf("bid of %s on %s: current highest is %s: %w",
				bid.Amount, bid.Auction, highest, auctionerrors.ErrBidTooLow)
		}

		winner, err := tx.Get(keys.AuctionFieldKey(bid.Auction, keys.FieldWinningBidder))
		if err != nil {
			return err
		}
		if string(winner) == bid.Bidder.Name {
			return fmt.Errorf("bid on %s by %s: %w", bid.Auction, bid.Bidder, auctionerrors.ErrAlreadyWinning)
		}

		bidderKey := keys.BidderRecordKey(bid.Bidder)
		if registered, err := tx.Get(bidderKey); err != nil {
			return err
		} else if registered == nil {
			return fmt.Errorf("bid by %s: %w", bid.Bidder, auctionerrors.ErrBidderNotFound)
		}

		// Auction side: new highest bid, counter, log entry at the new count.
		auctionBids, err := readCounter(tx, keys.AuctionFieldKey(bid.Auction, keys.FieldNumBids))
		if err != nil {
			return err
		}
		auctionBids++
		tx.Set(keys.AuctionFieldKey(bid.Auction, keys.FieldHighestBid), []byte(bid.Amount.String()))
		tx.Set(keys.AuctionFieldKey(bid.Auction, keys.FieldWinningBidder), []byte(bid.Bidder.Name))
		tx.Set(keys.AuctionFieldKey(bid.Auction, keys.FieldNumBids), []byte(strconv.FormatUint(auctionBids, 10)))
		if err := bidlog.Append(tx, auctionKey, auctionBids, bid); err != nil {
			return err
		}

		// Bidder side: counter and log entry.
		bidderBids, err := readCounter(tx, keys.BidderFieldKey(bid.Bidder, keys.FieldNumBids))
		if err != nil {
			return err
		}
		bidderBids++
		tx.Set(keys.BidderFieldKey(bid.Bidder, keys.FieldNumBids), []byte(strconv.FormatUint(bidderBids, 10)))
		return bidlog.Append(tx, bidderKey, bidderBids, bid)
	})
}

// ListBidsForAuction returns the auction's bid history in append order.
func (e *AuctionEngine) ListBidsForAuction(ctx context.Context, auction models.Auction) ([]models.Bid, error) {
	return e.index.ListBidsForAuction(ctx, auction)
}

// ListBidsForBidder returns the bidder's bid history in append order.
func (e *AuctionEngine) ListBidsForBidder(ctx context.Context, bidder models.Bidder) ([]models.Bid, error) {
	return e.index.ListBidsForBidder(ctx, bidder)
}

// Reset clears every auction, bidder, and bid-log key in one transaction.
// Administrative use only, e.g. before a simulation run.
func (e *AuctionEngine) Reset(ctx context.Context) error {
	return e.store.RunTransaction(ctx, func(tx store.Transaction) error {
		for _, prefix := range keys.SubspacePrefixes() {
			tx.ClearRange(prefix)
		}
		return nil
	})
}

func readDecimal(tx store.Transaction, key []byte) (decimal.Decimal, error) {
	raw, err := tx.Get(key)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if raw == nil {
		return decimal.Decimal{}, fmt.Errorf("missing decimal field at % x", key)
	}
	value, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("corrupt decimal field at % x: %w", key, err)
	}
	return value, nil
}

func readCounter(tx store.Transaction, key []byte) (uint64, error) {
	raw, err := tx.Get(key)
	if err != nil {
		return 0, err
	}
	if raw == nil {
		return 0, fmt.Errorf("missing counter field at % x", key)
	}
	count, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt counter field at % x: %w", key, err)
	}
	return count, nil
}
