// Package bidlog maintains the append-only bid histories. Every accepted bid
// lands in two ordered logs, one scoped to the auction and one to the bidder,
// keyed by the scope's bid counter at the time of append. Entries are
// immutable once written.
package bidlog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pH14/mini-auction/internal/keys"
	"github.com/pH14/mini-auction/internal/models"
	"github.com/pH14/mini-auction/internal/store"
)

// entry is the persisted JSON form of one accepted bid.
type entry struct {
	Bidder             string          `json:"bidder"`
	AuctionName        string          `json:"auction_name"`
	AuctionDescription string          `json:"auction_description"`
	Amount             decimal.Decimal `json:"amount"`
}

// Append writes bid at sequence number seq in the log scoped by the given
// record key. Callers invoke it inside the same transaction that updates the
// scope's counter, which is what keeps seq equal to the counter.
func Append(tx store.Transaction, scope []byte, seq uint64, bid models.Bid) error {
	value, err := json.Marshal(entry{
		Bidder:             bid.Bidder.Name,
		AuctionName:        bid.Auction.Name,
		AuctionDescription: bid.Auction.Description,
		Amount:             bid.Amount,
	})
	if err != nil {
		return fmt.Errorf("encode bid log entry: %w", err)
	}
	tx.Set(keys.BidLogKey(scope, seq), value)
	return nil
}

// Index enumerates bid logs with read-only ranged scans.
type Index struct {
	store store.TransactionalStore
}

// NewIndex creates an Index reading through the given store.
func NewIndex(s store.TransactionalStore) *Index {
	return &Index{store: s}
}

// ListBidsForAuction returns the auction's accepted bids in append order. An
// auction with no accepted bids (or no record at all) yields an empty slice.
func (i *Index) ListBidsForAuction(ctx context.Context, auction models.Auction) ([]models.Bid, error) {
	return i.list(ctx, keys.AuctionRecordKey(auction))
}

// ListBidsForBidder returns the bidder's accepted bids in append order.
func (i *Index) ListBidsForBidder(ctx context.Context, bidder models.Bidder) ([]models.Bid, error) {
	return i.list(ctx, keys.BidderRecordKey(bidder))
}

// list scans one scope's log in a single read transaction, so the result is a
// committed snapshot of the log. Safe to call concurrently with active
// bidding; each call restarts the enumeration from the start of the scope.
func (i *Index) list(ctx context.Context, scope []byte) ([]models.Bid, error) {
	bids := []models.Bid{}
	err := i.store.RunTransaction(ctx, func(tx store.Transaction) error {
		pairs, err := tx.GetRange(keys.BidLogPrefix(scope))
		if err != nil {
			return err
		}

		bids = bids[:0]
		for _, pair := range pairs {
			if _, err := keys.DecodeBidLogSeq(scope, pair.Key); err != nil {
				return err
			}
			var e entry
			if err := json.Unmarshal(pair.Value, &e); err != nil {
				return fmt.Errorf("decode bid log entry % x: %w", pair.Key, err)
			}
			bids = append(bids, models.Bid{
				Bidder:  models.Bidder{Name: e.Bidder},
				Auction: models.Auction{Name: e.AuctionName, Description: e.AuctionDescription},
				Amount:  e.Amount,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bids, nil
}
