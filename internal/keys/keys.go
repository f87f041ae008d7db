// Package keys maps structured auction identifiers onto byte keys in an
// ordered key-value space.
//
// The layout uses three subspaces, each a single-byte prefix:
//
//	'A'  auction records
//	'B'  bidder records
//	'L'  bid logs
//
// Within a subspace, keys are tuples of tagged, self-delimiting elements in
// the style of the FoundationDB tuple layer:
//
//	string  0x02 || escaped UTF-8 bytes || 0x00
//	bytes   0x01 || escaped bytes       || 0x00
//	uint64  0x15 || 8-byte big-endian
//
// A 0x00 byte inside a string or bytes element is escaped as 0x00 0xFF, which
// keeps elements self-delimiting and the overall encoding injective while
// preserving lexicographic order of the raw values. Fixed-width big-endian
// integers sort numerically, so bid-log keys for a fixed scope enumerate in
// sequence-number order.
//
// Concrete shapes:
//
//	auction record     'A' str(name) str(description)              -> status
//	auction field      'A' str(name) str(description) str(field)   -> field value
//	bidder record      'B' str(name)                               -> display name
//	bidder field       'B' str(name) str(field)                    -> field value
//	bid log entry      'L' bytes(scope record key) uint64(seq)     -> bid JSON
//
// All keys of one auction or bidder share its record key as a byte prefix, so
// a single ranged read reconstructs the record; the same holds for each bid
// log scope.
package keys

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/pH14/mini-auction/internal/models"
)

// Subspace prefixes.
const (
	subspaceAuctions = 'A'
	subspaceBidders  = 'B'
	subspaceBidLogs  = 'L'
)

// Field tags for record-scoped values. The bare record key itself holds the
// auction status (or the bidder display name).
const (
	FieldHighestBid    = "highest_bid"
	FieldWinningBidder = "winning_bidder"
	FieldNumBids       = "num_bids"
)

// Element tags.
const (
	tagBytes  = 0x01
	tagString = 0x02
	tagUint   = 0x15
)

// AuctionRecordKey returns the key holding the auction's status. It is also
// the byte prefix grouping every field of the auction.
func AuctionRecordKey(a models.Auction) []byte {
	key := []byte{subspaceAuctions}
	key = appendString(key, a.Name)
	key = appendString(key, a.Description)
	return key
}

// AuctionFieldKey returns the key for one named field of an auction.
func AuctionFieldKey(a models.Auction, field string) []byte {
	return appendString(AuctionRecordKey(a), field)
}

// BidderRecordKey returns the key holding the bidder's display name, and the
// byte prefix grouping the bidder's fields.
func BidderRecordKey(b models.Bidder) []byte {
	return appendString([]byte{subspaceBidders}, b.Name)
}

// BidderFieldKey returns the key for one named field of a bidder.
func BidderFieldKey(b models.Bidder, field string) []byte {
	return appendString(BidderRecordKey(b), field)
}

// BidLogKey returns the key of a single bid-log entry. The scope is the
// record key of the auction or bidder the log belongs to, embedded as a
// self-delimiting bytes element so distinct scopes can never collide.
func BidLogKey(scope []byte, seq uint64) []byte {
	return appendUint(BidLogPrefix(scope), seq)
}

// BidLogPrefix returns the byte prefix shared by every entry of one bid log.
func BidLogPrefix(scope []byte) []byte {
	return appendBytes([]byte{subspaceBidLogs}, scope)
}

// DecodeBidLogSeq extracts the sequence number from a bid-log key produced by
// BidLogKey with the given scope.
func DecodeBidLogSeq(scope, key []byte) (uint64, error) {
	prefix := BidLogPrefix(scope)
	if len(key) != len(prefix)+9 || !bytes.HasPrefix(key, prefix) || key[len(prefix)] != tagUint {
		return 0, fmt.Errorf("malformed bid log key % x", key)
	}
	return binary.BigEndian.Uint64(key[len(prefix)+1:]), nil
}

// SubspacePrefixes returns the prefixes of all three subspaces, for
// administrative whole-keyspace operations.
func SubspacePrefixes() [][]byte {
	return [][]byte{
		{subspaceAuctions},
		{subspaceBidders},
		{subspaceBidLogs},
	}
}

// PrefixEnd returns the key immediately after every key that starts with
// prefix, suitable as an exclusive range end. Trailing 0xFF bytes are dropped
// before incrementing, mirroring FoundationDB's strinc.
func PrefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] != 0xFF {
			end[i]++
			return end[:i+1]
		}
	}
	panic("keys: prefix is entirely 0xFF bytes")
}

func appendString(dst []byte, s string) []byte {
	dst = append(dst, tagString)
	return appendEscaped(dst, []byte(s))
}

func appendBytes(dst, b []byte) []byte {
	dst = append(dst, tagBytes)
	return appendEscaped(dst, b)
}

func appendUint(dst []byte, v uint64) []byte {
	dst = append(dst, tagUint)
	return binary.BigEndian.AppendUint64(dst, v)
}

func appendEscaped(dst, raw []byte) []byte {
	for _, c := range raw {
		dst = append(dst, c)
		if c == 0x00 {
			dst = append(dst, 0xFF)
		}
	}
	return append(dst, 0x00)
}
