package domain

import "sort"

// Evaluation is the result of evaluating the bids of one auction.
type Evaluation struct {
	Highest *Bid
	Lowest  *Bid
	// up to three highest bids, highest first
	Top []*Bid
}

// Evaluator computes bid statistics for an auction in a single call.
type Evaluator interface {
	Evaluate(auction *Auction) (Evaluation, error)
}

// BidEvaluator is the default Evaluator, stateless and safe to share.
type BidEvaluator struct{}

func (BidEvaluator) Evaluate(auction *Auction) (Evaluation, error) {
	bids := auction.BidsSnapshot()
	if len(bids) == 0 {
		return Evaluation{}, ErrNoBids
	}

	highest, _ := auction.HighestBid()
	lowest := bids[0]
	for _, b := range bids[1:] {
		if b.Amount < lowest.Amount {
			lowest = b
		}
	}

	// stable keeps bidding order among equal amounts
	sort.SliceStable(bids, func(i, j int) bool { return bids[i].Amount > bids[j].Amount })
	if len(bids) > 3 {
		bids = bids[:3]
	}

	return Evaluation{Highest: highest, Lowest: lowest, Top: bids}, nil
}
