package bids

type BidRequest struct {
	TenderId   string  `json:"tender_id" validate:"required"`
	VendorName string  `json:"vendor_name" validate:"required"`
	Proposal   string  `json:"proposal" validate:"required"`
	Price      float64 `json:"price" validate:"required"`
}

// Score and Reasoning stay nil until the tender is evaluated, so both are
// absent from the stored document and from JSON bodies before that.
type Bid struct {
	BidId       string   `json:"bid_id" firestore:"bid_id"`
	TenderId    string   `json:"tender_id" firestore:"tender_id"`
	VendorName  string   `json:"vendor_name" firestore:"vendor_name"`
	Proposal    string   `json:"proposal" firestore:"proposal"`
	Price       float64  `json:"price" firestore:"price"`
	BidHash     string   `json:"bid_hash" firestore:"bid_hash"`
	SubmittedAt string   `json:"submitted_at" firestore:"submitted_at"`
	Score       *float64 `json:"score,omitempty" firestore:"score,omitempty"`
	Reasoning   *string  `json:"reasoning,omitempty" firestore:"reasoning,omitempty"`
}

// BidContent is the canonical payload the bid content hash is taken over.
type BidContent struct {
	Proposal string  `json:"proposal"`
	Price    float64 `json:"price"`
}

type BidResponse struct {
	BidId   string `json:"bid_id"`
	TxId    string `json:"tx_id"`
	BidHash string `json:"bid_hash"`
}

type ResultsResponse struct {
	TenderId   string `json:"tender_id"`
	RankedBids []Bid  `json:"ranked_bids"`
}
