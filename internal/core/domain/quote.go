package domain

// Quote is a derived price breakdown for a candidate selection. It is never
// persisted; callers recompute it whenever the selection or property changes.
type Quote struct {
	Nights        int    `json:"nights"`
	SubtotalCents int64  `json:"subtotalCents"`
	FixedFeeCents int64  `json:"fixedFeeCents"`
	TotalCents    int64  `json:"totalCents"`
	Currency      string `json:"currency"`
}
