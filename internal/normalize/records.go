package normalize

// Record is a raw trade record as produced by one of the collectors.
// Each source has its own variant so the normalizer's per-source branch
// is checked at compile time; the interface is sealed to this package.
type Record interface {
	isRecord()
}

// SenateFeedRecord is a raw entry from the Senate Stock Watcher feed.
// Field values arrive as strings in whatever shape the feed used.
type SenateFeedRecord struct {
	Senator          string
	State            string
	Party            string
	Ticker           string
	AssetDescription string
	Type             string
	TransactionDate  string
	FilingDate       string
	Amount           string // single value or "low - high" range
	Description      string

	// Present only on asset exchanges.
	ExchangeFromTicker  string
	ExchangeFromCompany string
	ExchangeFromAmount  string
	ExchangeReason      string
}

func (SenateFeedRecord) isRecord() {}

// DisclosureRecord is a best-effort extraction from a free-text House
// disclosure page. Everything but the member name and ticker is optional.
type DisclosureRecord struct {
	MemberName      string
	Ticker          string
	Type            string
	Amount          string
	TransactionDate string
	FilingDate      string
	Description     string
}

func (DisclosureRecord) isRecord() {}
