package database

// Member represents a member of Congress.
type Member struct {
	ID        int64
	Name      string
	Chamber   string // "House" or "Senate"
	State     string
	Party     *string
	District  *string // House members only
	Office    *string
	Phone     *string
	Email     *string
	Website   *string
	Bio       *string
	CreatedAt *string
	UpdatedAt *string
}

// MemberRef is the slice of member identity used by fuzzy name resolution.
type MemberRef struct {
	ID      int64
	Name    string
	Chamber string
}

// Committee represents a congressional committee.
type Committee struct {
	ID                int64
	Name              string
	Code              string
	Chamber           string // "House", "Senate", or "Joint"
	Subcommittee      bool
	ParentCommitteeID *int64
	Description       *string
	CreatedAt         *string
	UpdatedAt         *string
}

// CommitteeMembership links a member to a committee over a time interval.
type CommitteeMembership struct {
	ID          int64
	MemberID    int64
	CommitteeID int64
	Position    *string
	StartDate   *string
	EndDate     *string // nil = ongoing
	CreatedAt   *string
}

// Trade represents a disclosed stock transaction by a member.
// Timestamps are stored as RFC3339 UTC text so lexicographic SQL
// comparisons order chronologically.
type Trade struct {
	ID              int64
	MemberID        int64
	Ticker          string
	CompanyName     *string
	TransactionType string // "Buy", "Sell", "Exchange"
	TransactionDate string
	AmountMin       *float64
	AmountMax       *float64
	AmountExact     *float64

	// Populated only for Exchange transactions.
	ExchangeFromTicker  *string
	ExchangeFromCompany *string
	ExchangeFromAmount  *float64
	ExchangeRatio       *float64 // to-amount / from-amount
	ExchangeReason      *string

	Description *string
	Source      string
	FilingDate  *string
	CreatedAt   *string
	UpdatedAt   *string
}

// TradeWithMember is a trade joined with its owning member.
type TradeWithMember struct {
	Trade
	Member Member
}

// TradeFilter narrows ListTrades results. Nil fields are ignored.
type TradeFilter struct {
	MemberID        *int64
	Chamber         *string
	Party           *string
	Ticker          *string // substring, case-insensitive
	TransactionType *string
	StartDate       *string // RFC3339, inclusive
	EndDate         *string // RFC3339, inclusive
	MinAmount       *float64
	MaxAmount       *float64
	Skip            int
	Limit           int
}

// MemberFilter narrows ListMembers results. Nil fields are ignored.
type MemberFilter struct {
	Chamber   *string
	Party     *string
	State     *string
	HasTrades *bool
	Skip      int
	Limit     int
}

// CommitteeFilter narrows ListCommittees results. Nil fields are ignored.
type CommitteeFilter struct {
	Chamber      *string
	Subcommittee *bool
	ParentID     *int64
	Skip         int
	Limit        int
}

// TickerCount is a ticker with its trade count, for the stats rollup.
type TickerCount struct {
	Ticker     string `json:"ticker"`
	TradeCount int    `json:"trade_count"`
}

// Stats contains the dashboard aggregate statistics.
type Stats struct {
	TotalTrades       int
	TotalMembers      int
	TotalCommittees   int
	RecentTradesCount int // last 30 days
	TopTradedStocks   []TickerCount
	TradesByChamber   map[string]int
	TradesByParty     map[string]int
}
