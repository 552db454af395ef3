// Package normalize converts raw, source-specific disclosure records into
// canonical trade rows. It owns member resolution, amount and date
// parsing, and exchange enrichment. Failures are isolated per record: a
// bad record is logged, counted, and skipped, never aborting a batch.
package normalize

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mrsyedhasan/congresstrading/internal/database"
)

// Rejection reasons. Records failing these checks are dropped, not stored.
var (
	ErrNoSubject         = errors.New("record has no subject name")
	ErrNoTransactionDate = errors.New("record has no parseable transaction date")
)

// Stats counts per-record outcomes across a normalizer's lifetime.
type Stats struct {
	Stored         int
	Rejected       int
	Failed         int
	MembersCreated int
}

// Normalizer turns Records into stored trades, creating members as a
// side effect of resolving them. It keeps an in-memory snapshot of
// member identities so repeated subjects resolve to the same row.
type Normalizer struct {
	db    *database.DB
	refs  []database.MemberRef
	stats Stats
}

// New creates a Normalizer with a fresh member snapshot.
func New(db *database.DB) (*Normalizer, error) {
	refs, err := db.MemberRefs()
	if err != nil {
		return nil, fmt.Errorf("loading member snapshot: %w", err)
	}
	return &Normalizer{db: db, refs: refs}, nil
}

// Stats returns the outcome counters so far.
func (n *Normalizer) Stats() Stats {
	return n.stats
}

// Ingest normalizes and stores a single raw record under the given
// source label. Rejections and failures are logged and counted; the
// returned error is informational and should not stop the batch.
func (n *Normalizer) Ingest(rec Record, source string) error {
	var err error
	switch r := rec.(type) {
	case SenateFeedRecord:
		err = n.ingestSenate(r, source)
	case DisclosureRecord:
		err = n.ingestDisclosure(r, source)
	default:
		err = fmt.Errorf("unknown record variant %T", rec)
	}

	switch {
	case err == nil:
		n.stats.Stored++
	case errors.Is(err, ErrNoSubject), errors.Is(err, ErrNoTransactionDate):
		n.stats.Rejected++
		log.Printf("rejecting %s record: %v", source, err)
	default:
		n.stats.Failed++
		log.Printf("failed to normalize %s record: %v", source, err)
	}
	return err
}

func (n *Normalizer) ingestSenate(r SenateFeedRecord, source string) error {
	memberID, err := n.resolveOrCreate(r.Senator, "Senate", r.State, r.Party)
	if err != nil {
		return err
	}

	date, err := ParseDate(r.TransactionDate)
	if err != nil {
		return fmt.Errorf("%w: senator %q, raw date %q", ErrNoTransactionDate, r.Senator, r.TransactionDate)
	}

	ticker := strings.TrimSpace(r.Ticker)
	trade := &database.Trade{
		MemberID:        memberID,
		Ticker:          ticker,
		CompanyName:     companyName(ticker, r.AssetDescription),
		TransactionType: NormalizeType(r.Type),
		TransactionDate: date.Format(time.RFC3339),
		Description:     optional(r.Description),
		Source:          source,
	}
	trade.AmountMin, trade.AmountMax = ParseAmount(r.Amount)

	if filed, err := ParseDate(r.FilingDate); err == nil && r.FilingDate != "" {
		s := filed.Format(time.RFC3339)
		trade.FilingDate = &s
	}

	if trade.TransactionType == "Exchange" {
		n.enrichExchange(trade, r.ExchangeFromTicker, r.ExchangeFromCompany, r.ExchangeFromAmount, r.ExchangeReason)
	}

	_, err = n.db.InsertTrade(trade)
	if err != nil {
		return fmt.Errorf("storing senate trade for %q: %w", r.Senator, err)
	}
	return nil
}

func (n *Normalizer) ingestDisclosure(r DisclosureRecord, source string) error {
	memberID, err := n.resolveOrCreate(r.MemberName, "House", "", "")
	if err != nil {
		return err
	}

	date, err := ParseDate(r.TransactionDate)
	if err != nil {
		return fmt.Errorf("%w: member %q, raw date %q", ErrNoTransactionDate, r.MemberName, r.TransactionDate)
	}

	ticker := strings.TrimSpace(r.Ticker)
	trade := &database.Trade{
		MemberID:        memberID,
		Ticker:          ticker,
		CompanyName:     companyName(ticker, ""),
		TransactionType: NormalizeType(r.Type),
		TransactionDate: date.Format(time.RFC3339),
		Description:     optional(r.Description),
		Source:          source,
	}
	trade.AmountMin, trade.AmountMax = ParseAmount(r.Amount)

	if filed, err := ParseDate(r.FilingDate); err == nil && r.FilingDate != "" {
		s := filed.Format(time.RFC3339)
		trade.FilingDate = &s
	}

	_, err = n.db.InsertTrade(trade)
	if err != nil {
		return fmt.Errorf("storing disclosure trade for %q: %w", r.MemberName, err)
	}
	return nil
}

// resolveOrCreate finds the member the subject name refers to, creating
// one with sentinel fields when no existing member matches.
func (n *Normalizer) resolveOrCreate(name, chamber, state, party string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrNoSubject
	}

	if id, ok := ResolveMember(n.refs, name, chamber); ok {
		return id, nil
	}

	if state = strings.TrimSpace(state); state == "" {
		state = "Unknown"
	}
	if party = strings.TrimSpace(party); party == "" {
		party = "Unknown"
	}

	id, err := n.db.InsertMember(&database.Member{
		Name:    name,
		Chamber: chamber,
		State:   state,
		Party:   &party,
	})
	if err != nil {
		return 0, fmt.Errorf("creating member %q: %w", name, err)
	}

	n.refs = append(n.refs, database.MemberRef{ID: id, Name: name, Chamber: chamber})
	n.stats.MembersCreated++
	log.Printf("created member %q (%s)", name, chamber)
	return id, nil
}

// enrichExchange fills the exchange-only fields. The ratio is left unset
// when the counter amount is missing or zero.
func (n *Normalizer) enrichExchange(t *database.Trade, fromTicker, fromCompany, fromAmount, reason string) {
	t.ExchangeFromTicker = optional(fromTicker)
	t.ExchangeFromCompany = optional(fromCompany)
	t.ExchangeReason = optional(reason)

	from, _ := ParseAmount(fromAmount)
	if from == nil {
		return
	}
	t.ExchangeFromAmount = from

	to := t.AmountExact
	if to == nil {
		to = t.AmountMin
	}
	if to != nil && *from != 0 {
		ratio := *to / *from
		t.ExchangeRatio = &ratio
	}
}

// companyName returns the human-readable company name, synthesizing a
// "<TICKER> Corporation" presentation fallback when none is known.
func companyName(ticker, description string) *string {
	if s := strings.TrimSpace(description); s != "" {
		return &s
	}
	if ticker == "" {
		return nil
	}
	s := ticker + " Corporation"
	return &s
}

func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}
