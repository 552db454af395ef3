package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/mrsyedhasan/congresstrading/internal/database"
)

// errorBody is the JSON error envelope: {"detail": "..."}.
type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorBody{Detail: detail})
}

// --- response shapes ---

type memberResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Chamber   string  `json:"chamber"`
	State     string  `json:"state"`
	Party     *string `json:"party"`
	District  *string `json:"district"`
	Office    *string `json:"office"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Website   *string `json:"website"`
	Bio       *string `json:"bio"`
	CreatedAt *string `json:"created_at"`
	UpdatedAt *string `json:"updated_at"`
}

type tradeResponse struct {
	ID              int64    `json:"id"`
	MemberID        int64    `json:"member_id"`
	Ticker          string   `json:"ticker"`
	CompanyName     *string  `json:"company_name"`
	TransactionType string   `json:"transaction_type"`
	TransactionDate string   `json:"transaction_date"`
	AmountMin       *float64 `json:"amount_min"`
	AmountMax       *float64 `json:"amount_max"`
	AmountExact     *float64 `json:"amount_exact"`

	ExchangeFromTicker  *string  `json:"exchange_from_ticker,omitempty"`
	ExchangeFromCompany *string  `json:"exchange_from_company,omitempty"`
	ExchangeFromAmount  *float64 `json:"exchange_from_amount,omitempty"`
	ExchangeRatio       *float64 `json:"exchange_ratio,omitempty"`
	ExchangeReason      *string  `json:"exchange_reason,omitempty"`

	Description *string         `json:"description"`
	Source      string          `json:"source"`
	FilingDate  *string         `json:"filing_date"`
	CreatedAt   *string         `json:"created_at"`
	UpdatedAt   *string         `json:"updated_at"`
	Member      *memberResponse `json:"member,omitempty"`
}

type committeeResponse struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Code              string  `json:"code"`
	Chamber           string  `json:"chamber"`
	Subcommittee      bool    `json:"subcommittee"`
	ParentCommitteeID *int64  `json:"parent_committee_id"`
	Description       *string `json:"description"`
	CreatedAt         *string `json:"created_at"`
	UpdatedAt         *string `json:"updated_at"`
}

type membershipResponse struct {
	ID          int64   `json:"id"`
	MemberID    int64   `json:"member_id"`
	CommitteeID int64   `json:"committee_id"`
	Position    *string `json:"position"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	CreatedAt   *string `json:"created_at"`
}

type statsResponse struct {
	TotalTrades       int                    `json:"total_trades"`
	TotalMembers      int                    `json:"total_members"`
	TotalCommittees   int                    `json:"total_committees"`
	RecentTradesCount int                    `json:"recent_trades_count"`
	TopTradedStocks   []database.TickerCount `json:"top_traded_stocks"`
	TradesByChamber   map[string]int         `json:"trades_by_chamber"`
	TradesByParty     map[string]int         `json:"trades_by_party"`
}

func toMemberResponse(m database.Member) memberResponse {
	return memberResponse{
		ID: m.ID, Name: m.Name, Chamber: m.Chamber, State: m.State,
		Party: m.Party, District: m.District, Office: m.Office, Phone: m.Phone,
		Email: m.Email, Website: m.Website, Bio: m.Bio,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func toMemberResponses(members []database.Member) []memberResponse {
	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberResponse(m))
	}
	return out
}

func toTradeResponse(t database.Trade) tradeResponse {
	return tradeResponse{
		ID: t.ID, MemberID: t.MemberID, Ticker: t.Ticker, CompanyName: t.CompanyName,
		TransactionType: t.TransactionType, TransactionDate: t.TransactionDate,
		AmountMin: t.AmountMin, AmountMax: t.AmountMax, AmountExact: t.AmountExact,
		ExchangeFromTicker: t.ExchangeFromTicker, ExchangeFromCompany: t.ExchangeFromCompany,
		ExchangeFromAmount: t.ExchangeFromAmount, ExchangeRatio: t.ExchangeRatio,
		ExchangeReason: t.ExchangeReason,
		Description:    t.Description, Source: t.Source, FilingDate: t.FilingDate,
		CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt,
	}
}

func toTradeResponses(trades []database.Trade) []tradeResponse {
	out := make([]tradeResponse, 0, len(trades))
	for _, t := range trades {
		out = append(out, toTradeResponse(t))
	}
	return out
}

func toTradeWithMemberResponses(trades []database.TradeWithMember) []tradeResponse {
	out := make([]tradeResponse, 0, len(trades))
	for _, tm := range trades {
		tr := toTradeResponse(tm.Trade)
		m := toMemberResponse(tm.Member)
		tr.Member = &m
		out = append(out, tr)
	}
	return out
}

func toCommitteeResponse(c database.Committee) committeeResponse {
	return committeeResponse{
		ID: c.ID, Name: c.Name, Code: c.Code, Chamber: c.Chamber,
		Subcommittee: c.Subcommittee, ParentCommitteeID: c.ParentCommitteeID,
		Description: c.Description, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func toCommitteeResponses(committees []database.Committee) []committeeResponse {
	out := make([]committeeResponse, 0, len(committees))
	for _, c := range committees {
		out = append(out, toCommitteeResponse(c))
	}
	return out
}

func toMembershipResponses(memberships []database.CommitteeMembership) []membershipResponse {
	out := make([]membershipResponse, 0, len(memberships))
	for _, ms := range memberships {
		out = append(out, membershipResponse{
			ID: ms.ID, MemberID: ms.MemberID, CommitteeID: ms.CommitteeID,
			Position: ms.Position, StartDate: ms.StartDate, EndDate: ms.EndDate,
			CreatedAt: ms.CreatedAt,
		})
	}
	return out
}

// --- query parameter helpers ---

// invalidParamError marks a client-side parameter problem.
type invalidParamError struct{ msg string }

func (e invalidParamError) Error() string { return e.msg }

// parseSkipLimit parses the pagination pair, enforcing the limit ceiling.
func parseSkipLimit(r *http.Request, defaultLimit, maxLimit int) (skip, limit int, err error) {
	skip, err = parseIntParam(r, "skip", 0)
	if err != nil {
		return 0, 0, err
	}
	if skip < 0 {
		return 0, 0, invalidParamError{"skip must be >= 0"}
	}

	limit, err = parseIntParam(r, "limit", defaultLimit)
	if err != nil {
		return 0, 0, err
	}
	if limit < 1 || limit > maxLimit {
		return 0, 0, invalidParamError{fmt.Sprintf("limit must be between 1 and %d", maxLimit)}
	}
	return skip, limit, nil
}

func parseIntParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidParamError{fmt.Sprintf("%s must be an integer", name)}
	}
	return v, nil
}

func parseFloatParam(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, invalidParamError{fmt.Sprintf("%s must be a number", name)}
	}
	return &v, nil
}

func parseBoolParam(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, invalidParamError{fmt.Sprintf("%s must be true or false", name)}
	}
	return &v, nil
}

func stringParam(r *http.Request, name string) *string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	return &raw
}

// parseDateParam accepts RFC3339 or a bare date. A bare date is taken as
// the start of the day, or the end of it when endOfDay is set, so date
// ranges stay inclusive.
func parseDateParam(r *http.Request, name string, endOfDay bool) (*string, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		s := t.UTC().Format(time.RFC3339)
		return &s, nil
	}

	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, invalidParamError{fmt.Sprintf("%s must be an RFC3339 timestamp or YYYY-MM-DD date", name)}
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}
	s := t.UTC().Format(time.RFC3339)
	return &s, nil
}
