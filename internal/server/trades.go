package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mrsyedhasan/congresstrading/internal/collect"
	"github.com/mrsyedhasan/congresstrading/internal/database"
)

func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := parseSkipLimit(r, 100, 1000)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := database.TradeFilter{Skip: skip, Limit: limit}
	if v := stringParam(r, "ticker"); v != nil {
		upper := strings.ToUpper(*v)
		filter.Ticker = &upper
	}
	if v := stringParam(r, "transaction_type"); v != nil {
		filter.TransactionType = v
	}
	if v := stringParam(r, "chamber"); v != nil {
		chamber, ok := memberChamber(*v)
		if !ok {
			writeError(w, http.StatusBadRequest, "chamber must be house or senate")
			return
		}
		filter.Chamber = &chamber
	}
	filter.Party = stringParam(r, "party")
	memberID, err := parseIntParam(r, "member_id", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if memberID > 0 {
		id := int64(memberID)
		filter.MemberID = &id
	}
	if filter.StartDate, err = parseDateParam(r, "start_date", false); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if filter.EndDate, err = parseDateParam(r, "end_date", true); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if filter.MinAmount, err = parseFloatParam(r, "min_amount"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if filter.MaxAmount, err = parseFloatParam(r, "max_amount"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	trades, err := s.db.ListTrades(filter)
	if err != nil {
		log.Printf("listing trades: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list trades")
		return
	}
	writeJSON(w, http.StatusOK, toTradeWithMemberResponses(trades))
}

func (s *Server) handleRecentTrades(w http.ResponseWriter, r *http.Request) {
	days, err := parseIntParam(r, "days", 30)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if days < 1 || days > 365 {
		writeError(w, http.StatusBadRequest, "days must be between 1 and 365")
		return
	}
	limit, err := parseIntParam(r, "limit", 50)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if limit < 1 || limit > 500 {
		writeError(w, http.StatusBadRequest, "limit must be between 1 and 500")
		return
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339)
	trades, err := s.db.RecentTrades(cutoff, limit)
	if err != nil {
		log.Printf("listing recent trades: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list recent trades")
		return
	}
	writeJSON(w, http.StatusOK, toTradeWithMemberResponses(trades))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	cutoff := time.Now().UTC().AddDate(0, 0, -30).Format(time.RFC3339)
	stats, err := s.db.GetStats(cutoff)
	if err != nil {
		log.Printf("computing stats: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{
		TotalTrades:       stats.TotalTrades,
		TotalMembers:      stats.TotalMembers,
		TotalCommittees:   stats.TotalCommittees,
		RecentTradesCount: stats.RecentTradesCount,
		TopTradedStocks:   stats.TopTradedStocks,
		TradesByChamber:   stats.TradesByChamber,
		TradesByParty:     stats.TradesByParty,
	})
}

func (s *Server) handleTradesByMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := strconv.ParseInt(chi.URLParam(r, "memberID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "member id must be an integer")
		return
	}
	skip, limit, err := parseSkipLimit(r, 100, 1000)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	member, err := s.db.GetMemberByID(memberID)
	if err != nil {
		log.Printf("loading member %d: %v", memberID, err)
		writeError(w, http.StatusInternalServerError, "failed to load member")
		return
	}
	if member == nil {
		writeError(w, http.StatusNotFound, "member not found")
		return
	}

	trades, err := s.db.TradesByMember(memberID, skip, limit)
	if err != nil {
		log.Printf("listing trades for member %d: %v", memberID, err)
		writeError(w, http.StatusInternalServerError, "failed to list trades")
		return
	}
	writeJSON(w, http.StatusOK, toTradeResponses(trades))
}

func (s *Server) handleTradesByTicker(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(chi.URLParam(r, "ticker"))
	skip, limit, err := parseSkipLimit(r, 100, 1000)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	trades, err := s.db.TradesByTicker(ticker, skip, limit)
	if err != nil {
		log.Printf("listing trades for ticker %s: %v", ticker, err)
		writeError(w, http.StatusInternalServerError, "failed to list trades")
		return
	}
	writeJSON(w, http.StatusOK, toTradeWithMemberResponses(trades))
}

func (s *Server) handleGetTrade(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "trade id must be an integer")
		return
	}

	trade, err := s.db.GetTradeByID(id)
	if err != nil {
		log.Printf("loading trade %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to load trade")
		return
	}
	if trade == nil {
		writeError(w, http.StatusNotFound, "trade not found")
		return
	}
	resp := toTradeResponse(trade.Trade)
	m := toMemberResponse(trade.Member)
	resp.Member = &m
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCollectData(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Minute)
	defer cancel()

	collector, err := collect.NewCollector(s.cfg, s.db)
	if err != nil {
		log.Printf("starting collection: %v", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("data collection failed: %v", err))
		return
	}
	result := collector.Collect(ctx)

	writeJSON(w, http.StatusOK, map[string]any{
		"message":            "data collection completed",
		"trades_found":       result.Found,
		"trades_stored":      result.Stored,
		"trades_rejected":    result.Rejected,
		"trades_failed":      result.Failed,
		"members_created":    result.MembersCreated,
		"members_updated":    result.MembersUpdated,
		"committees_created": result.CommitteesCreated,
		"sources":            result.Sources,
	})
}
