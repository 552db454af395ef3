package server

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mrsyedhasan/congresstrading/internal/database"
)

// memberChamber canonicalizes a chamber path segment, rejecting anything
// other than house or senate.
func memberChamber(raw string) (string, bool) {
	switch strings.ToLower(raw) {
	case "house":
		return "House", true
	case "senate":
		return "Senate", true
	}
	return "", false
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := parseSkipLimit(r, 100, 1000)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := database.MemberFilter{Skip: skip, Limit: limit}
	if v := stringParam(r, "chamber"); v != nil {
		chamber, ok := memberChamber(*v)
		if !ok {
			writeError(w, http.StatusBadRequest, "chamber must be house or senate")
			return
		}
		filter.Chamber = &chamber
	}
	if v := stringParam(r, "state"); v != nil {
		upper := strings.ToUpper(*v)
		filter.State = &upper
	}
	filter.Party = stringParam(r, "party")
	if filter.HasTrades, err = parseBoolParam(r, "has_trades"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	members, err := s.db.ListMembers(filter)
	if err != nil {
		log.Printf("listing members: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list members")
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponses(members))
}

func (s *Server) handleMostActiveMembers(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntParam(r, "limit", 10)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if limit < 1 || limit > 100 {
		writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
		return
	}

	members, err := s.db.MostActiveMembers(limit)
	if err != nil {
		log.Printf("listing most active members: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list members")
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponses(members))
}

func (s *Server) handleMembersByChamber(w http.ResponseWriter, r *http.Request) {
	chamber, ok := memberChamber(chi.URLParam(r, "chamber"))
	if !ok {
		writeError(w, http.StatusBadRequest, "chamber must be house or senate")
		return
	}
	skip, limit, err := parseSkipLimit(r, 100, 1000)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	members, err := s.db.ListMembers(database.MemberFilter{Chamber: &chamber, Skip: skip, Limit: limit})
	if err != nil {
		log.Printf("listing %s members: %v", chamber, err)
		writeError(w, http.StatusInternalServerError, "failed to list members")
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponses(members))
}

func (s *Server) handleMembersByState(w http.ResponseWriter, r *http.Request) {
	state := strings.ToUpper(chi.URLParam(r, "state"))
	skip, limit, err := parseSkipLimit(r, 100, 1000)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	members, err := s.db.ListMembers(database.MemberFilter{State: &state, Skip: skip, Limit: limit})
	if err != nil {
		log.Printf("listing members for state %s: %v", state, err)
		writeError(w, http.StatusInternalServerError, "failed to list members")
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponses(members))
}

func (s *Server) handleMembersByParty(w http.ResponseWriter, r *http.Request) {
	party := chi.URLParam(r, "party")
	skip, limit, err := parseSkipLimit(r, 100, 1000)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	members, err := s.db.ListMembers(database.MemberFilter{Party: &party, Skip: skip, Limit: limit})
	if err != nil {
		log.Printf("listing members for party %s: %v", party, err)
		writeError(w, http.StatusInternalServerError, "failed to list members")
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponses(members))
}

func (s *Server) handleSearchMembers(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	limit, err := parseIntParam(r, "limit", 20)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if limit < 1 || limit > 100 {
		writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
		return
	}

	members, err := s.db.SearchMembers(name, 0, limit)
	if err != nil {
		log.Printf("searching members for %q: %v", name, err)
		writeError(w, http.StatusInternalServerError, "failed to search members")
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponses(members))
}

func (s *Server) handleGetMember(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "member id must be an integer")
		return
	}

	member, err := s.db.GetMemberByID(id)
	if err != nil {
		log.Printf("loading member %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to load member")
		return
	}
	if member == nil {
		writeError(w, http.StatusNotFound, "member not found")
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponse(*member))
}
