package server

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mrsyedhasan/congresstrading/internal/database"
)

// committeeChamber additionally allows Joint committees.
func committeeChamber(raw string) (string, bool) {
	switch strings.ToLower(raw) {
	case "house":
		return "House", true
	case "senate":
		return "Senate", true
	case "joint":
		return "Joint", true
	}
	return "", false
}

func (s *Server) handleListCommittees(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := parseSkipLimit(r, 100, 1000)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := database.CommitteeFilter{Skip: skip, Limit: limit}
	if v := stringParam(r, "chamber"); v != nil {
		chamber, ok := committeeChamber(*v)
		if !ok {
			writeError(w, http.StatusBadRequest, "chamber must be house, senate, or joint")
			return
		}
		filter.Chamber = &chamber
	}
	if filter.Subcommittee, err = parseBoolParam(r, "subcommittee"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	committees, err := s.db.ListCommittees(filter)
	if err != nil {
		log.Printf("listing committees: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list committees")
		return
	}
	writeJSON(w, http.StatusOK, toCommitteeResponses(committees))
}

func (s *Server) handleMainCommittees(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := parseSkipLimit(r, 100, 1000)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sub := false
	committees, err := s.db.ListCommittees(database.CommitteeFilter{Subcommittee: &sub, Skip: skip, Limit: limit})
	if err != nil {
		log.Printf("listing main committees: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list committees")
		return
	}
	writeJSON(w, http.StatusOK, toCommitteeResponses(committees))
}

func (s *Server) handleSubcommittees(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := parseSkipLimit(r, 100, 1000)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sub := true
	filter := database.CommitteeFilter{Subcommittee: &sub, Skip: skip, Limit: limit}
	parentID, err := parseIntParam(r, "parent_committee_id", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if parentID > 0 {
		id := int64(parentID)
		filter.ParentID = &id
	}

	committees, err := s.db.ListCommittees(filter)
	if err != nil {
		log.Printf("listing subcommittees: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list committees")
		return
	}
	writeJSON(w, http.StatusOK, toCommitteeResponses(committees))
}

func (s *Server) handleCommitteesByChamber(w http.ResponseWriter, r *http.Request) {
	chamber, ok := committeeChamber(chi.URLParam(r, "chamber"))
	if !ok {
		writeError(w, http.StatusBadRequest, "chamber must be house, senate, or joint")
		return
	}
	skip, limit, err := parseSkipLimit(r, 100, 1000)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	committees, err := s.db.ListCommittees(database.CommitteeFilter{Chamber: &chamber, Skip: skip, Limit: limit})
	if err != nil {
		log.Printf("listing %s committees: %v", chamber, err)
		writeError(w, http.StatusInternalServerError, "failed to list committees")
		return
	}
	writeJSON(w, http.StatusOK, toCommitteeResponses(committees))
}

func (s *Server) handleGetCommittee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "committee id must be an integer")
		return
	}

	committee, err := s.db.GetCommitteeByID(id)
	if err != nil {
		log.Printf("loading committee %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to load committee")
		return
	}
	if committee == nil {
		writeError(w, http.StatusNotFound, "committee not found")
		return
	}
	writeJSON(w, http.StatusOK, toCommitteeResponse(*committee))
}

func (s *Server) handleCommitteeMembers(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "committee id must be an integer")
		return
	}
	skip, limit, err := parseSkipLimit(r, 100, 1000)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	committee, err := s.db.GetCommitteeByID(id)
	if err != nil {
		log.Printf("loading committee %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to load committee")
		return
	}
	if committee == nil {
		writeError(w, http.StatusNotFound, "committee not found")
		return
	}

	members, err := s.db.CommitteeMembers(id, skip, limit)
	if err != nil {
		log.Printf("listing members of committee %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to list committee members")
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponses(members))
}

func (s *Server) handleCommitteeMemberships(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "committee id must be an integer")
		return
	}
	skip, limit, err := parseSkipLimit(r, 100, 1000)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	committee, err := s.db.GetCommitteeByID(id)
	if err != nil {
		log.Printf("loading committee %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to load committee")
		return
	}
	if committee == nil {
		writeError(w, http.StatusNotFound, "committee not found")
		return
	}

	memberships, err := s.db.CommitteeMemberships(id, skip, limit)
	if err != nil {
		log.Printf("listing memberships of committee %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to list committee memberships")
		return
	}
	writeJSON(w, http.StatusOK, toMembershipResponses(memberships))
}

func (s *Server) handleMemberCommittees(w http.ResponseWriter, r *http.Request) {
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

	committees, err := s.db.MemberCommittees(memberID, skip, limit)
	if err != nil {
		log.Printf("listing committees for member %d: %v", memberID, err)
		writeError(w, http.StatusInternalServerError, "failed to list member committees")
		return
	}
	writeJSON(w, http.StatusOK, toCommitteeResponses(committees))
}
