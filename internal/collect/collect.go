// Package collect gathers trade disclosures from the configured external
// sources and funnels them through the normalizer. Sources run
// sequentially; a failure in one contributes zero records but never
// stops the next from running.
package collect

import (
	"context"
	"log"
	"strings"

	"github.com/mrsyedhasan/congresstrading/internal/config"
	"github.com/mrsyedhasan/congresstrading/internal/database"
	"github.com/mrsyedhasan/congresstrading/internal/normalize"
)

const userAgent = "congresstrading/1.0 (research use)"

// Source labels stamped on every stored trade for provenance cleanup.
const (
	SourceSenateWatch = "Senate Stock Watcher"
	SourceHouseClerk  = "House Clerk Website"
	SourceCongressAPI = "Congress API"
)

// Result holds the outcome of a collection run.
type Result struct {
	Found             int
	Stored            int
	Rejected          int
	Failed            int
	MembersCreated    int
	MembersUpdated    int
	CommitteesCreated int
	Sources           map[string]int // stored trades per source label
}

// Collector orchestrates the collection run across all sources.
type Collector struct {
	db       *database.DB
	norm     *normalize.Normalizer
	senate   *SenateWatchClient
	house    *DisclosureScraper
	congress *CongressAPIClient
}

// NewCollector creates a collector wired to the configured sources.
func NewCollector(cfg *config.Config, db *database.DB) (*Collector, error) {
	norm, err := normalize.New(db)
	if err != nil {
		return nil, err
	}

	c := &Collector{db: db, norm: norm}

	if sw := cfg.Sources.SenateWatch; sw.Enabled {
		c.senate = NewSenateWatchClient(sw.IndexURL)
	}
	if hd := cfg.Sources.HouseDisclosures; hd.Enabled {
		c.house = NewDisclosureScraper(hd.IndexURL, hd.FeedURL, hd.MaxPages)
	}
	if api := cfg.Sources.CongressAPI; api.Enabled {
		c.congress = NewCongressAPIClient(api.BaseURL, api.APIKeyEnv)
	}

	return c, nil
}

// Collect runs all sources in order: the structured senate feed, the
// free-text House disclosures, then the authenticated roster API when a
// credential is present.
func (c *Collector) Collect(ctx context.Context) *Result {
	r := &Result{Sources: make(map[string]int)}

	if c.senate != nil {
		log.Println("Collecting Senate Stock Watcher data...")
		c.runTradeSource(ctx, r, SourceSenateWatch, func() (int, error) {
			records, err := c.senate.FetchRecords(ctx)
			if err != nil {
				return 0, err
			}
			for _, rec := range records {
				c.norm.Ingest(rec, SourceSenateWatch)
			}
			return len(records), nil
		})
	}

	if c.house != nil {
		log.Println("Collecting House disclosure pages...")
		c.runTradeSource(ctx, r, SourceHouseClerk, func() (int, error) {
			records, err := c.house.FetchRecords(ctx)
			if err != nil {
				return 0, err
			}
			for _, rec := range records {
				c.norm.Ingest(rec, SourceHouseClerk)
			}
			return len(records), nil
		})
	}

	if c.congress != nil {
		if c.congress.IsConfigured() {
			log.Println("Collecting Congress API rosters...")
			c.collectRosters(ctx, r)
		} else {
			log.Println("Congress API key not set, skipping roster collection")
		}
	}

	stats := c.norm.Stats()
	r.Stored = stats.Stored
	r.Rejected = stats.Rejected
	r.Failed = stats.Failed
	r.MembersCreated += stats.MembersCreated

	log.Printf("Collection complete: %d found, %d stored, %d rejected, %d failed",
		r.Found, r.Stored, r.Rejected, r.Failed)
	return r
}

// runTradeSource runs one trade-producing source, isolating its failure.
func (c *Collector) runTradeSource(ctx context.Context, r *Result, label string, fetch func() (int, error)) {
	before := c.norm.Stats().Stored

	found, err := fetch()
	if err != nil {
		log.Printf("source %q failed: %v", label, err)
		return
	}
	r.Found += found
	r.Sources[label] = c.norm.Stats().Stored - before
}

// collectRosters upserts members and committees from the roster API.
func (c *Collector) collectRosters(ctx context.Context, r *Result) {
	for _, chamber := range []string{"house", "senate"} {
		members, err := c.congress.FetchMembers(ctx, chamber)
		if err != nil {
			log.Printf("fetching %s members failed: %v", chamber, err)
		} else {
			c.upsertMembers(r, chamber, members)
		}

		committees, err := c.congress.FetchCommittees(ctx, chamber)
		if err != nil {
			log.Printf("fetching %s committees failed: %v", chamber, err)
		} else {
			c.upsertCommittees(r, chamber, committees)
		}
	}
}

func (c *Collector) upsertMembers(r *Result, chamber string, members []apiMember) {
	title := titleChamber(chamber)
	refs, err := c.db.MemberRefs()
	if err != nil {
		log.Printf("loading member snapshot: %v", err)
		return
	}

	for _, am := range members {
		name := strings.TrimSpace(am.FirstName + " " + am.LastName)
		if name == "" {
			continue
		}

		if id, ok := normalize.ResolveMember(refs, name, title); ok {
			// Contact fields may be refreshed by later runs.
			err := c.db.UpdateMemberContact(id, optional(am.Office), optional(am.Phone), optional(am.URL))
			if err != nil {
				log.Printf("updating member %q: %v", name, err)
				continue
			}
			r.MembersUpdated++
			continue
		}

		m := &database.Member{
			Name:    name,
			Chamber: title,
			State:   valueOr(am.State, "Unknown"),
			Party:   optional(am.Party),
			Office:  optional(am.Office),
			Phone:   optional(am.Phone),
			Website: optional(am.URL),
		}
		if chamber == "house" {
			m.District = optional(am.District)
		}

		id, err := c.db.InsertMember(m)
		if err != nil {
			log.Printf("inserting member %q: %v", name, err)
			continue
		}
		refs = append(refs, database.MemberRef{ID: id, Name: name, Chamber: title})
		r.MembersCreated++
	}
}

func (c *Collector) upsertCommittees(r *Result, chamber string, committees []apiCommittee) {
	title := titleChamber(chamber)

	for _, ac := range committees {
		if ac.ID == "" {
			continue
		}

		existing, err := c.db.GetCommitteeByCode(ac.ID)
		if err != nil {
			log.Printf("looking up committee %q: %v", ac.ID, err)
			continue
		}
		if existing != nil {
			continue
		}

		id, err := c.db.InsertCommittee(&database.Committee{
			Name:         ac.Name,
			Code:         ac.ID,
			Chamber:      title,
			Subcommittee: ac.Subcommittee,
			Description:  optional(ac.Purpose),
		})
		if err != nil {
			log.Printf("inserting committee %q: %v", ac.ID, err)
			continue
		}
		r.CommitteesCreated++

		if ac.Chair != "" {
			c.recordChair(id, ac.Chair, title)
		}
	}
}

// recordChair creates a Chair membership when the payload names one and
// the name resolves to a known member.
func (c *Collector) recordChair(committeeID int64, chair, chamber string) {
	refs, err := c.db.MemberRefs()
	if err != nil {
		return
	}
	memberID, ok := normalize.ResolveMember(refs, chair, chamber)
	if !ok {
		return
	}
	position := "Chair"
	_, err = c.db.InsertMembership(&database.CommitteeMembership{
		MemberID:    memberID,
		CommitteeID: committeeID,
		Position:    &position,
	})
	if err != nil {
		log.Printf("recording chair for committee %d: %v", committeeID, err)
	}
}

func titleChamber(chamber string) string {
	switch chamber {
	case "house":
		return "House"
	case "senate":
		return "Senate"
	}
	return chamber
}

func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

func valueOr(s, fallback string) string {
	if s = strings.TrimSpace(s); s == "" {
		return fallback
	}
	return s
}
