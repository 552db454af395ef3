package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// CongressAPIClient fetches member and committee rosters from the
// authenticated Congress API. Without a key the client reports itself
// unconfigured and the collector skips it entirely.
type CongressAPIClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewCongressAPIClient creates a client reading the key from the given
// environment variable.
func NewCongressAPIClient(baseURL, apiKeyEnv string) *CongressAPIClient {
	return &CongressAPIClient{
		baseURL: baseURL,
		apiKey:  os.Getenv(apiKeyEnv),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// IsConfigured returns whether the API key is available.
func (c *CongressAPIClient) IsConfigured() bool {
	return c.apiKey != ""
}

// apiMember is the wire shape of one roster member.
type apiMember struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	State     string `json:"state"`
	Party     string `json:"party"`
	District  string `json:"district"`
	Office    string `json:"office"`
	Phone     string `json:"phone"`
	URL       string `json:"url"`
}

// apiCommittee is the wire shape of one committee listing.
type apiCommittee struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Subcommittee bool   `json:"subcommittee"`
	Purpose      string `json:"purpose"`
	Chair        string `json:"chair"`
}

// FetchMembers returns the roster for a chamber ("house" or "senate").
// The current scope is a single server-side page per chamber.
func (c *CongressAPIClient) FetchMembers(ctx context.Context, chamber string) ([]apiMember, error) {
	var payload struct {
		Results []struct {
			Members []apiMember `json:"members"`
		} `json:"results"`
	}
	url := fmt.Sprintf("%s/118/%s/members.json", c.baseURL, chamber)
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}
	if len(payload.Results) == 0 {
		return nil, nil
	}
	return payload.Results[0].Members, nil
}

// FetchCommittees returns the committee roster for a chamber.
func (c *CongressAPIClient) FetchCommittees(ctx context.Context, chamber string) ([]apiCommittee, error) {
	var payload struct {
		Results []struct {
			Committees []apiCommittee `json:"committees"`
		} `json:"results"`
	}
	url := fmt.Sprintf("%s/118/%s/committees.json", c.baseURL, chamber)
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}
	if len(payload.Results) == 0 {
		return nil, nil
	}
	return payload.Results[0].Committees, nil
}

func (c *CongressAPIClient) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
