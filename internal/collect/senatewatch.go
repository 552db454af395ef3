package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/mrsyedhasan/congresstrading/internal/normalize"
)

// SenateWatchClient fetches the Senate Stock Watcher structured feed: a
// remote content index listing JSON files, each holding a batch of trades.
type SenateWatchClient struct {
	indexURL string
	client   *http.Client
}

// NewSenateWatchClient creates a client for the given content index URL.
func NewSenateWatchClient(indexURL string) *SenateWatchClient {
	return &SenateWatchClient{
		indexURL: indexURL,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// indexEntry is one file listing in the content index.
type indexEntry struct {
	Name        string `json:"name"`
	DownloadURL string `json:"download_url"`
}

// senateTrade is the wire shape of one feed entry. Amounts arrive either
// as a single range string or as separate min/max strings, depending on
// the file's vintage.
type senateTrade struct {
	Senator          string `json:"senator"`
	State            string `json:"state"`
	Party            string `json:"party"`
	Ticker           string `json:"ticker"`
	AssetDescription string `json:"asset_description"`
	Type             string `json:"type"`
	TransactionDate  string `json:"transaction_date"`
	FilingDate       string `json:"filing_date"`
	Amount           string `json:"amount"`
	AmountMin        string `json:"amount_min"`
	AmountMax        string `json:"amount_max"`
	Comment          string `json:"comment"`

	ExchangeFromTicker  string `json:"exchange_from_ticker"`
	ExchangeFromCompany string `json:"exchange_from_company"`
	ExchangeFromAmount  string `json:"exchange_from_amount"`
	ExchangeReason      string `json:"exchange_reason"`
}

// FetchRecords walks the content index and flat-maps every listed JSON
// file into raw records. A failure on one file is logged and skipped;
// only an unreachable index fails the whole fetch.
func (c *SenateWatchClient) FetchRecords(ctx context.Context) ([]normalize.SenateFeedRecord, error) {
	entries, err := c.fetchIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching content index: %w", err)
	}

	var records []normalize.SenateFeedRecord
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name, ".json") {
			continue
		}
		fileRecords, err := c.fetchFile(ctx, entry.DownloadURL)
		if err != nil {
			log.Printf("skipping senate feed file %s: %v", entry.Name, err)
			continue
		}
		records = append(records, fileRecords...)
	}
	return records, nil
}

func (c *SenateWatchClient) fetchIndex(ctx context.Context) ([]indexEntry, error) {
	var entries []indexEntry
	if err := c.getJSON(ctx, c.indexURL, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *SenateWatchClient) fetchFile(ctx context.Context, url string) ([]normalize.SenateFeedRecord, error) {
	var trades []senateTrade
	if err := c.getJSON(ctx, url, &trades); err != nil {
		return nil, err
	}

	records := make([]normalize.SenateFeedRecord, 0, len(trades))
	for _, t := range trades {
		amount := t.Amount
		if amount == "" && t.AmountMin != "" {
			amount = t.AmountMin
			if t.AmountMax != "" {
				amount += " - " + t.AmountMax
			}
		}
		records = append(records, normalize.SenateFeedRecord{
			Senator:             t.Senator,
			State:               t.State,
			Party:               t.Party,
			Ticker:              t.Ticker,
			AssetDescription:    t.AssetDescription,
			Type:                t.Type,
			TransactionDate:     t.TransactionDate,
			FilingDate:          t.FilingDate,
			Amount:              amount,
			Description:         t.Comment,
			ExchangeFromTicker:  t.ExchangeFromTicker,
			ExchangeFromCompany: t.ExchangeFromCompany,
			ExchangeFromAmount:  t.ExchangeFromAmount,
			ExchangeReason:      t.ExchangeReason,
		})
	}
	return records, nil
}

func (c *SenateWatchClient) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

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
