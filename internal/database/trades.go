package database

import (
	"database/sql"
)

// InsertTrade inserts a trade and returns its ID.
func (db *DB) InsertTrade(t *Trade) (int64, error) {
	result, err := db.conn.Exec(
		`INSERT INTO trades (member_id, ticker, company_name, transaction_type, transaction_date,
		amount_min, amount_max, amount_exact,
		exchange_from_ticker, exchange_from_company, exchange_from_amount, exchange_ratio, exchange_reason,
		description, source, filing_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.MemberID, t.Ticker, t.CompanyName, t.TransactionType, t.TransactionDate,
		t.AmountMin, t.AmountMax, t.AmountExact,
		t.ExchangeFromTicker, t.ExchangeFromCompany, t.ExchangeFromAmount, t.ExchangeRatio, t.ExchangeReason,
		t.Description, t.Source, t.FilingDate,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ListTrades returns trades matching the filter, joined with their members,
// most recent transaction first. Ties are broken by insertion order.
func (db *DB) ListTrades(f TradeFilter) ([]TradeWithMember, error) {
	query := tradeWithMemberColumns + ` FROM trades t JOIN members m ON m.id = t.member_id WHERE 1=1`
	var args []any

	if f.MemberID != nil {
		query += " AND t.member_id = ?"
		args = append(args, *f.MemberID)
	}
	if f.Chamber != nil {
		query += " AND m.chamber = ?"
		args = append(args, *f.Chamber)
	}
	if f.Party != nil {
		query += " AND m.party = ?"
		args = append(args, *f.Party)
	}
	if f.Ticker != nil {
		query += " AND t.ticker LIKE '%' || ? || '%' COLLATE NOCASE"
		args = append(args, *f.Ticker)
	}
	if f.TransactionType != nil {
		query += " AND t.transaction_type = ?"
		args = append(args, *f.TransactionType)
	}
	if f.StartDate != nil {
		query += " AND t.transaction_date >= ?"
		args = append(args, *f.StartDate)
	}
	if f.EndDate != nil {
		query += " AND t.transaction_date <= ?"
		args = append(args, *f.EndDate)
	}
	// An amount filter is satisfied when either the exact amount or the
	// range bound clears the threshold. Inherited behavior, kept as-is.
	if f.MinAmount != nil {
		query += " AND (t.amount_exact >= ? OR t.amount_min >= ?)"
		args = append(args, *f.MinAmount, *f.MinAmount)
	}
	if f.MaxAmount != nil {
		query += " AND (t.amount_exact <= ? OR t.amount_max <= ?)"
		args = append(args, *f.MaxAmount, *f.MaxAmount)
	}

	query += " ORDER BY t.transaction_date DESC, t.id ASC LIMIT ? OFFSET ?"
	args = append(args, f.Limit, f.Skip)

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTradesWithMember(rows)
}

// RecentTrades returns trades with a transaction date on or after cutoff,
// most recent first.
func (db *DB) RecentTrades(cutoff string, limit int) ([]TradeWithMember, error) {
	rows, err := db.conn.Query(
		tradeWithMemberColumns+` FROM trades t JOIN members m ON m.id = t.member_id
		WHERE t.transaction_date >= ?
		ORDER BY t.transaction_date DESC, t.id ASC LIMIT ?`,
		cutoff, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTradesWithMember(rows)
}

// TradesByMember returns a member's trades, most recent first.
func (db *DB) TradesByMember(memberID int64, skip, limit int) ([]Trade, error) {
	rows, err := db.conn.Query(
		tradeColumns+` FROM trades t WHERE t.member_id = ?
		ORDER BY t.transaction_date DESC, t.id ASC LIMIT ? OFFSET ?`,
		memberID, limit, skip,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrades(rows)
}

// TradesByTicker returns trades whose ticker contains the given string,
// case-insensitively, most recent first.
func (db *DB) TradesByTicker(ticker string, skip, limit int) ([]TradeWithMember, error) {
	rows, err := db.conn.Query(
		tradeWithMemberColumns+` FROM trades t JOIN members m ON m.id = t.member_id
		WHERE t.ticker LIKE '%' || ? || '%' COLLATE NOCASE
		ORDER BY t.transaction_date DESC, t.id ASC LIMIT ? OFFSET ?`,
		ticker, limit, skip,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTradesWithMember(rows)
}

// GetTradeByID returns a trade with its member, or nil if not found.
func (db *DB) GetTradeByID(id int64) (*TradeWithMember, error) {
	rows, err := db.conn.Query(
		tradeWithMemberColumns+` FROM trades t JOIN members m ON m.id = t.member_id WHERE t.id = ?`, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trades, err := scanTradesWithMember(rows)
	if err != nil {
		return nil, err
	}
	if len(trades) == 0 {
		return nil, nil
	}
	return &trades[0], nil
}

// CountTrades returns the total number of trades.
func (db *DB) CountTrades() (int, error) {
	var n int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM trades").Scan(&n)
	return n, err
}

const tradeColumns = `SELECT t.id, t.member_id, t.ticker, t.company_name, t.transaction_type, t.transaction_date,
	t.amount_min, t.amount_max, t.amount_exact,
	t.exchange_from_ticker, t.exchange_from_company, t.exchange_from_amount, t.exchange_ratio, t.exchange_reason,
	t.description, t.source, t.filing_date, t.created_at, t.updated_at`

const tradeWithMemberColumns = tradeColumns + `,
	m.id, m.name, m.chamber, m.state, m.party, m.district, m.office, m.phone, m.email, m.website, m.bio, m.created_at, m.updated_at`

func scanTradeFields(scan func(dest ...any) error, t *Trade, extra ...any) error {
	var source *string
	dest := []any{&t.ID, &t.MemberID, &t.Ticker, &t.CompanyName, &t.TransactionType, &t.TransactionDate,
		&t.AmountMin, &t.AmountMax, &t.AmountExact,
		&t.ExchangeFromTicker, &t.ExchangeFromCompany, &t.ExchangeFromAmount, &t.ExchangeRatio, &t.ExchangeReason,
		&t.Description, &source, &t.FilingDate, &t.CreatedAt, &t.UpdatedAt}
	dest = append(dest, extra...)
	if err := scan(dest...); err != nil {
		return err
	}
	if source != nil {
		t.Source = *source
	}
	return nil
}

func scanTrades(rows *sql.Rows) ([]Trade, error) {
	var trades []Trade
	for rows.Next() {
		var t Trade
		if err := scanTradeFields(rows.Scan, &t); err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

func scanTradesWithMember(rows *sql.Rows) ([]TradeWithMember, error) {
	var trades []TradeWithMember
	for rows.Next() {
		var tm TradeWithMember
		m := &tm.Member
		err := scanTradeFields(rows.Scan, &tm.Trade,
			&m.ID, &m.Name, &m.Chamber, &m.State, &m.Party, &m.District,
			&m.Office, &m.Phone, &m.Email, &m.Website, &m.Bio, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return nil, err
		}
		trades = append(trades, tm)
	}
	return trades, rows.Err()
}
