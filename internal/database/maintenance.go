package database

// Maintenance deletes. These are operator-triggered cleanup passes, not
// part of the serving path. Each returns the number of rows removed.

// DeleteTradesBySource removes all trades carrying the given source label.
func (db *DB) DeleteTradesBySource(source string) (int64, error) {
	result, err := db.conn.Exec("DELETE FROM trades WHERE source = ?", source)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// DeleteFutureTrades removes trades whose transaction date is after now.
// Future-dated trades are a data-quality defect; collectors do not reject
// them at write time.
func (db *DB) DeleteFutureTrades(now string) (int64, error) {
	result, err := db.conn.Exec("DELETE FROM trades WHERE transaction_date > ?", now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// DeleteTradesByDescription removes trades whose description contains any
// of the given substrings.
func (db *DB) DeleteTradesByDescription(patterns []string) (int64, error) {
	var total int64
	for _, p := range patterns {
		result, err := db.conn.Exec(
			"DELETE FROM trades WHERE description LIKE '%' || ? || '%'", p,
		)
		if err != nil {
			return total, err
		}
		n, err := result.RowsAffected()
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// TradeSources returns each distinct source label with its trade count.
func (db *DB) TradeSources() (map[string]int, error) {
	rows, err := db.conn.Query(
		"SELECT COALESCE(source, ''), COUNT(*) FROM trades GROUP BY source",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var source string
		var n int
		if err := rows.Scan(&source, &n); err != nil {
			return nil, err
		}
		counts[source] = n
	}
	return counts, rows.Err()
}
