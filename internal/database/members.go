package database

import (
	"database/sql"
)

// InsertMember inserts a member and returns its ID.
func (db *DB) InsertMember(m *Member) (int64, error) {
	result, err := db.conn.Exec(
		`INSERT INTO members (name, chamber, state, party, district, office, phone, email, website, bio)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Name, m.Chamber, m.State, m.Party, m.District, m.Office, m.Phone, m.Email, m.Website, m.Bio,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// UpdateMemberContact overwrites a member's mutable contact fields.
// Later collector runs are allowed to refresh these.
func (db *DB) UpdateMemberContact(id int64, office, phone, website *string) error {
	_, err := db.conn.Exec(
		`UPDATE members SET office = ?, phone = ?, website = ?, updated_at = datetime('now') WHERE id = ?`,
		office, phone, website, id,
	)
	return err
}

// GetMemberByID returns a member by ID, or nil if not found.
func (db *DB) GetMemberByID(id int64) (*Member, error) {
	row := db.conn.QueryRow(memberColumns+" FROM members WHERE id = ?", id)
	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListMembers returns members matching the filter, ordered by name.
func (db *DB) ListMembers(f MemberFilter) ([]Member, error) {
	query := memberColumns + " FROM members WHERE 1=1"
	var args []any

	if f.Chamber != nil {
		query += " AND chamber = ?"
		args = append(args, *f.Chamber)
	}
	if f.Party != nil {
		query += " AND party = ?"
		args = append(args, *f.Party)
	}
	if f.State != nil {
		query += " AND state = ?"
		args = append(args, *f.State)
	}
	if f.HasTrades != nil {
		if *f.HasTrades {
			query += " AND EXISTS (SELECT 1 FROM trades t WHERE t.member_id = members.id)"
		} else {
			query += " AND NOT EXISTS (SELECT 1 FROM trades t WHERE t.member_id = members.id)"
		}
	}

	query += " ORDER BY name LIMIT ? OFFSET ?"
	args = append(args, f.Limit, f.Skip)

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMembers(rows)
}

// SearchMembers returns members whose name contains the given string,
// case-insensitively, ordered by name.
func (db *DB) SearchMembers(name string, skip, limit int) ([]Member, error) {
	rows, err := db.conn.Query(
		memberColumns+` FROM members WHERE name LIKE '%' || ? || '%' COLLATE NOCASE
		ORDER BY name LIMIT ? OFFSET ?`,
		name, limit, skip,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMembers(rows)
}

// MostActiveMembers returns members ordered by descending trade count.
// Members with no trades are excluded.
func (db *DB) MostActiveMembers(limit int) ([]Member, error) {
	rows, err := db.conn.Query(
		`SELECT m.id, m.name, m.chamber, m.state, m.party, m.district, m.office,
		m.phone, m.email, m.website, m.bio, m.created_at, m.updated_at
		FROM members m JOIN trades t ON t.member_id = m.id
		GROUP BY m.id ORDER BY COUNT(t.id) DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMembers(rows)
}

// MemberRefs returns an id/name/chamber snapshot of every member,
// used as input to fuzzy name resolution during ingestion.
func (db *DB) MemberRefs() ([]MemberRef, error) {
	rows, err := db.conn.Query("SELECT id, name, chamber FROM members")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []MemberRef
	for rows.Next() {
		var r MemberRef
		if err := rows.Scan(&r.ID, &r.Name, &r.Chamber); err != nil {
			return nil, err
		}
		refs = append(refs, r)
	}
	return refs, rows.Err()
}

// CountMembers returns the total number of members.
func (db *DB) CountMembers() (int, error) {
	var n int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM members").Scan(&n)
	return n, err
}

const memberColumns = `SELECT id, name, chamber, state, party, district, office, phone, email, website, bio, created_at, updated_at`

func scanMembers(rows *sql.Rows) ([]Member, error) {
	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Chamber, &m.State, &m.Party, &m.District,
			&m.Office, &m.Phone, &m.Email, &m.Website, &m.Bio, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func scanMember(row *sql.Row) (*Member, error) {
	var m Member
	if err := row.Scan(&m.ID, &m.Name, &m.Chamber, &m.State, &m.Party, &m.District,
		&m.Office, &m.Phone, &m.Email, &m.Website, &m.Bio, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
