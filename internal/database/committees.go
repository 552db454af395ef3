package database

import (
	"database/sql"
)

// InsertCommittee inserts a committee and returns its ID.
func (db *DB) InsertCommittee(c *Committee) (int64, error) {
	result, err := db.conn.Exec(
		`INSERT INTO committees (name, code, chamber, subcommittee, parent_committee_id, description)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.Name, c.Code, c.Chamber, boolToInt(c.Subcommittee), c.ParentCommitteeID, c.Description,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetCommitteeByID returns a committee by ID, or nil if not found.
func (db *DB) GetCommitteeByID(id int64) (*Committee, error) {
	row := db.conn.QueryRow(committeeColumns+" FROM committees WHERE id = ?", id)
	c, err := scanCommittee(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetCommitteeByCode returns a committee by its source-assigned code,
// or nil if not found.
func (db *DB) GetCommitteeByCode(code string) (*Committee, error) {
	row := db.conn.QueryRow(committeeColumns+" FROM committees WHERE code = ?", code)
	c, err := scanCommittee(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCommittees returns committees matching the filter, ordered by name.
func (db *DB) ListCommittees(f CommitteeFilter) ([]Committee, error) {
	query := committeeColumns + " FROM committees WHERE 1=1"
	var args []any

	if f.Chamber != nil {
		query += " AND chamber = ?"
		args = append(args, *f.Chamber)
	}
	if f.Subcommittee != nil {
		query += " AND subcommittee = ?"
		args = append(args, boolToInt(*f.Subcommittee))
	}
	if f.ParentID != nil {
		query += " AND parent_committee_id = ?"
		args = append(args, *f.ParentID)
	}

	query += " ORDER BY name LIMIT ? OFFSET ?"
	args = append(args, f.Limit, f.Skip)

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCommittees(rows)
}

// InsertMembership inserts a committee membership and returns its ID.
// Both references must resolve; the foreign keys reject dangling ones.
func (db *DB) InsertMembership(ms *CommitteeMembership) (int64, error) {
	result, err := db.conn.Exec(
		`INSERT INTO committee_memberships (member_id, committee_id, position, start_date, end_date)
		VALUES (?, ?, ?, ?, ?)`,
		ms.MemberID, ms.CommitteeID, ms.Position, ms.StartDate, ms.EndDate,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// CommitteeMembers returns the members of a committee, ordered by name.
func (db *DB) CommitteeMembers(committeeID int64, skip, limit int) ([]Member, error) {
	rows, err := db.conn.Query(
		`SELECT DISTINCT m.id, m.name, m.chamber, m.state, m.party, m.district, m.office,
		m.phone, m.email, m.website, m.bio, m.created_at, m.updated_at
		FROM members m JOIN committee_memberships cm ON cm.member_id = m.id
		WHERE cm.committee_id = ? ORDER BY m.name LIMIT ? OFFSET ?`,
		committeeID, limit, skip,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMembers(rows)
}

// CommitteeMemberships returns the memberships of a committee,
// most recent start date first.
func (db *DB) CommitteeMemberships(committeeID int64, skip, limit int) ([]CommitteeMembership, error) {
	rows, err := db.conn.Query(
		`SELECT id, member_id, committee_id, position, start_date, end_date, created_at
		FROM committee_memberships WHERE committee_id = ?
		ORDER BY start_date DESC LIMIT ? OFFSET ?`,
		committeeID, limit, skip,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []CommitteeMembership
	for rows.Next() {
		var ms CommitteeMembership
		if err := rows.Scan(&ms.ID, &ms.MemberID, &ms.CommitteeID, &ms.Position,
			&ms.StartDate, &ms.EndDate, &ms.CreatedAt); err != nil {
			return nil, err
		}
		memberships = append(memberships, ms)
	}
	return memberships, rows.Err()
}

// MemberCommittees returns the committees a member sits on, ordered by name.
func (db *DB) MemberCommittees(memberID int64, skip, limit int) ([]Committee, error) {
	rows, err := db.conn.Query(
		`SELECT DISTINCT c.id, c.name, c.code, c.chamber, c.subcommittee,
		c.parent_committee_id, c.description, c.created_at, c.updated_at
		FROM committees c JOIN committee_memberships cm ON cm.committee_id = c.id
		WHERE cm.member_id = ? ORDER BY c.name LIMIT ? OFFSET ?`,
		memberID, limit, skip,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCommittees(rows)
}

// CountCommittees returns the total number of committees.
func (db *DB) CountCommittees() (int, error) {
	var n int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM committees").Scan(&n)
	return n, err
}

const committeeColumns = `SELECT id, name, code, chamber, subcommittee, parent_committee_id, description, created_at, updated_at`

func scanCommittees(rows *sql.Rows) ([]Committee, error) {
	var committees []Committee
	for rows.Next() {
		var c Committee
		var sub int
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.Chamber, &sub,
			&c.ParentCommitteeID, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.Subcommittee = sub != 0
		committees = append(committees, c)
	}
	return committees, rows.Err()
}

func scanCommittee(row *sql.Row) (*Committee, error) {
	var c Committee
	var sub int
	if err := row.Scan(&c.ID, &c.Name, &c.Code, &c.Chamber, &sub,
		&c.ParentCommitteeID, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Subcommittee = sub != 0
	return &c, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
