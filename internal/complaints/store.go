package complaints

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fixdesk/fixdesk/internal/db"
)

// ErrNotFound is returned when no complaint matches the lookup.
var ErrNotFound = errors.New("complaint not found")

// Store persists complaints and their status history.
type Store struct {
	db *db.DB
}

// NewStore creates a complaint store over the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// newComplaintID generates a reference like CMP1A2B3C4D: the CMP prefix
// followed by eight uppercase hex characters.
func newComplaintID() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "CMP" + strings.ToUpper(raw[:8])
}

// Create registers a new complaint. The category is derived from the details
// when the caller passes an empty one, and the initial status transition is
// recorded in the history.
func (s *Store) Create(ctx context.Context, name, mobile, details string, category Category) (*Complaint, error) {
	if name == "" || mobile == "" || details == "" {
		return nil, fmt.Errorf("name, mobile and details are required")
	}
	mobile = normalizeDigits(mobile)
	if len(mobile) < 10 || len(mobile) > 15 {
		return nil, fmt.Errorf("mobile must be 10 to 15 digits")
	}
	if category == "" {
		category = Categorize(details)
	}

	now := time.Now().UTC()
	c := &Complaint{
		ComplaintID: newComplaintID(),
		Name:        name,
		Mobile:      mobile,
		Details:     details,
		Category:    category,
		Status:      StatusRegistered,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO complaints (complaint_id, name, mobile, complaint_details, category, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ComplaintID, c.Name, c.Mobile, c.Details, c.Category, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting complaint: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO status_history (complaint_id, old_status, new_status, notes, changed_at)
		 VALUES (?, NULL, ?, ?, ?)`,
		c.ComplaintID, StatusRegistered, "Complaint registered", now,
	)
	if err != nil {
		return nil, fmt.Errorf("recording initial status: %w", err)
	}

	return c, nil
}

// GetByID retrieves a complaint by its reference. The lookup is
// case-insensitive on the CMP prefix.
func (s *Store) GetByID(ctx context.Context, complaintID string) (*Complaint, error) {
	var c Complaint
	err := s.db.QueryRowContext(ctx,
		`SELECT complaint_id, name, mobile, complaint_details, category, status, created_at, updated_at
		 FROM complaints WHERE complaint_id = ?`,
		strings.ToUpper(strings.TrimSpace(complaintID)),
	).Scan(&c.ComplaintID, &c.Name, &c.Mobile, &c.Details, &c.Category, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting complaint: %w", err)
	}
	return &c, nil
}

// FindByPhone looks up complaints by mobile number using three widening
// strategies: exact match, then match on the last ten digits, then substring.
// Exact matches sort first and duplicates are removed.
func (s *Store) FindByPhone(ctx context.Context, mobile string) ([]Complaint, error) {
	mobile = normalizeDigits(mobile)
	if mobile == "" {
		return nil, nil
	}

	exact, err := s.queryComplaints(ctx,
		`SELECT complaint_id, name, mobile, complaint_details, category, status, created_at, updated_at
		 FROM complaints WHERE mobile = ? ORDER BY created_at DESC`, mobile)
	if err != nil {
		return nil, err
	}

	var suffix []Complaint
	if len(mobile) >= 10 {
		last10 := mobile[len(mobile)-10:]
		suffix, err = s.queryComplaints(ctx,
			`SELECT complaint_id, name, mobile, complaint_details, category, status, created_at, updated_at
			 FROM complaints WHERE substr(mobile, -10) = ? ORDER BY created_at DESC`, last10)
		if err != nil {
			return nil, err
		}
	}

	partial, err := s.queryComplaints(ctx,
		`SELECT complaint_id, name, mobile, complaint_details, category, status, created_at, updated_at
		 FROM complaints WHERE mobile LIKE ? ORDER BY created_at DESC`, "%"+mobile+"%")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var results []Complaint
	for _, group := range [][]Complaint{exact, suffix, partial} {
		for _, c := range group {
			if !seen[c.ComplaintID] {
				seen[c.ComplaintID] = true
				results = append(results, c)
			}
		}
	}
	return results, nil
}

func normalizeDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (s *Store) queryComplaints(ctx context.Context, query string, args ...any) ([]Complaint, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying complaints: %w", err)
	}
	defer rows.Close()

	var results []Complaint
	for rows.Next() {
		var c Complaint
		if err := rows.Scan(&c.ComplaintID, &c.Name, &c.Mobile, &c.Details, &c.Category, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning complaint: %w", err)
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// UpdateStatus moves a complaint to a new status and records the transition.
func (s *Store) UpdateStatus(ctx context.Context, complaintID string, newStatus Status, notes string) (*Complaint, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("invalid status %q", newStatus)
	}

	c, err := s.GetByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`UPDATE complaints SET status = ?, updated_at = ? WHERE complaint_id = ?`,
		newStatus, now, c.ComplaintID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating status: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO status_history (complaint_id, old_status, new_status, notes, changed_at)
		 VALUES (?, ?, ?, ?, ?)`,
		c.ComplaintID, c.Status, newStatus, notes, now,
	)
	if err != nil {
		return nil, fmt.Errorf("recording status change: %w", err)
	}

	c.Status = newStatus
	c.UpdatedAt = now
	return c, nil
}

// Advance moves a complaint one step along the natural progression. It fails
// when the complaint is already in a terminal state.
func (s *Store) Advance(ctx context.Context, complaintID, notes string) (*Complaint, error) {
	c, err := s.GetByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	next, ok := c.Status.Next()
	if !ok {
		return nil, fmt.Errorf("complaint %s is %s and cannot advance", c.ComplaintID, c.Status)
	}
	if notes == "" {
		notes = fmt.Sprintf("Advanced from %s to %s", c.Status, next)
	}
	return s.UpdateStatus(ctx, complaintID, next, notes)
}

// History returns the status transitions of a complaint, oldest first.
func (s *Store) History(ctx context.Context, complaintID string) ([]StatusChange, error) {
	if _, err := s.GetByID(ctx, complaintID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, complaint_id, old_status, new_status, notes, changed_at
		 FROM status_history WHERE complaint_id = ? ORDER BY changed_at ASC, id ASC`,
		strings.ToUpper(strings.TrimSpace(complaintID)),
	)
	if err != nil {
		return nil, fmt.Errorf("querying status history: %w", err)
	}
	defer rows.Close()

	var history []StatusChange
	for rows.Next() {
		var sc StatusChange
		var oldStatus sql.NullString
		if err := rows.Scan(&sc.ID, &sc.ComplaintID, &oldStatus, &sc.NewStatus, &sc.Notes, &sc.ChangedAt); err != nil {
			return nil, fmt.Errorf("scanning status change: %w", err)
		}
		sc.OldStatus = Status(oldStatus.String)
		history = append(history, sc)
	}
	return history, rows.Err()
}

// ListAll returns complaints newest first, optionally filtered by status.
func (s *Store) ListAll(ctx context.Context, status Status) ([]Complaint, error) {
	query := `SELECT complaint_id, name, mobile, complaint_details, category, status, created_at, updated_at
		 FROM complaints`
	args := []any{}
	if status != "" {
		if !status.Valid() {
			return nil, fmt.Errorf("invalid status %q", status)
		}
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"
	return s.queryComplaints(ctx, query, args...)
}

// Delete removes a complaint and, through the foreign key cascade, its
// status history.
func (s *Store) Delete(ctx context.Context, complaintID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM complaints WHERE complaint_id = ?`,
		strings.ToUpper(strings.TrimSpace(complaintID)),
	)
	if err != nil {
		return fmt.Errorf("deleting complaint: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting complaint: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats aggregates complaint counts by status and category.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		ByStatus:   make(map[Status]int),
		ByCategory: make(map[Category]int),
	}

	rows, err := s.db.QueryContext(ctx, `SELECT status, category, COUNT(*) FROM complaints GROUP BY status, category`)
	if err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status Status
		var category Category
		var count int
		if err := rows.Scan(&status, &category, &count); err != nil {
			return nil, fmt.Errorf("scanning stats: %w", err)
		}
		stats.Total += count
		stats.ByStatus[status] += count
		stats.ByCategory[category] += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scanning stats: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM complaints WHERE created_at >= datetime('now','-7 days')`,
	).Scan(&stats.Recent7Day)
	if err != nil {
		return nil, fmt.Errorf("querying recent stats: %w", err)
	}
	return stats, nil
}
