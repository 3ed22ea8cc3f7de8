package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/clinic-readiness-api/internal/models"
	appErrors "github.com/noah-isme/clinic-readiness-api/pkg/errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type childRow struct {
	ID          string    `db:"id"`
	ClinicianID string    `db:"clinician_id"`
	Name        string    `db:"name"`
	Document    string    `db:"document"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// ChildRepository persists whole child records as JSONB documents.
type ChildRepository struct {
	db *sqlx.DB
}

// NewChildRepository constructs a ChildRepository.
func NewChildRepository(db *sqlx.DB) *ChildRepository {
	return &ChildRepository{db: db}
}

func normalizePage(filter models.ChildFilter) (page, size int) {
	page = filter.Page
	if page < 1 {
		page = 1
	}
	size = filter.PageSize
	if size <= 0 || size > maxPageSize {
		size = defaultPageSize
	}
	return page, size
}

// List returns the roster of a clinician.
func (r *ChildRepository) List(ctx context.Context, filter models.ChildFilter) ([]models.ChildSummary, int, error) {
	conditions := []string{"clinician_id = $1"}
	args := []interface{}{filter.ClinicianID}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	base := "FROM child_records WHERE " + strings.Join(conditions, " AND ")

	page, size := normalizePage(filter)
	query := fmt.Sprintf("SELECT id, clinician_id, name, created_at, updated_at %s ORDER BY created_at ASC LIMIT %d OFFSET %d", base, size, (page-1)*size)

	var children []models.ChildSummary
	if err := r.db.SelectContext(ctx, &children, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list children: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count children: %w", err)
	}
	return children, total, nil
}

// ListRecords loads every full record of a clinician.
func (r *ChildRepository) ListRecords(ctx context.Context, clinicianID string) ([]models.ChildRecord, error) {
	const query = `SELECT id, clinician_id, name, document, created_at, updated_at FROM child_records WHERE clinician_id = $1 ORDER BY created_at ASC`
	var rows []childRow
	if err := r.db.SelectContext(ctx, &rows, query, clinicianID); err != nil {
		return nil, fmt.Errorf("list child records: %w", err)
	}
	records := make([]models.ChildRecord, 0, len(rows))
	for _, row := range rows {
		record, err := row.decode()
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}

// invalidTextRepresentation is raised when an id is not a valid uuid.
const invalidTextRepresentation = "22P02"

func isInvalidText(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == invalidTextRepresentation
}

// FindByID loads a full child record.
func (r *ChildRepository) FindByID(ctx context.Context, id string) (*models.ChildRecord, error) {
	const query = `SELECT id, clinician_id, name, document, created_at, updated_at FROM child_records WHERE id = $1`
	var row childRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidText(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "child not found")
		}
		return nil, fmt.Errorf("find child: %w", err)
	}
	return row.decode()
}

// Save upserts the whole record; the last writer wins.
func (r *ChildRepository) Save(ctx context.Context, child *models.ChildRecord) error {
	now := time.Now().UTC()
	if child.CreatedAt.IsZero() {
		child.CreatedAt = now
	}
	child.UpdatedAt = now

	document, err := json.Marshal(child)
	if err != nil {
		return fmt.Errorf("encode child %s: %w", child.ID, err)
	}
	row := childRow{
		ID:          child.ID,
		ClinicianID: child.ClinicianID,
		Name:        child.Name,
		Document:    string(document),
		CreatedAt:   child.CreatedAt,
		UpdatedAt:   child.UpdatedAt,
	}
	const query = `INSERT INTO child_records (id, clinician_id, name, document, created_at, updated_at)
        VALUES (:id, :clinician_id, :name, CAST(:document AS JSONB), :created_at, :updated_at)
        ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, document = EXCLUDED.document, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("save child: %w", err)
	}
	return nil
}

// Delete removes a child record.
func (r *ChildRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM child_records WHERE id = $1`, id)
	if err != nil {
		if isInvalidText(err) {
			return appErrors.Clone(appErrors.ErrNotFound, "child not found")
		}
		return fmt.Errorf("delete child: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete child rows affected: %w", err)
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "child not found")
	}
	return nil
}

func (row childRow) decode() (*models.ChildRecord, error) {
	var record models.ChildRecord
	if err := json.Unmarshal([]byte(row.Document), &record); err != nil {
		return nil, fmt.Errorf("decode child %s: %w", row.ID, err)
	}
	record.ID = row.ID
	record.ClinicianID = row.ClinicianID
	record.Name = row.Name
	record.CreatedAt = row.CreatedAt
	record.UpdatedAt = row.UpdatedAt
	return &record, nil
}
