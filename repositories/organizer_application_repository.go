package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-platform/models"
)

var (
	ErrApplicationNotFound        = errors.New("organizer application not found")
	ErrApplicationPendingConflict = errors.New("user already has a pending organizer application")
	ErrApplicationNotPending      = errors.New("organizer application is not pending")
	ErrApplicationUserInvalid     = errors.New("organizer application user conflict or invalid")
)

// Имя частичного уникального индекса (user_id) WHERE status = 'pending', см. db/migrations.
const onePendingPerUserIndex = "organizer_applications_one_pending_per_user"

const applicationColumns = `
	a.id, a.user_id, a.application_reason, a.experience_description, a.status,
	a.admin_notes, a.reviewed_by, a.reviewed_at, a.attachment_key, a.created_at, a.updated_at`

type OrganizerApplicationRepository interface {
	Create(ctx context.Context, exec SQLExecutor, app *models.OrganizerApplication) error
	GetByID(ctx context.Context, id int) (*models.OrganizerApplication, error)
	HasPendingForUser(ctx context.Context, userID int) (bool, error)
	ListWithUsers(ctx context.Context) ([]*models.OrganizerApplicationWithUser, error)
	ListByUser(ctx context.Context, userID int) ([]*models.OrganizerApplication, error)

	// UpdateStatus moves a pending application to status in a single conditional
	// statement. Zero matched rows means the application is missing
	// (ErrApplicationNotFound) or was already reviewed (ErrApplicationNotPending).
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.ApplicationStatus, reviewerID int, notes *string) (*models.OrganizerApplication, error)
	SetAttachmentKey(ctx context.Context, id int, key *string) error
}

type postgresOrganizerApplicationRepository struct {
	db *sql.DB
}

func NewPostgresOrganizerApplicationRepository(db *sql.DB) OrganizerApplicationRepository {
	return &postgresOrganizerApplicationRepository{db: db}
}

func (r *postgresOrganizerApplicationRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresOrganizerApplicationRepository) Create(ctx context.Context, exec SQLExecutor, app *models.OrganizerApplication) error {
	query := `
		INSERT INTO organizer_applications (user_id, application_reason, experience_description, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	if app.Status == "" {
		app.Status = models.ApplicationPending
	}

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		app.UserID,
		app.ApplicationReason,
		app.ExperienceDescription,
		app.Status,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)

	return r.handleApplicationError(err)
}

func (r *postgresOrganizerApplicationRepository) GetByID(ctx context.Context, id int) (*models.OrganizerApplication, error) {
	query := `SELECT` + applicationColumns + `
		FROM organizer_applications a
		WHERE a.id = $1`

	app, err := scanApplication(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to scan organizer application %d: %w", id, err)
	}
	return app, nil
}

func (r *postgresOrganizerApplicationRepository) HasPendingForUser(ctx context.Context, userID int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM organizer_applications
			WHERE user_id = $1 AND status = $2
		)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, models.ApplicationPending).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresOrganizerApplicationRepository) ListWithUsers(ctx context.Context) ([]*models.OrganizerApplicationWithUser, error) {
	query := `SELECT` + applicationColumns + `,
			u.id, u.name, u.email, u.role,
			rv.id, rv.name, rv.email
		FROM organizer_applications a
		JOIN users u ON u.id = a.user_id
		LEFT JOIN users rv ON rv.id = a.reviewed_by
		ORDER BY a.created_at DESC, a.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]*models.OrganizerApplicationWithUser, 0)
	for rows.Next() {
		var item models.OrganizerApplicationWithUser
		var applicant models.ApplicationUser

		var reviewerID sql.NullInt64
		var reviewerName sql.NullString
		var reviewerEmail sql.NullString

		scanErr := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.ApplicationReason,
			&item.ExperienceDescription,
			&item.Status,
			&item.AdminNotes,
			&item.ReviewedBy,
			&item.ReviewedAt,
			&item.AttachmentKey,
			&item.CreatedAt,
			&item.UpdatedAt,
			&applicant.ID,
			&applicant.Name,
			&applicant.Email,
			&applicant.Role,
			&reviewerID,
			&reviewerName,
			&reviewerEmail,
		)
		if scanErr != nil {
			return nil, scanErr
		}

		item.User = &applicant
		if reviewerID.Valid {
			item.Reviewer = &models.ApplicationUser{
				ID:    int(reviewerID.Int64),
				Name:  reviewerName.String,
				Email: reviewerEmail.String,
			}
		}
		apps = append(apps, &item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *postgresOrganizerApplicationRepository) ListByUser(ctx context.Context, userID int) ([]*models.OrganizerApplication, error) {
	query := `SELECT` + applicationColumns + `
		FROM organizer_applications a
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC, a.id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]*models.OrganizerApplication, 0)
	for rows.Next() {
		app, scanErr := scanApplication(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		apps = append(apps, app)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *postgresOrganizerApplicationRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.ApplicationStatus, reviewerID int, notes *string) (*models.OrganizerApplication, error) {
	executor := r.getExecutor(exec)
	query := `
		UPDATE organizer_applications a SET
			status = $1,
			reviewed_by = $2,
			reviewed_at = NOW(),
			admin_notes = $3,
			updated_at = NOW()
		WHERE a.id = $4 AND a.status = $5
		RETURNING` + applicationColumns

	app, err := scanApplication(executor.QueryRowContext(ctx, query, status, reviewerID, notes, id, models.ApplicationPending))
	if err == nil {
		return app, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, r.handleApplicationError(err)
	}

	// Ни одна строка не обновлена: заявки нет или она уже рассмотрена.
	var exists bool
	probe := `SELECT EXISTS (SELECT 1 FROM organizer_applications WHERE id = $1)`
	if probeErr := executor.QueryRowContext(ctx, probe, id).Scan(&exists); probeErr != nil {
		return nil, fmt.Errorf("failed to probe organizer application %d: %w", id, probeErr)
	}
	if !exists {
		return nil, ErrApplicationNotFound
	}
	return nil, ErrApplicationNotPending
}

func (r *postgresOrganizerApplicationRepository) SetAttachmentKey(ctx context.Context, id int, key *string) error {
	query := `UPDATE organizer_applications SET attachment_key = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, key, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrApplicationNotFound)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanApplication(row rowScanner) (*models.OrganizerApplication, error) {
	app := &models.OrganizerApplication{}
	err := row.Scan(
		&app.ID,
		&app.UserID,
		&app.ApplicationReason,
		&app.ExperienceDescription,
		&app.Status,
		&app.AdminNotes,
		&app.ReviewedBy,
		&app.ReviewedAt,
		&app.AttachmentKey,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (r *postgresOrganizerApplicationRepository) handleApplicationError(err error) error {
	if err == nil {
		return nil
	}
	if constraint, ok := pqConstraintError(err, pqUniqueViolation); ok && constraint == onePendingPerUserIndex {
		return ErrApplicationPendingConflict
	}
	if _, ok := pqConstraintError(err, pqForeignKeyViolation); ok {
		return ErrApplicationUserInvalid
	}
	if constraint, ok := pqConstraintError(err, pqCheckViolation); ok {
		return fmt.Errorf("organizer application violates %s: %w", constraint, err)
	}
	return err
}
