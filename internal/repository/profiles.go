package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/devconnect/devconnect/internal/models"
)

// ErrProfileNotFound means the user has not filled out a profile yet
var ErrProfileNotFound = errors.New("profile not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound).
	WithTextCode("profile_not_found")

// Profiles manages the one-per-user profile records and their nested
// experience and education entries.
type Profiles interface {
	Upsert(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	List(ctx context.Context) ([]*models.Profile, error)
	AddExperience(ctx context.Context, userID uuid.UUID, exp *models.Experience) (*models.Profile, error)
	DeleteExperience(ctx context.Context, userID, expID uuid.UUID) (*models.Profile, error)
	AddEducation(ctx context.Context, userID uuid.UUID, edu *models.Education) (*models.Profile, error)
	DeleteEducation(ctx context.Context, userID, eduID uuid.UUID) (*models.Profile, error)
	DeleteByUserID(ctx context.Context, tx bun.IDB, userID uuid.UUID) error
}

// ProfilesRepository implements Profiles using Bun.
type ProfilesRepository struct {
	db *bun.DB
}

// NewProfilesRepository creates a new repository.
func NewProfilesRepository(db *bun.DB) *ProfilesRepository {
	return &ProfilesRepository{db: db}
}

// Upsert creates the caller's profile on first write and updates it after.
// Zero valued fields on update are left as they were, a client that sends
// only a new status does not blank out the rest of the record.
func (r *ProfilesRepository) Upsert(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	existing, err := r.findByUserID(ctx, profile.UserID)
	if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}

	if existing == nil {
		if profile.ID == uuid.Nil {
			profile.ID = uuid.New()
		}
		if _, err := r.db.NewInsert().
			Model(profile).
			Exec(ctx); err != nil {
			return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create profile")
		}
		return r.GetByUserID(ctx, profile.UserID)
	}

	profile.ID = existing.ID
	now := time.Now()
	profile.UpdatedAt = &now
	if _, err := r.db.NewUpdate().
		Model(profile).
		OmitZero().
		ExcludeColumn("created_at").
		WherePK().
		Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update profile")
	}

	return r.GetByUserID(ctx, profile.UserID)
}

// GetByUserID loads a full profile: owner name and avatar, work history
// newest first, schooling newest first.
func (r *ProfilesRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile := new(models.Profile)
	err := r.db.NewSelect().
		Model(profile).
		Relation("User").
		Relation("Experience", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("date_from DESC")
		}).
		Relation("Education", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("date_from DESC")
		}).
		Where("prf.user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProfileNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve profile")
	}
	return profile, nil
}

// List returns every profile with its owner attached.
func (r *ProfilesRepository) List(ctx context.Context) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := r.db.NewSelect().
		Model(&profiles).
		Relation("User").
		Order("prf.created_at DESC").
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return []*models.Profile{}, nil
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list profiles")
	}
	return profiles, nil
}

// AddExperience appends a work entry and returns the refreshed profile.
func (r *ProfilesRepository) AddExperience(ctx context.Context, userID uuid.UUID, exp *models.Experience) (*models.Profile, error) {
	profile, err := r.findByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	exp.ID = uuid.New()
	exp.ProfileID = profile.ID
	if _, err := r.db.NewInsert().
		Model(exp).
		Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to add experience")
	}

	return r.GetByUserID(ctx, userID)
}

// DeleteExperience removes one work entry. Unknown ids are a no-op, the
// refreshed profile comes back either way.
func (r *ProfilesRepository) DeleteExperience(ctx context.Context, userID, expID uuid.UUID) (*models.Profile, error) {
	profile, err := r.findByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := r.db.NewDelete().
		Model((*models.Experience)(nil)).
		Where("id = ? AND profile_id = ?", expID, profile.ID).
		Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to delete experience")
	}

	return r.GetByUserID(ctx, userID)
}

// AddEducation appends a schooling entry and returns the refreshed profile.
func (r *ProfilesRepository) AddEducation(ctx context.Context, userID uuid.UUID, edu *models.Education) (*models.Profile, error) {
	profile, err := r.findByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	edu.ID = uuid.New()
	edu.ProfileID = profile.ID
	if _, err := r.db.NewInsert().
		Model(edu).
		Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to add education")
	}

	return r.GetByUserID(ctx, userID)
}

// DeleteEducation removes one schooling entry.
func (r *ProfilesRepository) DeleteEducation(ctx context.Context, userID, eduID uuid.UUID) (*models.Profile, error) {
	profile, err := r.findByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := r.db.NewDelete().
		Model((*models.Education)(nil)).
		Where("id = ? AND profile_id = ?", eduID, profile.ID).
		Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to delete education")
	}

	return r.GetByUserID(ctx, userID)
}

// DeleteByUserID removes the profile together with its nested entries,
// used when an account is destroyed. Runs inside the caller's transaction.
func (r *ProfilesRepository) DeleteByUserID(ctx context.Context, tx bun.IDB, userID uuid.UUID) error {
	if tx == nil {
		tx = r.db
	}

	profile := new(models.Profile)
	err := tx.NewSelect().
		Model(profile).
		Column("id").
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			// nothing to delete, account had no profile
			return nil
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to retrieve profile for deletion")
	}

	if _, err := tx.NewDelete().
		Model((*models.Experience)(nil)).
		Where("profile_id = ?", profile.ID).
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete experience entries")
	}

	if _, err := tx.NewDelete().
		Model((*models.Education)(nil)).
		Where("profile_id = ?", profile.ID).
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete education entries")
	}

	if _, err := tx.NewDelete().
		Model((*models.Profile)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete profile")
	}

	return nil
}

func (r *ProfilesRepository) findByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile := new(models.Profile)
	err := r.db.NewSelect().
		Model(profile).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProfileNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve profile")
	}
	return profile, nil
}

var _ Profiles = &ProfilesRepository{}
