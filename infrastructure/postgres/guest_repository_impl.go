package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rsvp-backend/domain/models"
	"rsvp-backend/domain/repositories"
)

type GuestRepositoryImpl struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) repositories.GuestRepository {
	return &GuestRepositoryImpl{db: db}
}

func (r *GuestRepositoryImpl) Create(ctx context.Context, guest *models.Guest) error {
	return translateError(r.db.WithContext(ctx).Create(guest).Error)
}

func (r *GuestRepositoryImpl) CreateBatch(ctx context.Context, guests []*models.Guest) error {
	if len(guests) == 0 {
		return nil
	}

	// GORM stamps one time on the whole slice; step it so created_at keeps input order.
	base := time.Now()
	for i, guest := range guests {
		if guest.CreatedAt.IsZero() {
			guest.CreatedAt = base.Add(time.Duration(i) * time.Microsecond)
		}
	}
	return translateError(r.db.WithContext(ctx).Create(guests).Error)
}

func (r *GuestRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Guest, error) {
	var guest models.Guest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&guest).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &guest, nil
}

func (r *GuestRepositoryImpl) GetByEmail(ctx context.Context, email string) (*models.Guest, error) {
	var guest models.Guest
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at ASC").
		First(&guest).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &guest, nil
}

func (r *GuestRepositoryImpl) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Guest, error) {
	var guests []models.Guest
	if len(ids) == 0 {
		return guests, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("created_at ASC").
		Find(&guests).Error
	return guests, err
}

func (r *GuestRepositoryImpl) Search(ctx context.Context, term string, limit int) ([]models.Guest, error) {
	var guests []models.Guest
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"

	err := r.db.WithContext(ctx).
		Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\' OR LOWER(phone) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern).
		Limit(limit).
		Find(&guests).Error

	return guests, err
}

func (r *GuestRepositoryImpl) GetFamily(ctx context.Context, headID uuid.UUID) ([]models.Guest, error) {
	var guests []models.Guest
	err := r.db.WithContext(ctx).
		Where("id = ? OR family_head_id = ?", headID, headID).
		Order("created_at ASC").
		Find(&guests).Error
	return guests, err
}

func (r *GuestRepositoryImpl) CountMembers(ctx context.Context, headID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Guest{}).
		Where("family_head_id = ? AND id <> ?", headID, headID).
		Count(&count).Error
	return count, err
}

func (r *GuestRepositoryImpl) List(ctx context.Context, filter repositories.GuestListFilter) ([]models.Guest, error) {
	var guests []models.Guest

	query := r.db.WithContext(ctx).Model(&models.Guest{})
	if filter.Waitlist != nil {
		query = query.Where("is_on_waitlist = ?", *filter.Waitlist)
	}

	err := query.Order("created_at ASC").Find(&guests).Error
	return guests, err
}

func (r *GuestRepositoryImpl) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	updates["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.Guest{}).
		Where("id = ?", id).
		Updates(updates)
	return result.RowsAffected, translateError(result.Error)
}

func (r *GuestRepositoryImpl) UpdateWaitlist(ctx context.Context, ids []uuid.UUID, isOnWaitlist bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Guest{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"is_on_waitlist": isOnWaitlist,
			"updated_at":     time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *GuestRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Guest{}).
			Where("family_head_id = ? AND id <> ?", id, id).
			Updates(map[string]interface{}{
				"family_head_id": nil,
				"updated_at":     time.Now(),
			}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Guest{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repositories.ErrDuplicateKey
	default:
		return err
	}
}
