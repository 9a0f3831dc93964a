package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pollwise/backend/internal/domain/shared"
	"github.com/pollwise/backend/internal/domain/voting"
	"gorm.io/gorm"
)

// GormPollRepository implements PollRepository using GORM
type GormPollRepository struct {
	db *gorm.DB
}

// NewGormPollRepository creates a new GormPollRepository
func NewGormPollRepository(db *gorm.DB) *GormPollRepository {
	return &GormPollRepository{db: db}
}

// FindByID finds a poll by its ID with options loaded in display order
func (r *GormPollRepository) FindByID(ctx context.Context, id uuid.UUID) (*voting.Poll, error) {
	var poll voting.Poll
	if err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&poll, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, voting.ErrPollNotFound
		}
		return nil, err
	}
	return &poll, nil
}

// FindAll finds all polls matching the filter, options loaded
func (r *GormPollRepository) FindAll(ctx context.Context, filter shared.Filter) ([]voting.Poll, error) {
	var polls []voting.Poll
	query := r.applyFilter(r.db.WithContext(ctx).Model(&voting.Poll{}), filter).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})

	if err := query.Find(&polls).Error; err != nil {
		return nil, err
	}
	return polls, nil
}

// FindByCreator finds all polls created by the given user
func (r *GormPollRepository) FindByCreator(ctx context.Context, creatorID uuid.UUID, filter shared.Filter) ([]voting.Poll, error) {
	var polls []voting.Poll
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&voting.Poll{}).Where("created_by = ?", creatorID),
		filter,
	).Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})

	if err := query.Find(&polls).Error; err != nil {
		return nil, err
	}
	return polls, nil
}

// Save creates or updates a poll together with its options
func (r *GormPollRepository) Save(ctx context.Context, poll *voting.Poll) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(poll).Error
}

// Delete deletes a poll; options and votes cascade at the database level
func (r *GormPollRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&voting.Poll{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return voting.ErrPollNotFound
	}
	return nil
}

// Count counts polls matching the filter
func (r *GormPollRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&voting.Poll{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByCreator counts polls created by the given user
func (r *GormPollRepository) CountByCreator(ctx context.Context, creatorID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&voting.Poll{}).Where("created_by = ?", creatorID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter, pagination and ordering options
func (r *GormPollRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination.
// Poll status is derived from ends_at, so "status" filters translate to
// timestamp comparisons.
func (r *GormPollRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		case "status":
			switch value {
			case string(voting.PollStatusActive):
				query = query.Where("ends_at > ?", time.Now())
			case string(voting.PollStatusClosed):
				query = query.Where("ends_at <= ?", time.Now())
			}
		}
	}

	return query
}

// Ensure GormPollRepository implements PollRepository
var _ voting.PollRepository = (*GormPollRepository)(nil)
