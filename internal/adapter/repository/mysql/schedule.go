package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fundpool/internal/domain/payment"
)

type ScheduleRepository struct{ db *gorm.DB }

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository { return &ScheduleRepository{db: db} }

func (r *ScheduleRepository) BulkCreate(ctx context.Context, entries []*payment.ScheduleEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(entries).Error
}

func (r *ScheduleRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]*payment.ScheduleEntry, error) {
	var out []*payment.ScheduleEntry
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("payment_number ASC").
		Find(&out)
	return out, res.Error
}

func (r *ScheduleRepository) NextDueForUpdate(ctx context.Context, loanID uint64) (*payment.ScheduleEntry, error) {
	var out payment.ScheduleEntry
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_id = ? AND status <> ?", loanID, payment.StatusPaid).
		Order("payment_number ASC").
		First(&out)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, payment.ErrNoDueInstallment
		}
		return nil, res.Error
	}
	return &out, nil
}

func (r *ScheduleRepository) CountUnpaid(ctx context.Context, loanID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&payment.ScheduleEntry{}).
		Where("loan_id = ? AND status <> ?", loanID, payment.StatusPaid).
		Count(&n)
	return n, res.Error
}

func (r *ScheduleRepository) CountOverdue(ctx context.Context, loanID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&payment.ScheduleEntry{}).
		Where("loan_id = ? AND status = ?", loanID, payment.StatusOverdue).
		Count(&n)
	return n, res.Error
}

func (r *ScheduleRepository) ListUnpaidDueBefore(ctx context.Context, cutoff time.Time) ([]*payment.ScheduleEntry, error) {
	var out []*payment.ScheduleEntry
	res := r.db.WithContext(ctx).
		Where("status <> ? AND scheduled_date < ?", payment.StatusPaid, cutoff).
		Order("loan_id ASC, payment_number ASC").
		Find(&out)
	return out, res.Error
}

func (r *ScheduleRepository) Save(ctx context.Context, e *payment.ScheduleEntry) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *ScheduleRepository) DeleteByLoanID(ctx context.Context, loanID uint64) error {
	return r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Delete(&payment.ScheduleEntry{}).Error
}
