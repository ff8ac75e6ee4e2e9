package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	loanDomain "fundpool/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanNumber(ctx context.Context, loanNumber string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_number = ?", loanNumber).First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *LoanRepository) GetByLoanNumberForUpdate(ctx context.Context, loanNumber string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_number = ?", loanNumber).
		First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *LoanRepository) GetLiveLoanByBorrowerID(ctx context.Context, borrowerID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("borrower_id = ? AND status IN ?", borrowerID, loanDomain.LiveStatuses()).
		Order("status_updated_at DESC, id DESC").
		First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *LoanRepository) ListByBorrowerID(ctx context.Context, borrowerID string) ([]*loanDomain.Loan, error) {
	var out []*loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("borrower_id = ?", borrowerID).
		Order("requested_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListByStatus(ctx context.Context, statuses ...loanDomain.Status) ([]*loanDomain.Loan, error) {
	var out []*loanDomain.Loan
	q := r.db.WithContext(ctx)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	res := q.Order("requested_at DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *LoanRepository) CountByStatus(ctx context.Context) (map[loanDomain.Status]int64, error) {
	var rows []struct {
		Status loanDomain.Status
		N      int64
	}
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Find(&rows)
	if res.Error != nil {
		return nil, res.Error
	}
	out := make(map[loanDomain.Status]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}

func (r *LoanRepository) Delete(ctx context.Context, l *loanDomain.Loan, deletedBy string) error {
	if err := r.db.WithContext(ctx).Model(l).Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(l).Error
}
