package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// DBX: Database Error
	ErrGeneric error = errors.New("DBX: Internal server error")

	// DBXO: Bad operation
	// DBXQ: Bad query
	ErrDuplicate        error = errors.New("DBXO: Duplicate")
	ErrNotFound         error = errors.New("DBXQ: Not found")
	ErrRelationNotExist error = errors.New("DBXO: Relation not exists")
)

var (
	// Class 23 — Integrity Constraint Violation
	// https://github.com/jackc/pgerrcode/blob/master/errcode.go
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
)

type Repository[T any] interface {
	Find(ctx context.Context, options FindOptions) ([]*T, error)
	Count(ctx context.Context, options FindOptions) (int64, error)
	Create(ctx context.Context, entities []*T) error
	Transaction(ctx context.Context, fn func(txRepo Repository[T]) error) error
}

// gorm generic repository
type repository[T any] struct {
	db *gorm.DB
}

func NewRepository[T any](db *gorm.DB) Repository[T] {
	return &repository[T]{db: db}
}

// WrapError maps driver errors to the package sentinels. Record-not-found
// becomes ErrNotFound; anything unrecognised becomes ErrGeneric.
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case UniqueViolation:
			return ErrDuplicate
		case ForeignKeyViolation:
			return ErrRelationNotExist
		}
	}
	return fmt.Errorf("%w: %v", ErrGeneric, err)
}

// orderClause renders Order deterministically, e.g. "contest DESC,id ASC".
func orderClause(order Order) string {
	fields := make([]string, 0, len(order))
	for field := range order {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s %s", field, order[field]))
	}
	return strings.Join(parts, ",")
}

func (r *repository[T]) applyFindOptionsToDB(db *gorm.DB, options FindOptions) *gorm.DB {
	isSelectAll := len(options.Select) == 1 && options.Select[0] == "*"
	if options.Select != nil && !isSelectAll {
		db = db.Select(strings.Join(options.Select, ","))
	}
	if options.Where != nil {
		db = db.Where(map[string]any(options.Where))
	}
	if len(options.Order) > 0 {
		db = db.Order(orderClause(options.Order))
	}
	if options.Limit != 0 {
		db = db.Limit(int(options.Limit))
	}
	if options.Offset != 0 {
		db = db.Offset(int(options.Offset))
	}
	return db
}

func (r *repository[T]) Find(ctx context.Context, options FindOptions) ([]*T, error) {
	var results []*T
	var entity T
	db := r.applyFindOptionsToDB(r.db.WithContext(ctx).Model(&entity), options)

	if err := db.Find(&results).Error; err != nil {
		return nil, WrapError(err)
	}
	return results, nil
}

func (r *repository[T]) Count(ctx context.Context, options FindOptions) (int64, error) {
	var count int64
	var entity T
	db := r.db.WithContext(ctx).Model(&entity)
	if options.Where != nil {
		db = db.Where(map[string]any(options.Where))
	}

	if err := db.Count(&count).Error; err != nil {
		return 0, WrapError(err)
	}
	return count, nil
}

func (r *repository[T]) Create(ctx context.Context, entities []*T) error {
	if len(entities) == 0 {
		return nil
	}
	return WrapError(r.db.WithContext(ctx).CreateInBatches(entities, 100).Error)
}

func (r *repository[T]) Transaction(
	ctx context.Context,
	fn func(txRepo Repository[T]) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository[T](tx))
	})
}
