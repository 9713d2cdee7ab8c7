// Package postgres реализует хранилище каталога поверх PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/pkg/logger"
)

// PgxPoolInterface - подмножество pgxpool.Pool, используемое репозиториями.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// querier выполняет запросы как в пуле, так и в транзакции.
type querier interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
}

// Константы для сообщений об ошибках.
const (
	errBeginTx    = "failed to begin transaction"
	errCommitTx   = "failed to commit transaction"
	errRollbackTx = "failed to rollback transaction"
)

// withTx выполняет fn в транзакции. Ошибка fn откатывает транзакцию.
func withTx(ctx context.Context, pool PgxPoolInterface, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", errBeginTx, err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logger.Log(ctx).Error(ctx, errRollbackTx, zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", errCommitTx, err)
	}
	return nil
}

// mapError переводит ошибки драйвера в ошибки домена.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}

	var domainErr *entities.Error
	if errors.As(err, &domainErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return &entities.Error{Op: op, Kind: entities.ErrConflict, Message: "entity already exists", Err: err}
		case pgerrcode.ForeignKeyViolation:
			return &entities.Error{Op: op, Kind: entities.ErrNotFound, Message: "referenced entity not found", Err: err}
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation, pgerrcode.StringDataRightTruncationDataException:
			return &entities.Error{Op: op, Kind: entities.ErrValidation, Message: "value violates constraint", Err: err}
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &entities.Error{Op: op, Kind: entities.ErrUnavailable, Message: "storage unavailable", Err: err}
	}

	return entities.NewInternalError(op, err)
}

// collectIDs читает одну колонку BIGINT.
func collectIDs(rows pgx.Rows) ([]int64, error) {
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// collectPairs читает пары (owner_id, related_id), сгруппированные по владельцу.
func collectPairs(rows pgx.Rows) (map[int64][]int64, error) {
	defer rows.Close()

	pairs := make(map[int64][]int64)
	for rows.Next() {
		var owner, related int64
		if err := rows.Scan(&owner, &related); err != nil {
			return nil, err
		}
		pairs[owner] = append(pairs[owner], related)
	}
	return pairs, rows.Err()
}
