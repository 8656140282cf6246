package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/Kosench/short-url/internal/errors"
	"github.com/Kosench/short-url/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

const uniqueViolationErrCode = "23505"

// queryer - общий интерфейс *sqlx.DB и *sqlx.Tx
type queryer interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
}

type PostgresURLRepository struct {
	db      *sqlx.DB
	q       queryer
	timeout time.Duration
}

// NewPostgresURLRepository создает репозиторий; timeout ограничивает каждый запрос (0 - без ограничения)
func NewPostgresURLRepository(db *sqlx.DB, timeout time.Duration) *PostgresURLRepository {
	return &PostgresURLRepository{
		db:      db,
		q:       db,
		timeout: timeout,
	}
}

func (r *PostgresURLRepository) Create(ctx context.Context, url *model.URL) error {
	const op = "repository.PostgresURLRepository.Create"
	const query = `
	INSERT INTO urls (key, original_url)
	VALUES ($1, $2)
	RETURNING id, click_count, created_at
	`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	row := r.q.QueryRowxContext(ctx, query, url.Key, url.OriginalURL)
	if err := row.Scan(&url.ID, &url.ClickCount, &url.CreatedAt); err != nil {
		if isUniqueViolationError(err) {
			return fmt.Errorf("%s: key %q: %w", op, url.Key, apperrors.ErrKeyExists)
		}
		return apperrors.NewStoreError("create URL", err)
	}

	return nil
}

func (r *PostgresURLRepository) GetByKey(ctx context.Context, key string) (*model.URL, error) {
	const op = "repository.PostgresURLRepository.GetByKey"
	const query = `
	SELECT id, key, original_url, click_count, created_at
	FROM urls
	WHERE key = $1
	`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var url model.URL
	if err := sqlx.GetContext(ctx, r.q, &url, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: key %q: %w", op, key, apperrors.ErrURLNotFound)
		}
		return nil, apperrors.NewStoreError("get URL", err)
	}

	return &url, nil
}

func (r *PostgresURLRepository) ExistsByKey(ctx context.Context, key string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM urls WHERE key = $1)`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var exists bool
	if err := sqlx.GetContext(ctx, r.q, &exists, query, key); err != nil {
		return false, apperrors.NewStoreError("check key existence", err)
	}

	return exists, nil
}

func (r *PostgresURLRepository) IncrementClickCount(ctx context.Context, id int64) (int64, error) {
	const op = "repository.PostgresURLRepository.IncrementClickCount"
	const query = `
	UPDATE urls
	SET click_count = click_count + 1
	WHERE id = $1
	RETURNING click_count
	`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var clickCount int64
	if err := sqlx.GetContext(ctx, r.q, &clickCount, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%s: URL with ID %d: %w", op, id, apperrors.ErrURLNotFound)
		}
		return 0, apperrors.NewStoreError("increment click count", err)
	}

	return clickCount, nil
}

func (r *PostgresURLRepository) WithTx(ctx context.Context, fn func(repo URLRepository) error) error {
	// Уже внутри транзакции
	if _, ok := r.q.(*sqlx.Tx); ok {
		return fn(r)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperrors.NewStoreError("begin transaction", err)
	}
	defer tx.Rollback()

	txRepo := &PostgresURLRepository{
		db:      r.db,
		q:       tx,
		timeout: r.timeout,
	}

	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewStoreError("commit transaction", err)
	}

	return nil
}

func (r *PostgresURLRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func isUniqueViolationError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationErrCode
}
