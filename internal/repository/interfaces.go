package repository

import (
	"context"

	"github.com/Kosench/short-url/internal/model"
)

type URLRepository interface {
	// Create вставляет запись; заполняет ID, ClickCount и CreatedAt значениями из БД.
	// Занятый ключ возвращается как apperrors.ErrKeyExists.
	Create(ctx context.Context, url *model.URL) error
	GetByKey(ctx context.Context, key string) (*model.URL, error)
	ExistsByKey(ctx context.Context, key string) (bool, error)
	// IncrementClickCount увеличивает счетчик на 1 и возвращает новое значение
	IncrementClickCount(ctx context.Context, id int64) (int64, error)

	// WithTx выполняет fn в одной транзакции. Ошибка fn откатывает транзакцию.
	WithTx(ctx context.Context, fn func(repo URLRepository) error) error
}
