package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/Kosench/short-url/internal/errors"
	"github.com/Kosench/short-url/internal/model"
	"github.com/Kosench/short-url/internal/repository"
	"github.com/Kosench/short-url/internal/utils"
	"go.uber.org/zap"
)

const defaultMaxRetries = 5

// keyGenerator подменяется в тестах для воспроизведения коллизий
type keyGenerator func() (string, error)

type URLService struct {
	urlRepo    repository.URLRepository
	baseURL    string
	maxRetries int
	generate   keyGenerator
	log        *zap.Logger
}

func NewURLService(urlRepo repository.URLRepository, baseURL string, maxRetries int, log *zap.Logger) *URLService {
	if maxRetries < 1 {
		maxRetries = defaultMaxRetries
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &URLService{
		urlRepo:    urlRepo,
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxRetries: maxRetries,
		generate:   utils.GenerateKey,
		log:        log,
	}
}

// CreateShortURL подбирает свободный ключ и сохраняет ссылку.
// URL должен быть проверен до вызова.
func (s *URLService) CreateShortURL(ctx context.Context, originalURL string) (*model.URL, error) {
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		key, err := s.generate()
		if err != nil {
			return nil, apperrors.NewBusinessError(apperrors.CodeKeyGeneration, "failed to generate short key", err)
		}

		url := &model.URL{
			Key:         key,
			OriginalURL: originalURL,
		}

		err = s.urlRepo.WithTx(ctx, func(repo repository.URLRepository) error {
			// Проверка только экономит лишний INSERT, гарантию дает unique constraint
			exists, err := repo.ExistsByKey(ctx, key)
			if err != nil {
				return err
			}
			if exists {
				return apperrors.ErrKeyExists
			}

			return repo.Create(ctx, url)
		})
		if err == nil {
			s.log.Debug("short URL created",
				zap.String("key", url.Key),
				zap.Int("attempt", attempt),
			)
			return url, nil
		}

		if !errors.Is(err, apperrors.ErrKeyExists) {
			return nil, err
		}

		s.log.Warn("short key collision, retrying",
			zap.String("key", key),
			zap.Int("attempt", attempt),
			zap.Int("max_retries", s.maxRetries),
		)
	}

	return nil, apperrors.NewBusinessError(
		apperrors.CodeCollisionExceeded,
		fmt.Sprintf("no free key after %d attempts", s.maxRetries),
		apperrors.ErrCollisionExhausted,
	)
}

// GetByKey возвращает apperrors.ErrURLNotFound, если ключа нет
func (s *URLService) GetByKey(ctx context.Context, key string) (*model.URL, error) {
	// Строка, которая не может быть ключом, не требует похода в БД
	if !utils.IsValidKey(key) {
		return nil, fmt.Errorf("key %q: %w", key, apperrors.ErrURLNotFound)
	}

	return s.urlRepo.GetByKey(ctx, key)
}

// IncrementClick увеличивает счетчик переходов и записывает новое значение в url
func (s *URLService) IncrementClick(ctx context.Context, url *model.URL) error {
	clickCount, err := s.urlRepo.IncrementClickCount(ctx, url.ID)
	if err != nil {
		return err
	}

	url.ClickCount = clickCount
	return nil
}

func (s *URLService) BuildShortURL(key string) string {
	return s.baseURL + "/" + key
}

func (s *URLService) ToResponse(url *model.URL) *model.URLResponse {
	return &model.URLResponse{
		Key:         url.Key,
		ShortURL:    s.BuildShortURL(url.Key),
		OriginalURL: url.OriginalURL,
		ClickCount:  url.ClickCount,
		CreatedAt:   url.CreatedAt,
	}
}
