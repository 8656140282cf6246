package model

import "time"

// URL - сохраненная короткая ссылка
type URL struct {
	ID          int64     `db:"id"`
	Key         string    `db:"key"`
	OriginalURL string    `db:"original_url"`
	ClickCount  int64     `db:"click_count"`
	CreatedAt   time.Time `db:"created_at"`
}

type CreateURLRequest struct {
	OriginalURL string `json:"originalUrl"`
}

type URLResponse struct {
	Key         string    `json:"key"`
	ShortURL    string    `json:"shortUrl"`
	OriginalURL string    `json:"originalUrl"`
	ClickCount  int64     `json:"clickCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ErrorResponse - тело ответа с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Code    string `json:"code,omitempty"`
}
