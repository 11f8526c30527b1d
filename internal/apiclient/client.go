package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/yourusername/studybuddy/internal/pkg/errors"
)

// Client инкапсулирует HTTP-доступ к бэкенду студенческого приложения.
// Каждый запрос получает X-Request-ID для сопоставления с логами сервера.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New создает клиент бэкенда с заданным адресом и таймаутом запроса
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewWithHTTPClient создает клиент с готовым http.Client (используется в тестах)
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// doJSON выполняет запрос с JSON-телом (body может быть nil) и анмаршалит
// ответ в dest (dest может быть nil, если тело ответа не нужно).
func (c *Client) doJSON(ctx context.Context, method, path string, body interface{}, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req, dest)
}

// do отправляет подготовленный запрос, логирует его и разбирает ответ
func (c *Client) do(req *http.Request, dest interface{}) error {
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	log.Printf("[APIClient] %s %s (request_id=%s)", req.Method, req.URL.Path, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[APIClient] Транспортная ошибка %s %s: %v (request_id=%s)", req.Method, req.URL.Path, err, requestID)
		return fmt.Errorf("%w: %v", apperrors.ErrRemote, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Читаем тело для лога, но ограниченно: ошибка сервера может быть большой
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Printf("[APIClient] Ошибка API %s %s: статус %d, тело: %s (request_id=%s)",
			req.Method, req.URL.Path, resp.StatusCode, string(snippet), requestID)
		return statusToError(resp.StatusCode)
	}

	if dest == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// statusToError отображает HTTP-статусы на общие ошибки приложения
func statusToError(status int) error {
	switch status {
	case http.StatusNotFound:
		return apperrors.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.ErrValidation
	case http.StatusConflict:
		return apperrors.ErrConflict
	default:
		return fmt.Errorf("%w: unexpected status %d", apperrors.ErrRemote, status)
	}
}
