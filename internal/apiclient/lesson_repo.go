package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/yourusername/studybuddy/internal/domain/repository"
)

// LessonRepo реализует repository.LessonRepository поверх REST API
type LessonRepo struct {
	client *Client
}

// NewLessonRepo создает репозиторий генерации уроков поверх HTTP-клиента
func NewLessonRepo(client *Client) *LessonRepo {
	return &LessonRepo{client: client}
}

// GenerateLesson отправляет отсканированные страницы на генерацию вопросов.
// Тело запроса — multipart/form-data: части изображений называются "files",
// идентификатор книги — скалярное поле "book_id". Тело ответа игнорируется,
// важен только статус.
func (r *LessonRepo) GenerateLesson(ctx context.Context, bookID uint, pages []repository.PageImage) error {
	if len(pages) == 0 {
		return fmt.Errorf("at least one page image is required")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, page := range pages {
		part, err := writer.CreateFormFile("files", page.Filename)
		if err != nil {
			return fmt.Errorf("failed to create multipart file part: %w", err)
		}
		if _, err := part.Write(page.Data); err != nil {
			return fmt.Errorf("failed to write page image %q: %w", page.Filename, err)
		}
	}
	if err := writer.WriteField("book_id", strconv.FormatUint(uint64(bookID), 10)); err != nil {
		return fmt.Errorf("failed to write book_id field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.client.baseURL+"/api/generate-lesson/", &buf)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return r.client.do(req, nil)
}
