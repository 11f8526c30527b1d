package repository

import "context"

// PageImage представляет один отсканированный разворот книги для генерации урока
type PageImage struct {
	Filename string
	Data     []byte
}

// LessonRepository определяет запуск генерации вопросов из отсканированных страниц.
// Тело ответа бэкенда не несет полезной нагрузки, важен только успех вызова.
type LessonRepository interface {
	GenerateLesson(ctx context.Context, bookID uint, pages []PageImage) error
}
