package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния (например, дубликат вопроса в книге).
	ErrConflict = errors.New("resource state conflict")

	// ErrNoQuestions используется, когда у книги нет ни одного вопроса —
	// сессия викторины в этом случае не создается.
	ErrNoQuestions = errors.New("book has no questions")

	// ErrStaleFallback сигнализирует, что запрос к серверу не удался и
	// хранилище отдало последний сохраненный снимок вместо свежих данных.
	ErrStaleFallback = errors.New("remote fetch failed, serving cached snapshot")

	// ErrRemote используется для обертывания любых ошибок удаленного API,
	// не попадающих в более конкретные категории.
	ErrRemote = errors.New("remote api error")
)
