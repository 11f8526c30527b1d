package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yourusername/studybuddy/internal/apiclient"
	"github.com/yourusername/studybuddy/internal/config"
	"github.com/yourusername/studybuddy/internal/domain/entity"
	"github.com/yourusername/studybuddy/internal/domain/repository"
	"github.com/yourusername/studybuddy/internal/export"
	apperrors "github.com/yourusername/studybuddy/internal/pkg/errors"
	redisRepo "github.com/yourusername/studybuddy/internal/repository/redis"
	"github.com/yourusername/studybuddy/internal/session"
	"github.com/yourusername/studybuddy/internal/store"
	"github.com/yourusername/studybuddy/pkg/database"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "путь к файлу конфигурации")
	bookID := flag.Uint("book", 0, "идентификатор книги для викторины")
	exportPath := flag.String("export", "", "путь для экспорта итога (.csv или .xlsx)")
	flag.Parse()

	if *bookID == 0 {
		fmt.Fprintln(os.Stderr, "Использование: studybuddy -book <id> [-config path] [-export file.csv|file.xlsx]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	client := apiclient.New(cfg.API.BaseURL, cfg.API.RequestTimeout())

	// Кеш снимков опционален: без настроенного Redis работаем напрямую
	var cache repository.CacheRepository
	if cfg.Redis.Addr != "" || len(cfg.Redis.Addrs) > 0 {
		redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
		if err != nil {
			log.Printf("WARNING: Redis недоступен, кеш снимков выключен: %v", err)
		} else if cacheRepo, err := redisRepo.NewCacheRepo(redisClient); err == nil {
			cache = cacheRepo
		}
	}

	questionStore := store.NewQuestionStore(apiclient.NewQuestionRepo(client), cache, cfg.Cache.SnapshotTTL())
	bookStore := store.NewBookStore(apiclient.NewBookRepo(client))

	ctx := context.Background()

	if err := bookStore.Fetch(ctx); err != nil {
		log.Printf("Не удалось загрузить список книг: %v", err)
	}
	bookTitle := fmt.Sprintf("книга #%d", *bookID)
	if book, ok := bookStore.Get(uint(*bookID)); ok {
		bookTitle = book.Title
	}

	fmt.Printf("Загрузка вопросов: %s...\n", bookTitle)
	if err := questionStore.FetchByBook(ctx, uint(*bookID)); err != nil {
		if errors.Is(err, apperrors.ErrStaleFallback) {
			fmt.Println("Бэкенд недоступен, показываю сохраненные ранее вопросы.")
		} else {
			log.Printf("Не удалось загрузить вопросы: %v", err)
			os.Exit(1)
		}
	}

	questions := questionStore.Questions()
	sess, err := session.New(questions)
	if errors.Is(err, apperrors.ErrNoQuestions) {
		// Пустая книга — не ошибка, а приглашение отсканировать страницы
		fmt.Printf("У книги «%s» пока нет вопросов.\n", bookTitle)
		fmt.Println("Отсканируйте страницы и отправьте их на генерацию: POST /api/generate-lesson/")
		os.Exit(0)
	}
	if err != nil {
		log.Printf("Не удалось создать сессию: %v", err)
		os.Exit(1)
	}

	reader := bufio.NewScanner(os.Stdin)
	result := runSession(sess, reader, uint(*bookID), bookTitle)

	if _, err := bookStore.MarkStudied(ctx, uint(*bookID)); err != nil {
		log.Printf("Не удалось отметить занятие: %v", err)
	}

	if *exportPath != "" {
		if err := exportResult(*exportPath, *result); err != nil {
			log.Printf("Не удалось экспортировать итог: %v", err)
			os.Exit(1)
		}
		fmt.Printf("Итог сохранен в %s\n", *exportPath)
	}
}

// runSession проводит пользователя через вопросы и возвращает итог.
// Повторное прохождение (restart) запускается по команде "r" на финальном экране.
func runSession(sess *session.Session, reader *bufio.Scanner, bookID uint, bookTitle string) *entity.SessionResult {
	for {
		for !sess.Finished() {
			askQuestion(sess, reader)
		}

		result, err := sess.Result(bookID, bookTitle)
		if err != nil {
			// Недостижимо: цикл выше гарантирует завершение
			log.Printf("Не удалось получить итог: %v", err)
			os.Exit(1)
		}

		fmt.Printf("\nВикторина завершена: %d из %d (%d%%) — %s\n",
			result.Score, result.TotalQuestions, result.Accuracy, result.Tier)
		fmt.Print("Нажмите Enter для выхода или введите r для повторного прохождения: ")
		if !reader.Scan() || strings.TrimSpace(strings.ToLower(reader.Text())) != "r" {
			return result
		}
		sess.Restart()
		fmt.Println()
	}
}

// askQuestion показывает текущий вопрос, принимает выбор и открывает ответ
func askQuestion(sess *session.Session, reader *bufio.Scanner) {
	q := sess.Current()
	choices := sess.Choices()
	num, total := sess.Progress()

	fmt.Printf("\nВопрос %d из %d: %s\n", num, total, q.QuestionText)
	for i, choice := range choices {
		fmt.Printf("  %d) %s\n", i+1, choice)
	}

	// Выбор можно менять до проверки: проверка запускается пустым вводом
	for !sess.FeedbackShown() {
		if sess.Selected() == "" {
			fmt.Printf("Ваш ответ (1-%d): ", len(choices))
		} else {
			fmt.Printf("Ваш ответ (1-%d, Enter — проверить): ", len(choices))
		}
		if !reader.Scan() {
			fmt.Println("\nВвод закрыт, выход.")
			os.Exit(0)
		}
		input := strings.TrimSpace(reader.Text())

		if input == "" {
			if err := sess.CheckAnswer(); err != nil {
				fmt.Println("Сначала выберите вариант ответа.")
			}
			continue
		}

		idx, err := strconv.Atoi(input)
		if err != nil || idx < 1 || idx > len(choices) {
			fmt.Println("Введите номер варианта.")
			continue
		}
		if err := sess.Select(choices[idx-1]); err != nil {
			fmt.Printf("Выбор отклонен: %v\n", err)
		}
	}

	if q.IsCorrect(sess.Selected()) {
		fmt.Println("Верно!")
	} else {
		fmt.Printf("Неверно. Правильный ответ: %s\n", q.CorrectAnswer)
	}
	fmt.Printf("Счет: %d/%d\n", sess.Score(), num)

	if err := sess.Advance(); err != nil {
		log.Printf("Не удалось перейти к следующему вопросу: %v", err)
		os.Exit(1)
	}
}

// exportResult пишет итог сессии в CSV или Excel по расширению файла
func exportResult(path string, result entity.SessionResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return export.WriteXLSX(f, []entity.SessionResult{result})
	default:
		return export.WriteCSV(f, []entity.SessionResult{result})
	}
}
