package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/studybuddy/internal/domain/entity"
)

// csvHeader — колонки экспорта итогов сессий
var csvHeader = []string{"Книга", "Очки", "Всего вопросов", "Точность (%)", "Оценка", "Завершено"}

// WriteCSV пишет итоги сессий в CSV с правильным экранированием спецсимволов
func WriteCSV(w io.Writer, results []entity.SessionResult) error {
	// BOM для корректного отображения UTF-8 в Excel
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	// Используем encoding/csv для правильного экранирования запятых/кавычек
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range results {
		record := []string{
			sanitizeForExcel(r.BookTitle),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.TotalQuestions),
			strconv.Itoa(r.Accuracy),
			r.Tier,
			r.CompletedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteXLSX пишет итоги сессий в Excel с использованием StreamWriter
func WriteXLSX(w io.Writer, results []entity.SessionResult) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Результаты"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	headers := make([]interface{}, len(csvHeader))
	for i, h := range csvHeader {
		headers[i] = h
	}
	if err := sw.SetRow("A1", headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, r := range results {
		cell := fmt.Sprintf("A%d", i+2) // Начинаем с 2 строки (1 - заголовки)
		row := []interface{}{
			sanitizeForExcel(r.BookTitle),
			r.Score,
			r.TotalQuestions,
			r.Accuracy,
			r.Tier,
			r.CompletedAt.Format("2006-01-02 15:04:05"),
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush stream writer: %w", err)
	}
	return f.Write(w)
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
