package services

import (
	"financeTracker/models"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
)

// ExportService формирует XML-выписку по транзакциям пользователя
type ExportService struct{}

// NewExportService создает новый экземпляр ExportService
func NewExportService() *ExportService {
	return &ExportService{}
}

// BuildStatement строит XML-документ выписки: список транзакций
// в том же порядке, что и на экране (новые сверху), и блок агрегатов
func (s *ExportService) BuildStatement(email string, transactions []models.Transaction) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	statement := doc.CreateElement("statement")
	statement.CreateAttr("account", email)
	statement.CreateAttr("generatedAt", time.Now().Format(time.RFC3339))

	list := statement.CreateElement("transactions")
	list.CreateAttr("count", strconv.Itoa(len(transactions)))

	for _, t := range transactions {
		e := list.CreateElement("transaction")
		e.CreateAttr("id", strconv.FormatUint(uint64(t.ID), 10))
		e.CreateElement("unqid").SetText(t.UNQID)
		e.CreateElement("type").SetText(t.Type)
		e.CreateElement("amount").SetText(formatAmount(t.Amount))
		e.CreateElement("reason").SetText(t.Reason)
		e.CreateElement("transactionId").SetText(t.TransactionID)
		e.CreateElement("createdAt").SetText(t.CreatedAt.Format(time.RFC3339))
	}

	summary := ComputeSummary(transactions)
	totals := statement.CreateElement("summary")
	totals.CreateElement("earned").SetText(formatAmount(summary.Earned))
	totals.CreateElement("spent").SetText(formatAmount(summary.Spent))
	totals.CreateElement("balance").SetText(formatAmount(summary.Balance))

	doc.Indent(2)

	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("ошибка формирования выписки: %v", err)
	}

	return data, nil
}

// formatAmount форматирует сумму для выписки
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
