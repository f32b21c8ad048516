package services

import (
	"financeTracker/models"
	"testing"
	"time"

	"github.com/beevik/etree"
)

func TestBuildStatement(t *testing.T) {
	transactions := []models.Transaction{
		{
			ID:            2,
			Type:          models.TransactionTypeDebit,
			Amount:        200,
			Reason:        "продукты",
			TransactionID: "TXN-2",
			UNQID:         "10:00-01/01/2024-AAAAA",
			CreatedAt:     time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:            1,
			Type:          models.TransactionTypeCredit,
			Amount:        500,
			Reason:        "зарплата",
			TransactionID: "TXN-1",
			UNQID:         "09:00-01/01/2024-BBBBB",
			CreatedAt:     time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		},
	}

	data, err := NewExportService().BuildStatement("user@example.com", transactions)
	if err != nil {
		t.Fatalf("BuildStatement failed: %v", err)
	}

	// Разбираем выписку обратно и проверяем содержимое
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		t.Fatalf("statement is not valid XML: %v", err)
	}

	root := doc.SelectElement("statement")
	if root == nil {
		t.Fatal("statement element not found")
	}
	if got := root.SelectAttrValue("account", ""); got != "user@example.com" {
		t.Errorf("account = %q, want user@example.com", got)
	}

	list := root.SelectElement("transactions")
	if list == nil {
		t.Fatal("transactions element not found")
	}
	if got := list.SelectAttrValue("count", ""); got != "2" {
		t.Errorf("count = %q, want 2", got)
	}
	if got := len(list.SelectElements("transaction")); got != 2 {
		t.Errorf("transaction elements = %d, want 2", got)
	}

	// Агрегаты в блоке summary
	summary := root.SelectElement("summary")
	if summary == nil {
		t.Fatal("summary element not found")
	}
	if got := summary.SelectElement("earned").Text(); got != "500.00" {
		t.Errorf("earned = %q, want 500.00", got)
	}
	if got := summary.SelectElement("spent").Text(); got != "200.00" {
		t.Errorf("spent = %q, want 200.00", got)
	}
	if got := summary.SelectElement("balance").Text(); got != "300.00" {
		t.Errorf("balance = %q, want 300.00", got)
	}
}

func TestBuildStatementEmpty(t *testing.T) {
	data, err := NewExportService().BuildStatement("user@example.com", nil)
	if err != nil {
		t.Fatalf("BuildStatement failed: %v", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		t.Fatalf("statement is not valid XML: %v", err)
	}

	list := doc.FindElement("/statement/transactions")
	if list == nil {
		t.Fatal("transactions element not found")
	}
	if got := list.SelectAttrValue("count", ""); got != "0" {
		t.Errorf("count = %q, want 0", got)
	}
}
