package services

import (
	"errors"
	"financeTracker/models"
	"financeTracker/utils"
	"strconv"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionRequest представляет данные формы добавления/редактирования транзакции.
// Amount приходит строкой, как вводится в форме; reason и type необязательны
type TransactionRequest struct {
	Amount        string `json:"amount" validate:"required"`
	Type          string `json:"type" validate:"omitempty,oneof=credit debit"`
	Reason        string `json:"reason"`
	TransactionID string `json:"transaction_id" validate:"required"`
}

// Summary представляет агрегаты по списку транзакций
type Summary struct {
	Earned  float64 `json:"earned"`
	Spent   float64 `json:"spent"`
	Balance float64 `json:"balance"`
}

var (
	ErrTransactionNotFound = errors.New("транзакция не найдена")
	ErrInvalidAmount       = errors.New("сумма должна быть неотрицательным числом")
)

// TransactionService предоставляет методы для работы с транзакциями
type TransactionService struct {
	db      *gorm.DB
	metrics *utils.Metrics
}

// NewTransactionService создает новый экземпляр TransactionService
func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{
		db:      db,
		metrics: utils.GetMetrics(),
	}
}

// GetAllByUserID возвращает все транзакции пользователя,
// отсортированные по дате создания по убыванию
func (s *TransactionService) GetAllByUserID(userID uint) ([]models.Transaction, error) {
	var transactions []models.Transaction

	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, errors.New("ошибка при загрузке транзакций")
	}

	if len(transactions) == 0 {
		return []models.Transaction{}, nil
	}

	return transactions, nil
}

// Create создает новую транзакцию со свежим UNQID
func (s *TransactionService) Create(userID uint, req TransactionRequest) (*models.Transaction, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:        userID,
		Amount:        amount,
		Type:          normalizeType(req.Type),
		Reason:        req.Reason,
		TransactionID: req.TransactionID,
		UNQID:         utils.GenerateUNQID(),
	}

	if err := s.db.Create(transaction).Error; err != nil {
		s.metrics.RecordLedgerOperation("create", transaction.Type, err)
		return nil, errors.New("ошибка при создании транзакции")
	}

	s.metrics.RecordLedgerOperation("create", transaction.Type, nil)
	return transaction, nil
}

// Update обновляет сумму, причину, тип и внешний идентификатор существующей
// транзакции. UNQID при редактировании не перегенерируется
func (s *TransactionService) Update(id uint, req TransactionRequest) error {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return err
	}

	var transaction models.Transaction
	if err := s.db.First(&transaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTransactionNotFound
		}
		return errors.New("ошибка при поиске транзакции")
	}

	txType := normalizeType(req.Type)
	updates := map[string]interface{}{
		"amount":         amount,
		"reason":         req.Reason,
		"type":           txType,
		"transaction_id": req.TransactionID,
	}

	if err := s.db.Model(&transaction).Updates(updates).Error; err != nil {
		s.metrics.RecordLedgerOperation("update", txType, err)
		return errors.New("ошибка при обновлении транзакции")
	}

	s.metrics.RecordLedgerOperation("update", txType, nil)
	return nil
}

// DeleteOne удаляет одну транзакцию по идентификатору
func (s *TransactionService) DeleteOne(id uint) error {
	result := s.db.Delete(&models.Transaction{}, id)
	if result.Error != nil {
		s.metrics.RecordLedgerOperation("delete", "", result.Error)
		return errors.New("ошибка при удалении транзакции")
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}

	s.metrics.RecordLedgerOperation("delete", "", nil)
	return nil
}

// DeleteAll удаляет все транзакции. Фильтр "id <> 0" повторяет
// неравенство из исходной формы удаления: запись с нулевым
// идентификатором под него не попала бы, но такой записи не бывает
func (s *TransactionService) DeleteAll() error {
	if err := s.db.Where("id <> ?", 0).Delete(&models.Transaction{}).Error; err != nil {
		s.metrics.RecordLedgerOperation("reset", "", err)
		return errors.New("ошибка при удалении транзакций")
	}

	s.metrics.RecordLedgerOperation("reset", "", nil)
	return nil
}

// GetSummary загружает транзакции пользователя и считает агрегаты
func (s *TransactionService) GetSummary(userID uint) (*Summary, error) {
	transactions, err := s.GetAllByUserID(userID)
	if err != nil {
		return nil, err
	}

	summary := ComputeSummary(transactions)
	return &summary, nil
}

// ComputeSummary считает агрегаты по полному списку транзакций.
// Агрегаты всегда пересчитываются заново, инкрементального
// обслуживания нет. Для сумм используется decimal, чтобы
// исключить накопление погрешности float64
func ComputeSummary(transactions []models.Transaction) Summary {
	earned := decimal.Zero
	spent := decimal.Zero

	for _, t := range transactions {
		amount := decimal.NewFromFloat(t.Amount)
		switch t.Type {
		case models.TransactionTypeCredit:
			earned = earned.Add(amount)
		case models.TransactionTypeDebit:
			spent = spent.Add(amount)
		}
	}

	return Summary{
		Earned:  earned.InexactFloat64(),
		Spent:   spent.InexactFloat64(),
		Balance: earned.Sub(spent).InexactFloat64(),
	}
}

// parseAmount разбирает строковую сумму из формы
func parseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || amount < 0 {
		return 0, ErrInvalidAmount
	}
	return amount, nil
}

// normalizeType возвращает тип транзакции, подставляя credit по умолчанию
func normalizeType(txType string) string {
	if txType == "" {
		return models.TransactionTypeCredit
	}
	return txType
}
