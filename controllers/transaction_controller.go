package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"financeTracker/models"
	"financeTracker/services"
	"financeTracker/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// TransactionStore представляет хранилище транзакций, с которым
// работает контроллер. Выделен в интерфейс как единая граница
// чтения/записи состояния журнала
type TransactionStore interface {
	GetAllByUserID(userID uint) ([]models.Transaction, error)
	Create(userID uint, req services.TransactionRequest) (*models.Transaction, error)
	Update(id uint, req services.TransactionRequest) error
	DeleteOne(id uint) error
	DeleteAll() error
}

// TransactionController обрабатывает запросы, связанные с журналом транзакций
type TransactionController struct {
	store     TransactionStore
	exporter  *services.ExportService
	validator *validator.Validate
}

// NewTransactionController создает новый экземпляр TransactionController
func NewTransactionController(store TransactionStore) *TransactionController {
	return &TransactionController{
		store:     store,
		exporter:  services.NewExportService(),
		validator: validator.New(),
	}
}

// validateRequest валидирует DTO транзакции. Сумма и внешний
// идентификатор обязательны, остальные поля имеют значения по умолчанию
func (c *TransactionController) validateRequest(req services.TransactionRequest) error {
	if err := c.validator.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		for _, e := range validationErrors {
			if e.Tag() == "required" {
				return errors.New("Amount & Transaction ID required")
			}
			if e.Tag() == "oneof" {
				return errors.New("поле " + e.Field() + " должно быть одним из: " + e.Param())
			}
		}
		return errors.New(validationErrors.Error())
	}
	return nil
}

// confirmed проверяет, подтвердил ли пользователь разрушительное действие
func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}

// GetTransactions возвращает все транзакции пользователя (новые сверху)
func (c *TransactionController) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(uint)
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	transactions, err := c.store.GetAllByUserID(userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(transactions)
}

// AddTransaction обрабатывает создание транзакции
func (c *TransactionController) AddTransaction(w http.ResponseWriter, r *http.Request) {
	// Получаем ID пользователя из контекста (установлен middleware)
	userID, ok := r.Context().Value("user_id").(uint)
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var req services.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Валидируем DTO до обращения к хранилищу
	if err := c.validateRequest(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	transaction, err := c.store.Create(userID, req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAmount) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(transaction)
}

// UpdateTransaction обрабатывает редактирование транзакции по идентификатору.
// Обновляются сумма, причина, тип и внешний идентификатор; UNQID сохраняется
func (c *TransactionController) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	if _, ok := r.Context().Value("user_id").(uint); !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	id, err := parseID(r)
	if err != nil {
		http.Error(w, "Invalid transaction id", http.StatusBadRequest)
		return
	}

	var req services.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Валидируем DTO до обращения к хранилищу
	if err := c.validateRequest(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := c.store.Update(id, req); err != nil {
		switch {
		case errors.Is(err, services.ErrTransactionNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, services.ErrInvalidAmount):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "транзакция обновлена",
	})
}

// DeleteTransaction обрабатывает удаление одной транзакции.
// Без подтверждения операция не выполняется
func (c *TransactionController) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if _, ok := r.Context().Value("user_id").(uint); !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	id, err := parseID(r)
	if err != nil {
		http.Error(w, "Invalid transaction id", http.StatusBadRequest)
		return
	}

	if !confirmed(r) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "удаление не подтверждено",
		})
		return
	}

	if err := c.store.DeleteOne(id); err != nil {
		if errors.Is(err, services.ErrTransactionNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "транзакция удалена",
	})
}

// ResetTransactions обрабатывает удаление всех транзакций.
// Без подтверждения операция не выполняется
func (c *TransactionController) ResetTransactions(w http.ResponseWriter, r *http.Request) {
	if _, ok := r.Context().Value("user_id").(uint); !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	if !confirmed(r) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "удаление не подтверждено",
		})
		return
	}

	if err := c.store.DeleteAll(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "все транзакции удалены",
	})
}

// GetSummary возвращает агрегаты: заработано, потрачено, баланс.
// Агрегаты пересчитываются из полного списка при каждом вызове
func (c *TransactionController) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(uint)
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	transactions, err := c.store.GetAllByUserID(userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(services.ComputeSummary(transactions))
}

// ExportTransactions возвращает XML-выписку по транзакциям пользователя
func (c *TransactionController) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(uint)
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}
	email, _ := r.Context().Value("email").(string)

	transactions, err := c.store.GetAllByUserID(userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	statement, err := c.exporter.BuildStatement(email, transactions)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition", `attachment; filename="statement.xml"`)
	w.Write(statement)
}

// GetMetrics возвращает снимок метрик приложения
func (c *TransactionController) GetMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(utils.GetMetrics().GetMetricsSnapshot())
}

// parseID извлекает идентификатор транзакции из пути запроса
func parseID(r *http.Request) (uint, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
