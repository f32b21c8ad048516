package utils

import (
	"sync"
	"time"
)

// Metrics содержит метрики приложения
type Metrics struct {
	mu sync.RWMutex

	// Метрики запросов
	TotalRequests   int64
	FailedRequests  int64
	RequestLatency  time.Duration
	AverageLatency  time.Duration
	LastRequestTime time.Time

	// Метрики операций с транзакциями
	CreatedTransactions int64
	UpdatedTransactions int64
	DeletedTransactions int64
	LedgerResets        int64
	CreditOperations    int64
	DebitOperations     int64
	LastLedgerOperation time.Time

	// Метрики ошибок
	ErrorCount    int64
	LastErrorTime time.Time
	ErrorTypes    map[string]int64
}

var (
	metrics     *Metrics
	metricsOnce sync.Once
)

// GetMetrics возвращает экземпляр метрик
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			ErrorTypes: make(map[string]int64),
		}
	})
	return metrics
}

// RecordRequest записывает метрики запроса
func (m *Metrics) RecordRequest(duration time.Duration, failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests++
	m.RequestLatency += duration
	m.AverageLatency = m.RequestLatency / time.Duration(m.TotalRequests)
	m.LastRequestTime = time.Now()

	if failed {
		m.FailedRequests++
	}
}

// RecordLedgerOperation записывает метрики операции с транзакциями
func (m *Metrics) RecordLedgerOperation(operation, txType string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastLedgerOperation = time.Now()

	if err != nil {
		m.recordErrorLocked(err)
		return
	}

	switch operation {
	case "create":
		m.CreatedTransactions++
	case "update":
		m.UpdatedTransactions++
	case "delete":
		m.DeletedTransactions++
	case "reset":
		m.LedgerResets++
	}

	switch txType {
	case "credit":
		m.CreditOperations++
	case "debit":
		m.DebitOperations++
	}
}

// RecordError записывает метрики ошибки
func (m *Metrics) RecordError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordErrorLocked(err)
}

func (m *Metrics) recordErrorLocked(err error) {
	m.ErrorCount++
	m.LastErrorTime = time.Now()

	errorType := "unknown"
	if err != nil {
		errorType = err.Error()
	}

	m.ErrorTypes[errorType]++
}

// GetMetricsSnapshot возвращает снимок текущих метрик
func (m *Metrics) GetMetricsSnapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"total_requests":       m.TotalRequests,
		"failed_requests":      m.FailedRequests,
		"average_latency":      m.AverageLatency.String(),
		"created_transactions": m.CreatedTransactions,
		"updated_transactions": m.UpdatedTransactions,
		"deleted_transactions": m.DeletedTransactions,
		"ledger_resets":        m.LedgerResets,
		"credit_operations":    m.CreditOperations,
		"debit_operations":     m.DebitOperations,
		"error_count":          m.ErrorCount,
		"last_error_time":      m.LastErrorTime,
		"error_types":          m.ErrorTypes,
	}
}

// ResetMetrics сбрасывает все метрики
func (m *Metrics) ResetMetrics() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests = 0
	m.FailedRequests = 0
	m.RequestLatency = 0
	m.AverageLatency = 0
	m.CreatedTransactions = 0
	m.UpdatedTransactions = 0
	m.DeletedTransactions = 0
	m.LedgerResets = 0
	m.CreditOperations = 0
	m.DebitOperations = 0
	m.ErrorCount = 0
	m.ErrorTypes = make(map[string]int64)
}
