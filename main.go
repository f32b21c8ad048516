package main

import (
	"fmt"
	"log"
	"net/http"

	"financeTracker/config"
	"financeTracker/controllers"
	"financeTracker/database"
	"financeTracker/middleware"
	"financeTracker/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

// healthHandler отвечает на проверку работоспособности
func healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	fmt.Fprint(w, "OK")
}

func main() {
	// Загружаем .env, если он есть
	godotenv.Load()

	// Инициализируем конфигурацию
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Инициализируем подключение к базе данных и выполняем миграции
	gormDB, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	db := &database.Database{DB: gormDB}

	// Инициализируем сервисы
	emailService := services.NewEmailService(cfg)
	transactionService := services.NewTransactionService(gormDB)
	profileService := services.NewProfileService(services.NewFileStore(cfg.Storage.ProfilePath))
	storageService := services.NewStorageService(cfg.Storage.AvatarsDir, cfg.Server.PublicURL)

	// Инициализируем контроллеры
	authController := controllers.NewAuthController(db, emailService)
	transactionController := controllers.NewTransactionController(transactionService)
	profileController := controllers.NewProfileController(profileService, storageService)

	// Создаем роутер
	router := mux.NewRouter()
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.RateLimit)

	// Проверка работоспособности
	router.HandleFunc("/health", healthHandler).Methods("GET")

	// Публичные маршруты для аутентификации
	router.HandleFunc("/api/auth/signUp", authController.SignUp).Methods("POST")
	router.HandleFunc("/api/auth/signIn", authController.SignIn).Methods("POST")
	router.HandleFunc("/api/auth/session", authController.GetSession).Methods("GET")

	// Публичная раздача загруженных аватаров
	router.PathPrefix("/avatars/").Handler(
		http.StripPrefix("/avatars/", http.FileServer(http.Dir(cfg.Storage.AvatarsDir))),
	).Methods("GET")

	// Защищенные маршруты
	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(middleware.AuthMiddleware([]byte(authController.GetJWTKey())))
	protected.Use(middleware.LoggingMiddleware)

	protected.HandleFunc("/auth/signOut", authController.SignOut).Methods("POST")

	// Маршруты для работы с транзакциями
	protected.HandleFunc("/transactions/summary", transactionController.GetSummary).Methods("GET")
	protected.HandleFunc("/transactions/export", transactionController.ExportTransactions).Methods("GET")
	protected.HandleFunc("/transactions", transactionController.GetTransactions).Methods("GET")
	protected.HandleFunc("/transactions", transactionController.AddTransaction).Methods("POST")
	protected.HandleFunc("/transactions", transactionController.ResetTransactions).Methods("DELETE")
	protected.HandleFunc("/transactions/{id}", transactionController.UpdateTransaction).Methods("PUT")
	protected.HandleFunc("/transactions/{id}", transactionController.DeleteTransaction).Methods("DELETE")

	// Маршруты для работы с профилем
	protected.HandleFunc("/profile", profileController.GetProfile).Methods("GET")
	protected.HandleFunc("/profile", profileController.SaveProfile).Methods("PUT")
	protected.HandleFunc("/profile/photo", profileController.UploadPhoto).Methods("POST")

	// Метрики приложения
	protected.HandleFunc("/metrics", transactionController.GetMetrics).Methods("GET")

	// Запускаем сервер
	port := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на порту %s", port)
	if err := http.ListenAndServe(port, router); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
