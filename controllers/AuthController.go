package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"financeTracker/config"
	"financeTracker/database"
	"financeTracker/middleware"
	"financeTracker/services"
	"financeTracker/utils"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct {
	userHandler  *services.UserService
	emailService *services.EmailService
	validate     *validator.Validate
	config       *config.Config
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type SignInResponse struct {
	Token string           `json:"token"`
	User  services.UserDTO `json:"user"`
}

type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Session описывает текущую сессию для пробы состояния входа
type Session struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	ExpiresAt int64  `json:"expires_at"`
}

type SessionResponse struct {
	Session *Session `json:"session"`
}

func NewAuthController(db *database.Database, email *services.EmailService) *AuthController {
	// Получаем конфигурацию
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	return &AuthController{
		userHandler:  services.NewUserService(db),
		emailService: email,
		validate:     validator.New(),
		config:       cfg,
	}
}

// SignIn обрабатывает вход пользователя
func (c *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Валидация запроса
	if err := c.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		http.Error(w, validationErrors.Error(), http.StatusBadRequest)
		return
	}

	// Ищем пользователя по email
	user, err := c.userHandler.FindByEmail(req.Email)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	// Проверяем пароль
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	// Создаем JWT токен
	tokenString, err := c.generateToken(user.ID, user.Email)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	response := SignInResponse{
		Token: tokenString,
		User: services.UserDTO{
			ID:    user.ID,
			Email: user.Email,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// SignUp обрабатывает регистрацию пользователя. Автоматического входа
// после регистрации нет: пользователю предлагается войти отдельно
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Валидация запроса
	if err := c.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		http.Error(w, validationErrors.Error(), http.StatusBadRequest)
		return
	}

	// Создаем пользователя через UserService
	user, err := c.userHandler.CreateUserInternal(services.CreateUserRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Отправляем приветственное письмо, если SMTP настроен.
	// Ошибка отправки только логируется
	if c.emailService != nil && c.emailService.Enabled() {
		go func(email string) {
			if err := c.emailService.SendWelcomeNotification(email); err != nil {
				utils.LogError("Не удалось отправить приветственное письмо %s: %v", email, err)
			}
		}(user.Email)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Registered. Login now.",
	})
}

// GetSession возвращает текущую сессию. При отсутствии или
// недействительности токена сессия равна null, а не ошибке:
// до подтверждения сессии приложение считается "не вошедшим"
func (c *AuthController) GetSession(w http.ResponseWriter, r *http.Request) {
	response := SessionResponse{}

	claims, err := middleware.ParseToken(r, []byte(c.config.JWT.SecretKey))
	if err == nil {
		userID, okID := claims["user_id"].(float64)
		email, okEmail := claims["email"].(string)
		expiresAt, _ := claims["exp"].(float64)
		if okID && okEmail {
			response.Session = &Session{
				UserID:    uint(userID),
				Email:     email,
				ExpiresAt: int64(expiresAt),
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// SignOut завершает сессию. Токен не хранится на сервере,
// поэтому завершение сводится к подтверждению: клиент отбрасывает токен
func (c *AuthController) SignOut(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Signed out",
	})
}

// GetJWTKey возвращает ключ для JWT
func (c *AuthController) GetJWTKey() string {
	return c.config.JWT.SecretKey
}

// generateToken создает JWT токен
func (c *AuthController) generateToken(userID uint, email string) (string, error) {
	expirationTime := time.Now().Add(time.Duration(c.config.JWT.ExpiresIn) * time.Hour)
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.config.JWT.SecretKey))
}
