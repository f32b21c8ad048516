package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"financeTracker/models"
)

// ProfileStore представляет хранилище профиля с единственной
// границей персистентности
type ProfileStore interface {
	Load() (*models.Profile, error)
	Save(profile *models.Profile) error
	AttachPhoto(photoURL string) (*models.Profile, error)
}

// Uploader представляет файловое хранилище аватаров
type Uploader interface {
	ObjectName(filename string, now time.Time) string
	Upload(name string, content io.Reader) error
	PublicURL(name string) string
}

// ProfileController обрабатывает запросы, связанные с профилем
type ProfileController struct {
	profiles ProfileStore
	storage  Uploader
}

// NewProfileController создает новый экземпляр ProfileController
func NewProfileController(profiles ProfileStore, storage Uploader) *ProfileController {
	return &ProfileController{
		profiles: profiles,
		storage:  storage,
	}
}

// GetProfile возвращает сохраненный профиль
func (c *ProfileController) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := c.profiles.Load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// SaveProfile сохраняет профиль целиком. Изменения имени становятся
// долговечными только через этот вызов
func (c *ProfileController) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := c.profiles.Save(&profile); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Profile saved",
	})
}

// UploadPhoto обрабатывает загрузку фотографии профиля.
// Без файла операция не выполняется; при ошибке загрузки профиль
// остается без изменений. При успехе публичный URL сразу
// сохраняется в профиле, не дожидаясь явного SaveProfile
func (c *ProfileController) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			// Файл не передан: ничего не делаем
			profile, loadErr := c.profiles.Load()
			if loadErr != nil {
				http.Error(w, loadErr.Error(), http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(profile)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Имя объекта: метка времени + расширение исходного файла
	name := c.storage.ObjectName(header.Filename, time.Now())

	if err := c.storage.Upload(name, file); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	profile, err := c.profiles.AttachPhoto(c.storage.PublicURL(name))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}
