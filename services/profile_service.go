package services

import (
	"encoding/json"
	"errors"
	"financeTracker/models"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Ключ, под которым профиль лежит в локальном хранилище
const profileKey = "profile"

// KeyValueStore представляет узкий интерфейс локального key-value хранилища
type KeyValueStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// FileStore реализует KeyValueStore поверх JSON-файла на диске
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore создает новое файловое хранилище по указанному пути
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// load читает все содержимое хранилища. Отсутствующий файл
// равнозначен пустому хранилищу
func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("ошибка чтения хранилища: %v", err)
	}

	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("ошибка разбора хранилища: %v", err)
	}

	return values, nil
}

// Get возвращает значение по ключу и признак его наличия
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", false, err
	}

	value, ok := values[key]
	return value, ok, nil
}

// Set записывает значение по ключу и сохраняет хранилище на диск
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value

	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("ошибка сериализации хранилища: %v", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("ошибка создания директории хранилища: %v", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("ошибка записи хранилища: %v", err)
	}

	return nil
}

// ProfileService предоставляет методы для работы с профилем.
// Профиль не хранится в реляционной базе: единственная граница
// персистентности - локальное key-value хранилище
type ProfileService struct {
	store KeyValueStore
}

// NewProfileService создает новый экземпляр ProfileService
func NewProfileService(store KeyValueStore) *ProfileService {
	return &ProfileService{store: store}
}

// Load загружает профиль из хранилища. Если профиль еще не
// сохранялся, возвращается пустой профиль
func (s *ProfileService) Load() (*models.Profile, error) {
	raw, ok, err := s.store.Get(profileKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &models.Profile{}, nil
	}

	var profile models.Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, errors.New("ошибка разбора сохраненного профиля")
	}

	return &profile, nil
}

// Save сохраняет профиль целиком в хранилище
func (s *ProfileService) Save(profile *models.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return errors.New("ошибка сериализации профиля")
	}

	return s.store.Set(profileKey, string(data))
}

// AttachPhoto добавляет URL фотографии к текущему профилю и сразу
// сохраняет его. Имя при этом не затрагивается: оно становится
// долговечным только через явный Save
func (s *ProfileService) AttachPhoto(photoURL string) (*models.Profile, error) {
	profile, err := s.Load()
	if err != nil {
		return nil, err
	}

	profile.Photo = photoURL
	if err := s.Save(profile); err != nil {
		return nil, err
	}

	return profile, nil
}
