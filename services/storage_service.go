package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// StorageService предоставляет файловое хранилище для загруженных
// аватаров. Объекты лежат в одной директории и раздаются по
// публичному URL
type StorageService struct {
	dir       string
	publicURL string
}

// NewStorageService создает новый экземпляр StorageService
func NewStorageService(dir, publicURL string) *StorageService {
	return &StorageService{
		dir:       dir,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// ObjectName формирует имя объекта из метки времени и расширения
// исходного файла. Две загрузки в одну миллисекунду дали бы
// одинаковое имя; это не предотвращается
func (s *StorageService) ObjectName(filename string, now time.Time) string {
	return fmt.Sprintf("%d%s", now.UnixMilli(), filepath.Ext(filename))
}

// Upload сохраняет содержимое объекта в хранилище
func (s *StorageService) Upload(name string, content io.Reader) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("ошибка создания директории хранилища: %v", err)
	}

	file, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return fmt.Errorf("ошибка создания файла: %v", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		return fmt.Errorf("ошибка записи файла: %v", err)
	}

	return nil
}

// PublicURL возвращает публичный URL загруженного объекта
func (s *StorageService) PublicURL(name string) string {
	return s.publicURL + "/avatars/" + name
}
