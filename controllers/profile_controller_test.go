package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"financeTracker/models"
)

// fakeProfileStore подменяет хранилище профиля в тестах
type fakeProfileStore struct {
	profile models.Profile

	saveCalls   int
	attachCalls int
	lastSaved   models.Profile
	lastPhoto   string
}

func (f *fakeProfileStore) Load() (*models.Profile, error) {
	p := f.profile
	return &p, nil
}

func (f *fakeProfileStore) Save(profile *models.Profile) error {
	f.saveCalls++
	f.lastSaved = *profile
	f.profile = *profile
	return nil
}

func (f *fakeProfileStore) AttachPhoto(photoURL string) (*models.Profile, error) {
	f.attachCalls++
	f.lastPhoto = photoURL
	f.profile.Photo = photoURL
	p := f.profile
	return &p, nil
}

// fakeUploader подменяет файловое хранилище аватаров
type fakeUploader struct {
	failUpload bool

	uploads  map[string]string
	lastName string
}

func (f *fakeUploader) ObjectName(filename string, now time.Time) string {
	ext := ""
	if i := strings.LastIndex(filename, "."); i >= 0 {
		ext = filename[i:]
	}
	return fmt.Sprintf("%d%s", now.UnixMilli(), ext)
}

func (f *fakeUploader) Upload(name string, content io.Reader) error {
	if f.failUpload {
		return errors.New("хранилище недоступно")
	}
	data, _ := io.ReadAll(content)
	if f.uploads == nil {
		f.uploads = make(map[string]string)
	}
	f.uploads[name] = string(data)
	f.lastName = name
	return nil
}

func (f *fakeUploader) PublicURL(name string) string {
	return "http://localhost:8080/avatars/" + name
}

// multipartBody собирает multipart-форму с файлом фотографии
func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("photo", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}

	return body, writer.FormDataContentType()
}

func TestSaveProfile(t *testing.T) {
	store := &fakeProfileStore{}
	controller := NewProfileController(store, &fakeUploader{})

	body := `{"name": "Иван", "photo": "http://localhost:8080/avatars/1.png"}`
	req := httptest.NewRequest("PUT", "/api/profile", strings.NewReader(body))
	rr := httptest.NewRecorder()

	controller.SaveProfile(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if store.saveCalls != 1 {
		t.Errorf("store.Save called %d times, want 1", store.saveCalls)
	}
	// Сохраняется ровно тот профиль, что пришел в запросе
	want := models.Profile{Name: "Иван", Photo: "http://localhost:8080/avatars/1.png"}
	if store.lastSaved != want {
		t.Errorf("saved profile = %+v, want %+v", store.lastSaved, want)
	}
	if !strings.Contains(rr.Body.String(), "Profile saved") {
		t.Errorf("unexpected body: %q", rr.Body.String())
	}
}

func TestUploadPhoto(t *testing.T) {
	store := &fakeProfileStore{profile: models.Profile{Name: "Иван"}}
	uploader := &fakeUploader{}
	controller := NewProfileController(store, uploader)

	body, contentType := multipartBody(t, "cat.png", "image-bytes")
	req := httptest.NewRequest("POST", "/api/profile/photo", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	controller.UploadPhoto(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %q)", rr.Code, http.StatusOK, rr.Body.String())
	}

	// Имя объекта: метка времени + расширение исходного файла
	if !strings.HasSuffix(uploader.lastName, ".png") {
		t.Errorf("object name = %q, want .png suffix", uploader.lastName)
	}
	if uploader.uploads[uploader.lastName] != "image-bytes" {
		t.Errorf("uploaded content = %q", uploader.uploads[uploader.lastName])
	}

	// Публичный URL сразу сохранен в профиле
	wantURL := "http://localhost:8080/avatars/" + uploader.lastName
	if store.lastPhoto != wantURL {
		t.Errorf("attached photo = %q, want %q", store.lastPhoto, wantURL)
	}

	var profile models.Profile
	if err := json.NewDecoder(rr.Body).Decode(&profile); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}
	if profile.Photo != wantURL {
		t.Errorf("response photo = %q, want %q", profile.Photo, wantURL)
	}
}

func TestUploadPhotoFailureLeavesProfileUnchanged(t *testing.T) {
	store := &fakeProfileStore{profile: models.Profile{Name: "Иван"}}
	uploader := &fakeUploader{failUpload: true}
	controller := NewProfileController(store, uploader)

	body, contentType := multipartBody(t, "cat.png", "image-bytes")
	req := httptest.NewRequest("POST", "/api/profile/photo", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	controller.UploadPhoto(rr, req)

	// Ошибка коллаборатора отдается как есть, профиль не тронут
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	if !strings.Contains(rr.Body.String(), "хранилище недоступно") {
		t.Errorf("unexpected body: %q", rr.Body.String())
	}
	if store.attachCalls != 0 || store.saveCalls != 0 {
		t.Errorf("profile store was touched: attach=%d save=%d", store.attachCalls, store.saveCalls)
	}
}

func TestUploadPhotoWithoutFile(t *testing.T) {
	store := &fakeProfileStore{profile: models.Profile{Name: "Иван"}}
	controller := NewProfileController(store, &fakeUploader{})

	// Форма без файла
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("name", "Иван"); err != nil {
		t.Fatal(err)
	}
	writer.Close()

	req := httptest.NewRequest("POST", "/api/profile/photo", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rr := httptest.NewRecorder()

	controller.UploadPhoto(rr, req)

	// Без файла операция ничего не меняет
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if store.attachCalls != 0 || store.saveCalls != 0 {
		t.Errorf("profile store was touched: attach=%d save=%d", store.attachCalls, store.saveCalls)
	}
}

func TestGetProfile(t *testing.T) {
	store := &fakeProfileStore{profile: models.Profile{Name: "Иван", Photo: "http://localhost:8080/avatars/1.png"}}
	controller := NewProfileController(store, &fakeUploader{})

	req := httptest.NewRequest("GET", "/api/profile", nil)
	rr := httptest.NewRecorder()

	controller.GetProfile(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var profile models.Profile
	if err := json.NewDecoder(rr.Body).Decode(&profile); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}
	if profile != store.profile {
		t.Errorf("profile = %+v, want %+v", profile, store.profile)
	}
}
