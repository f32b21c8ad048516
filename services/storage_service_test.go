package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestObjectName(t *testing.T) {
	svc := NewStorageService(t.TempDir(), "http://localhost:8080")

	ts := time.UnixMilli(1700000000000)
	name := svc.ObjectName("cat.png", ts)

	want := fmt.Sprintf("%d.png", ts.UnixMilli())
	if name != want {
		t.Errorf("ObjectName = %q, want %q", name, want)
	}

	// Файл без расширения дает имя без расширения
	if got := svc.ObjectName("noext", ts); got != fmt.Sprintf("%d", ts.UnixMilli()) {
		t.Errorf("ObjectName for file without extension = %q", got)
	}
}

func TestUpload(t *testing.T) {
	dir := t.TempDir()
	svc := NewStorageService(dir, "http://localhost:8080")

	if err := svc.Upload("1.png", strings.NewReader("image-bytes")); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "1.png"))
	if err != nil {
		t.Fatalf("uploaded file not readable: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("uploaded content = %q, want %q", data, "image-bytes")
	}
}

func TestPublicURL(t *testing.T) {
	// Хвостовой слэш базового URL не должен удваиваться
	svc := NewStorageService(t.TempDir(), "http://localhost:8080/")

	got := svc.PublicURL("1.png")
	want := "http://localhost:8080/avatars/1.png"
	if got != want {
		t.Errorf("PublicURL = %q, want %q", got, want)
	}
}
