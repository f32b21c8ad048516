package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// Алфавит base36 для случайного суффикса
const unqidAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

const unqidSuffixLength = 5

// GenerateUNQID генерирует человекочитаемый идентификатор транзакции
// вида HH:MM-DD/MM/YYYY-XXXXX. Идентификатор предназначен только для
// отображения, глобальная уникальность не гарантируется
func GenerateUNQID() string {
	return GenerateUNQIDAt(time.Now())
}

// GenerateUNQIDAt генерирует идентификатор для заданного момента времени
func GenerateUNQIDAt(t time.Time) string {
	suffix := make([]byte, unqidSuffixLength)
	for i := range suffix {
		suffix[i] = unqidAlphabet[rand.Intn(len(unqidAlphabet))]
	}

	return fmt.Sprintf("%02d:%02d-%02d/%02d/%d-%s",
		t.Hour(),
		t.Minute(),
		t.Day(),
		int(t.Month()),
		t.Year(),
		string(suffix),
	)
}
