package models

// Profile хранится только в локальном key-value хранилище,
// а не в реляционной базе данных
type Profile struct {
	Name  string `json:"name"`
	Photo string `json:"photo"`
}
