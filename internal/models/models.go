package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null"                 json:"name"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Admin struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"unique;not null"          json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
}

type Product struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"not null"                 json:"title"`
	Category  string    `gorm:"index"                    json:"category"`
	Price     float64   `gorm:"not null"                 json:"price"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

// Items is the serialized line-item blob; the rows inside it carry the
// price at the time of order, independent of later catalog edits.
type Order struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null"           json:"user_id"`
	Name      string    `gorm:"not null"                 json:"name"`
	Address   string    `gorm:"not null"                 json:"address"`
	Phone     string    `gorm:"not null"                 json:"phone"`
	Items     string    `gorm:"type:text;not null"       json:"items"`
	Total     float64   `gorm:"not null"                 json:"total"`
	Status    string    `gorm:"not null"                 json:"status"`
	PaymentID *string   `json:"payment_id"`
	CreatedAt time.Time `gorm:"index"                    json:"created_at"`
}

// OutboxMessage is a pending notification written in the same transaction
// as the state change it reports. SentAt stays nil until delivery succeeds.
type OutboxMessage struct {
	ID        string     `gorm:"primaryKey"     json:"id"`
	Kind      string     `gorm:"not null"       json:"kind"`
	Recipient string     `gorm:"not null"       json:"recipient"`
	Subject   string     `gorm:"not null"       json:"subject"`
	Body      string     `gorm:"type:text"      json:"body"`
	Attempts  int        `gorm:"default:0"      json:"attempts"`
	LastError string     `json:"last_error"`
	CreatedAt time.Time  `gorm:"index"          json:"created_at"`
	SentAt    *time.Time `json:"sent_at"`
}

type Contact struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null"                 json:"name"`
	Email     string    `gorm:"not null"                 json:"email"`
	Message   string    `gorm:"type:text;not null"       json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
