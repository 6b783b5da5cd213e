package dao

import "time"

// The schema itself, including the cascading foreign keys, is owned by the
// migrations in internal/db. The Resort and User pointers here only drive
// Preload and are never used to create tables.

type User struct {
	UserID       uint   `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"not null;uniqueIndex:UX_Users_Email"`
	Password     string `gorm:"not null"`
	Username     string `gorm:"not null"`
	MobileNumber string `gorm:"not null"`
	UserRole     string `gorm:"not null"` // "ADMIN" or "CUSTOMER"
}

func (User) TableName() string {
	return "Users"
}

type Resort struct {
	ResortID              uint   `gorm:"primaryKey;autoIncrement"`
	ResortName            string `gorm:"not null"`
	ResortLocation        string `gorm:"not null"`
	Description           string `gorm:"not null"`
	ResortImageURL        string `gorm:"not null"`
	Price                 int64  `gorm:"not null"`
	Capacity              int    `gorm:"not null"`
	ResortAvailableStatus string `gorm:"not null"`
}

func (Resort) TableName() string {
	return "Resorts"
}

type Booking struct {
	BookingID   uint      `gorm:"primaryKey;autoIncrement"`
	FromDate    time.Time `gorm:"not null"`
	ToDate      time.Time `gorm:"not null;check:to_date >= from_date"`
	Address     string    `gorm:"not null"`
	NoOfPersons int       `gorm:"not null"`
	TotalPrice  float64   `gorm:"not null"`
	ResortID    uint      `gorm:"not null;index:IX_Bookings_ResortId"`
	Resort      *Resort   `gorm:"foreignKey:ResortID;references:ResortID"`
	UserID      uint      `gorm:"not null;index:IX_Bookings_UserId"`
	User        *User     `gorm:"foreignKey:UserID;references:UserID"`
}

func (Booking) TableName() string {
	return "Bookings"
}

type Review struct {
	ReviewID    uint      `gorm:"primaryKey;autoIncrement"`
	Subject     string    `gorm:"not null"`
	Body        string    `gorm:"not null"`
	Rating      int       `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	DateCreated time.Time `gorm:"not null"`
	UserID      uint      `gorm:"not null;index:IX_Reviews_UserId"`
	User        *User     `gorm:"foreignKey:UserID;references:UserID"`
}

func (Review) TableName() string {
	return "Reviews"
}
