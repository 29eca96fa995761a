package models

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultAvatar is the placeholder image every profile starts with.
const DefaultAvatar = "default.jpg"

// Position is a job role that workers can hold.
type Position struct {
	ID   int64        `gorm:"primaryKey" json:"id"`
	Name PositionName `gorm:"size:255;not null" json:"name" validate:"required,choice"`
}

func (p Position) String() string {
	return string(p.Name)
}

// TaskType categorises tasks.
type TaskType struct {
	ID   int64        `gorm:"primaryKey" json:"id"`
	Name TaskTypeName `gorm:"size:255;not null" json:"name" validate:"required,choice"`
}

func (t TaskType) String() string {
	return string(t.Name)
}

// Worker is a staff account that can be assigned tasks.
type Worker struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	Username    string     `gorm:"size:150;not null;uniqueIndex" json:"username" validate:"required,max=150"`
	Password    string     `gorm:"size:128;not null" json:"-" validate:"max=128"`
	FirstName   string     `gorm:"size:150;not null;default:''" json:"first_name" validate:"max=150"`
	LastName    string     `gorm:"size:150;not null;default:''" json:"last_name" validate:"max=150"`
	Email       string     `gorm:"size:254;not null;default:''" json:"email" validate:"omitempty,email,max=254"`
	IsStaff     bool       `gorm:"not null" json:"is_staff"`
	IsActive    bool       `gorm:"not null" json:"is_active"`
	IsSuperuser bool       `gorm:"not null" json:"is_superuser"`
	DateJoined  time.Time  `gorm:"not null" json:"date_joined"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	PositionID  *int64     `gorm:"index" json:"position_id"`
	Position    *Position  `gorm:"constraint:OnDelete:SET NULL" json:"position,omitempty"`
}

// NewWorker returns an active account with the given names.
func NewWorker(username, firstName, lastName string) *Worker {
	return &Worker{
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		IsActive:  true,
	}
}

func (w Worker) String() string {
	return fmt.Sprintf("%s %s", w.FirstName, w.LastName)
}

// URL is the detail path the routing layer serves for this worker.
func (w Worker) URL() string {
	return fmt.Sprintf("/workers/%d/", w.ID)
}

// SetPassword replaces the stored hash with a bcrypt hash of raw.
func (w *Worker) SetPassword(raw string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	w.Password = string(hash)
	return nil
}

// CheckPassword reports whether raw matches the stored hash.
func (w Worker) CheckPassword(raw string) bool {
	if w.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(w.Password), []byte(raw)) == nil
}

func (w *Worker) BeforeCreate(tx *gorm.DB) error {
	if w.DateJoined.IsZero() {
		w.DateJoined = time.Now().UTC()
	}
	return nil
}

// Profile holds per-worker contact details and the avatar image.
type Profile struct {
	ID                      int64   `gorm:"primaryKey" json:"id"`
	WorkerID                int64   `gorm:"not null;uniqueIndex" json:"worker_id" validate:"required"`
	Worker                  *Worker `gorm:"constraint:OnDelete:CASCADE" json:"worker,omitempty"`
	Avatar                  string  `gorm:"size:100;not null" json:"avatar" validate:"max=100"`
	Phone                   string  `gorm:"size:255;not null;default:''" json:"phone" validate:"max=255"`
	MainProgrammingLanguage string  `gorm:"size:255;not null;default:''" json:"main_programming_language" validate:"max=255"`
}

// String returns the owning worker's username, or "" if Worker is not loaded.
func (p Profile) String() string {
	if p.Worker == nil {
		return ""
	}
	return p.Worker.Username
}

func (p *Profile) BeforeSave(tx *gorm.DB) error {
	if p.Avatar == "" {
		p.Avatar = DefaultAvatar
	}
	return nil
}

// Task is a unit of work assigned to exactly one worker.
type Task struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:255;not null;index" json:"name" validate:"required,max=255"`
	Description *string    `gorm:"type:text" json:"description"`
	Deadline    *time.Time `gorm:"type:date" json:"deadline"`
	IsCompleted bool       `gorm:"not null" json:"is_completed"`
	Priority    Priority   `gorm:"size:9;not null" json:"priority" validate:"required,choice"`
	TaskTypeID  *int64     `gorm:"index" json:"task_type_id"`
	TaskType    *TaskType  `gorm:"constraint:OnDelete:SET NULL" json:"task_type,omitempty"`
	AssigneeID  int64      `gorm:"column:assignees_id;not null;index" json:"assignees" validate:"required"`
	Assignee    *Worker    `gorm:"foreignKey:AssigneeID;constraint:OnDelete:CASCADE" json:"assignee,omitempty"`
	CreatedDate time.Time  `gorm:"type:date;not null;<-:create" json:"created_date"`
}

func (t Task) String() string {
	return t.Name
}

// BeforeCreate stamps the creation date; the column is insert-only afterwards.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	t.CreatedDate = Today()
	return nil
}

// Today returns the current date at midnight UTC.
func Today() time.Time {
	return DateOf(time.Now())
}

// DateOf drops the clock part of t, keeping its calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
