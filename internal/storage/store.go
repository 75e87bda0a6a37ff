package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/platform/logger"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInvite = errors.New("invalid or expired invite code")
	ErrSelfLink      = errors.New("cannot link to your own invite code")
	ErrNotLinked     = errors.New("no partner linked")
	ErrAlreadyLinked = errors.New("already linked to a partner")
)

type UserRecord struct {
	ID                 string `gorm:"primaryKey;size:128"`
	Email              string `gorm:"index"`
	FirstName          string
	LastName           string
	Gender             string
	Identity           string
	SpicinessLevel     int    `gorm:"not null;default:3"`
	SubscriptionStatus string `gorm:"not null;default:inactive"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (UserRecord) TableName() string { return "users" }

// BlueprintRecord holds the latest quiz result; resubmission overwrites it.
type BlueprintRecord struct {
	UserID      string        `gorm:"primaryKey;size:128"`
	Scores      models.Scores `gorm:"serializer:json"`
	PrimaryType string        `gorm:"not null"`
	CompletedAt time.Time
	UpdatedAt   time.Time
}

func (BlueprintRecord) TableName() string { return "blueprint_profiles" }

// PartnerRecord is one side of a partner link. Linked users each own a row
// pointing at the other.
type PartnerRecord struct {
	UserID           string  `gorm:"primaryKey;size:128"`
	Status           string  `gorm:"not null;default:none"`
	InviteCode       *string `gorm:"uniqueIndex;size:16"`
	PartnerID        string  `gorm:"index;size:128"`
	PartnerName      string
	PartnerBlueprint *models.PartnerBlueprint `gorm:"serializer:json"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (PartnerRecord) TableName() string { return "partner_connections" }

type MoodRecord struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"index;size:128;not null"`
	Current   string `gorm:"not null"`
	Libido    int
	CreatedAt time.Time
}

func (MoodRecord) TableName() string { return "moods" }

type SuggestionRecord struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"index;size:128;not null"`
	Category  string `gorm:"not null"`
	Title     string `gorm:"not null"`
	Content   string `gorm:"not null"`
	IsRead    bool   `gorm:"not null;default:false"`
	IsApplied bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
}

func (SuggestionRecord) TableName() string { return "ai_suggestions" }

type ChatConversationRecord struct {
	ID        uint                 `gorm:"primaryKey"`
	UserID    string               `gorm:"uniqueIndex;size:128;not null"`
	Messages  []models.ChatMessage `gorm:"serializer:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ChatConversationRecord) TableName() string { return "chat_conversations" }

type Store struct {
	db  *gorm.DB
	log *logger.Logger
	now func() time.Time
}

// Open connects with the named driver ("postgres" or "sqlite") and migrates.
func Open(driver, dsn string, baseLog *logger.Logger) (*Store, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "postgres", "postgresql":
		dialector = postgres.Open(dsn)
	case "sqlite", "sqlite3", "":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return New(db, baseLog)
}

// New wraps an open connection and migrates the schema.
func New(db *gorm.DB, baseLog *logger.Logger) (*Store, error) {
	if err := db.AutoMigrate(
		&UserRecord{},
		&BlueprintRecord{},
		&PartnerRecord{},
		&MoodRecord{},
		&SuggestionRecord{},
		&ChatConversationRecord{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &Store{db: db, log: baseLog.With("component", "Store"), now: time.Now}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks the connection for the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
