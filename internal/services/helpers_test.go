package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

// openTestDB gives each test its own in-memory sqlite database with the full
// schema migrated.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", n)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.List{},
		&models.ListItem{},
		&models.Session{},
		&models.SessionMember{},
		&models.Vote{},
		&models.SessionItem{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newTestServices(db *gorm.DB) (*SessionService, *MembershipService, *VoteService, *AdhocService) {
	scoring := NewScoringService()
	return NewSessionService(db, scoring, 24 * time.Hour),
		NewMembershipService(db),
		NewVoteService(db, scoring),
		NewAdhocService(db)
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		PasswordHash: "x",
		Name:         username,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return &user
}

// createTestList seeds a list owned by ownerID with one item per name, in
// the given order.
func createTestList(t *testing.T, db *gorm.DB, ownerID uint, itemNames ...string) *models.List {
	t.Helper()
	list := models.List{
		OwnerID: ownerID,
		Name:    "test list",
	}
	if err := db.Create(&list).Error; err != nil {
		t.Fatalf("create list: %v", err)
	}
	for i, name := range itemNames {
		item := models.ListItem{
			ListID:   list.ID,
			ItemType: models.ItemTypeMovie,
			Name:     name,
			OrderNum: i,
			AddedBy:  ownerID,
			AddedAt:  time.Now(),
		}
		if err := db.Create(&item).Error; err != nil {
			t.Fatalf("create list item %s: %v", name, err)
		}
	}
	return &list
}
