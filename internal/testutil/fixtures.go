package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"paisa/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TestPassword is the plaintext password every fixture user is created with.
const TestPassword = "password123"

// TestSecurityAnswer is the plaintext answer to every fixture user's
// security question.
const TestSecurityAnswer = "blue"

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	answerHash, err := bcrypt.GenerateFromPassword([]byte(TestSecurityAnswer), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash security answer: %v", err)
	}

	user := &models.User{
		Email:              email,
		Password:           string(passwordHash),
		DisplayName:        fmt.Sprintf("Test User %d", nextID()),
		SecurityQuestion:   "What is your favourite colour?",
		SecurityAnswerHash: string(answerHash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestIncomeSource creates an income source owned by the given user.
func CreateTestIncomeSource(t *testing.T, db *gorm.DB, userID string) *models.IncomeSource {
	t.Helper()

	source := &models.IncomeSource{
		UserID: userID,
		Name:   fmt.Sprintf("Test Source %d", nextID()),
	}
	if err := db.Create(source).Error; err != nil {
		t.Fatalf("failed to create test income source: %v", err)
	}
	return source
}

// CreateTestExpenseVertical creates an expense vertical owned by the given user.
func CreateTestExpenseVertical(t *testing.T, db *gorm.DB, userID string) *models.ExpenseVertical {
	t.Helper()

	vertical := &models.ExpenseVertical{
		UserID: userID,
		Name:   fmt.Sprintf("Test Vertical %d", nextID()),
	}
	if err := db.Create(vertical).Error; err != nil {
		t.Fatalf("failed to create test expense vertical: %v", err)
	}
	return vertical
}

// CreateTestInstrument creates a shared savings instrument in the given bucket.
func CreateTestInstrument(t *testing.T, db *gorm.DB, bucket models.InstrumentBucket) *models.SavingsInstrument {
	t.Helper()

	instrument := &models.SavingsInstrument{
		Name:   fmt.Sprintf("Test Instrument %d", nextID()),
		Bucket: bucket,
	}
	if err := db.Create(instrument).Error; err != nil {
		t.Fatalf("failed to create test instrument: %v", err)
	}
	return instrument
}

// CreateTestIncomeEntry creates an income entry for the given month and amount.
func CreateTestIncomeEntry(t *testing.T, db *gorm.DB, userID, sourceID, month, amount string) *models.IncomeEntry {
	t.Helper()

	entry := &models.IncomeEntry{
		UserID:   userID,
		SourceID: sourceID,
		Month:    month,
		Amount:   mustDecimal(t, amount),
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test income entry: %v", err)
	}
	return entry
}

// CreateTestExpenseEntry creates an expense entry for the given month and amount.
func CreateTestExpenseEntry(t *testing.T, db *gorm.DB, userID, verticalID, month, amount string) *models.ExpenseEntry {
	t.Helper()

	entry := &models.ExpenseEntry{
		UserID:     userID,
		VerticalID: verticalID,
		Month:      month,
		Amount:     mustDecimal(t, amount),
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test expense entry: %v", err)
	}
	return entry
}

// CreateTestSavingsEntry creates a savings contribution for the given month and amount.
func CreateTestSavingsEntry(t *testing.T, db *gorm.DB, userID, instrumentID, month, amount string) *models.SavingsEntry {
	t.Helper()

	entry := &models.SavingsEntry{
		UserID:       userID,
		InstrumentID: instrumentID,
		Month:        month,
		Amount:       mustDecimal(t, amount),
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test savings entry: %v", err)
	}
	return entry
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal fixture %q: %v", s, err)
	}
	return d
}
