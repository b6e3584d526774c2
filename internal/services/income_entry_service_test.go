package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"paisa/internal/pagination"
	"paisa/internal/testutil"
)

func TestIncomeEntryCreate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeEntryService(db, NewIncomeSourceService(db))
		user := testutil.CreateTestUser(t, db)
		source := testutil.CreateTestIncomeSource(t, db, user.ID)

		entry, err := svc.Create(user.ID, source.ID, "2025-06", decimal.NewFromInt(50000), "june salary")
		testutil.AssertNoError(t, err)

		if entry.Month != "2025-06" {
			t.Errorf("expected month 2025-06, got %s", entry.Month)
		}
		testutil.AssertDecimalEqual(t, entry.Amount, "50000")
		if entry.Source.ID != source.ID {
			t.Error("expected source to be preloaded on the created entry")
		}
	})

	t.Run("invalid_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeEntryService(db, NewIncomeSourceService(db))
		user := testutil.CreateTestUser(t, db)
		source := testutil.CreateTestIncomeSource(t, db, user.ID)

		_, err := svc.Create(user.ID, source.ID, "2025-13", decimal.NewFromInt(100), "")
		testutil.AssertAppError(t, err, "INVALID_MONTH")
	})

	t.Run("zero_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeEntryService(db, NewIncomeSourceService(db))
		user := testutil.CreateTestUser(t, db)
		source := testutil.CreateTestIncomeSource(t, db, user.ID)

		_, err := svc.Create(user.ID, source.ID, "2025-06", decimal.Zero, "")
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})

	t.Run("negative_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeEntryService(db, NewIncomeSourceService(db))
		user := testutil.CreateTestUser(t, db)
		source := testutil.CreateTestIncomeSource(t, db, user.ID)

		_, err := svc.Create(user.ID, source.ID, "2025-06", decimal.NewFromInt(-5), "")
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})

	t.Run("amount_above_cap", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeEntryService(db, NewIncomeSourceService(db))
		user := testutil.CreateTestUser(t, db)
		source := testutil.CreateTestIncomeSource(t, db, user.ID)

		_, err := svc.Create(user.ID, source.ID, "2025-06", decimal.NewFromInt(1_000_000_001), "")
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})

	t.Run("other_users_source", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeEntryService(db, NewIncomeSourceService(db))
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		source := testutil.CreateTestIncomeSource(t, db, alice.ID)

		_, err := svc.Create(bob.ID, source.ID, "2025-06", decimal.NewFromInt(100), "")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestIncomeEntryList(t *testing.T) {
	t.Run("scoped_to_user_and_ordered", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeEntryService(db, NewIncomeSourceService(db))
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		aliceSource := testutil.CreateTestIncomeSource(t, db, alice.ID)
		bobSource := testutil.CreateTestIncomeSource(t, db, bob.ID)

		testutil.CreateTestIncomeEntry(t, db, alice.ID, aliceSource.ID, "2025-01", "100.00")
		testutil.CreateTestIncomeEntry(t, db, alice.ID, aliceSource.ID, "2025-03", "300.00")
		testutil.CreateTestIncomeEntry(t, db, bob.ID, bobSource.ID, "2025-02", "200.00")

		result, err := svc.List(alice.ID, nil, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 {
			t.Fatalf("expected 2 entries, got %d", result.TotalItems)
		}
		if result.Data[0].Month != "2025-03" {
			t.Errorf("expected newest month first, got %s", result.Data[0].Month)
		}
	})

	t.Run("month_filter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeEntryService(db, NewIncomeSourceService(db))
		user := testutil.CreateTestUser(t, db)
		source := testutil.CreateTestIncomeSource(t, db, user.ID)

		testutil.CreateTestIncomeEntry(t, db, user.ID, source.ID, "2025-01", "100.00")
		testutil.CreateTestIncomeEntry(t, db, user.ID, source.ID, "2025-02", "200.00")

		filter := "2025-02"
		result, err := svc.List(user.ID, &filter, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if len(result.Data) != 1 || result.Data[0].Month != "2025-02" {
			t.Errorf("expected only the 2025-02 entry, got %d items", len(result.Data))
		}
	})

	t.Run("paginates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeEntryService(db, NewIncomeSourceService(db))
		user := testutil.CreateTestUser(t, db)
		source := testutil.CreateTestIncomeSource(t, db, user.ID)

		for i := 0; i < 5; i++ {
			testutil.CreateTestIncomeEntry(t, db, user.ID, source.ID, "2025-01", "10.00")
		}

		result, err := svc.List(user.ID, nil, pagination.PageRequest{Page: 2, PageSize: 2})
		testutil.AssertNoError(t, err)
		if len(result.Data) != 2 {
			t.Errorf("expected 2 items on page 2, got %d", len(result.Data))
		}
		if result.TotalPages != 3 {
			t.Errorf("expected 3 total pages, got %d", result.TotalPages)
		}
	})
}

func TestIncomeEntryGetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewIncomeEntryService(db, NewIncomeSourceService(db))
	alice := testutil.CreateTestUser(t, db)
	bob := testutil.CreateTestUser(t, db)
	source := testutil.CreateTestIncomeSource(t, db, alice.ID)
	entry := testutil.CreateTestIncomeEntry(t, db, alice.ID, source.ID, "2025-01", "100.00")

	found, err := svc.GetByID(alice.ID, entry.ID)
	testutil.AssertNoError(t, err)
	if found.ID != entry.ID {
		t.Errorf("expected entry %s, got %s", entry.ID, found.ID)
	}

	// Cross-tenant access is reported as not found.
	_, err = svc.GetByID(bob.ID, entry.ID)
	testutil.AssertAppError(t, err, "ENTRY_NOT_FOUND")
}

func TestIncomeEntryUpdate(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeEntryService(db, NewIncomeSourceService(db))
		user := testutil.CreateTestUser(t, db)
		source := testutil.CreateTestIncomeSource(t, db, user.ID)
		entry := testutil.CreateTestIncomeEntry(t, db, user.ID, source.ID, "2025-01", "100.00")

		amount := decimal.NewFromInt(250)
		updated, err := svc.Update(user.ID, entry.ID, EntryUpdate{Amount: &amount})
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, updated.Amount, "250")
		if updated.Month != "2025-01" {
			t.Errorf("expected month untouched, got %s", updated.Month)
		}
	})

	t.Run("change_source", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeEntryService(db, NewIncomeSourceService(db))
		user := testutil.CreateTestUser(t, db)
		source := testutil.CreateTestIncomeSource(t, db, user.ID)
		other := testutil.CreateTestIncomeSource(t, db, user.ID)
		entry := testutil.CreateTestIncomeEntry(t, db, user.ID, source.ID, "2025-01", "100.00")

		updated, err := svc.Update(user.ID, entry.ID, EntryUpdate{CategoryID: &other.ID})
		testutil.AssertNoError(t, err)
		if updated.SourceID != other.ID {
			t.Errorf("expected source %s, got %s", other.ID, updated.SourceID)
		}
	})

	t.Run("change_to_foreign_source", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeEntryService(db, NewIncomeSourceService(db))
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		aliceSource := testutil.CreateTestIncomeSource(t, db, alice.ID)
		bobSource := testutil.CreateTestIncomeSource(t, db, bob.ID)
		entry := testutil.CreateTestIncomeEntry(t, db, alice.ID, aliceSource.ID, "2025-01", "100.00")

		_, err := svc.Update(alice.ID, entry.ID, EntryUpdate{CategoryID: &bobSource.ID})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("invalid_new_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeEntryService(db, NewIncomeSourceService(db))
		user := testutil.CreateTestUser(t, db)
		source := testutil.CreateTestIncomeSource(t, db, user.ID)
		entry := testutil.CreateTestIncomeEntry(t, db, user.ID, source.ID, "2025-01", "100.00")

		zero := decimal.Zero
		_, err := svc.Update(user.ID, entry.ID, EntryUpdate{Amount: &zero})
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})
}

func TestIncomeEntryDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewIncomeEntryService(db, NewIncomeSourceService(db))
	alice := testutil.CreateTestUser(t, db)
	bob := testutil.CreateTestUser(t, db)
	source := testutil.CreateTestIncomeSource(t, db, alice.ID)
	entry := testutil.CreateTestIncomeEntry(t, db, alice.ID, source.ID, "2025-01", "100.00")

	// Another user cannot delete it.
	err := svc.Delete(bob.ID, entry.ID)
	testutil.AssertAppError(t, err, "ENTRY_NOT_FOUND")

	testutil.AssertNoError(t, svc.Delete(alice.ID, entry.ID))
	_, err = svc.GetByID(alice.ID, entry.ID)
	testutil.AssertAppError(t, err, "ENTRY_NOT_FOUND")
}
