package services

import (
	"testing"

	"paisa/internal/models"
	"paisa/internal/testutil"
)

func TestSavingsInstrumentCreate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsInstrumentService(db)

		instrument, err := svc.Create("SBI FD", models.BucketFDRD)
		testutil.AssertNoError(t, err)
		if instrument.Bucket != models.BucketFDRD {
			t.Errorf("expected bucket %s, got %s", models.BucketFDRD, instrument.Bucket)
		}
	})

	t.Run("duplicate_within_bucket", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsInstrumentService(db)

		_, err := svc.Create("Index Fund", models.BucketMF)
		testutil.AssertNoError(t, err)
		_, err = svc.Create("Index Fund", models.BucketMF)
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("same_name_different_bucket", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsInstrumentService(db)

		_, err := svc.Create("HDFC", models.BucketFDRD)
		testutil.AssertNoError(t, err)
		_, err = svc.Create("HDFC", models.BucketStocksETFs)
		testutil.AssertNoError(t, err)
	})

	t.Run("database_enforces_uniqueness", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		// Concurrent creates can pass the service's pre-insert check at
		// the same time; the unique index is the last line of defense.
		first := &models.SavingsInstrument{Name: "PPF", Bucket: models.BucketNPSPPF}
		testutil.AssertNoError(t, db.Create(first).Error)
		second := &models.SavingsInstrument{Name: "PPF", Bucket: models.BucketNPSPPF}
		if err := db.Create(second).Error; err == nil {
			t.Error("expected duplicate (name, bucket) insert to be rejected")
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsInstrumentService(db)

		_, err := svc.Create("  ", models.BucketNPSPPF)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestSavingsInstrumentList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSavingsInstrumentService(db)

	testutil.CreateTestInstrument(t, db, models.BucketMF)
	testutil.CreateTestInstrument(t, db, models.BucketMF)
	testutil.CreateTestInstrument(t, db, models.BucketFDRD)

	all, err := svc.List(nil)
	testutil.AssertNoError(t, err)
	if len(all) != 3 {
		t.Errorf("expected 3 instruments, got %d", len(all))
	}

	bucket := models.BucketMF
	filtered, err := svc.List(&bucket)
	testutil.AssertNoError(t, err)
	if len(filtered) != 2 {
		t.Errorf("expected 2 mutual fund instruments, got %d", len(filtered))
	}
	for _, instrument := range filtered {
		if instrument.Bucket != models.BucketMF {
			t.Errorf("expected bucket %s, got %s", models.BucketMF, instrument.Bucket)
		}
	}
}

func TestSavingsInstrumentDelete(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsInstrumentService(db)

		instrument := testutil.CreateTestInstrument(t, db, models.BucketNPSPPF)
		testutil.AssertNoError(t, svc.Delete(instrument.ID))

		_, err := svc.GetByID(instrument.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("blocked_by_any_users_entries", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsInstrumentService(db)

		user := testutil.CreateTestUser(t, db)
		instrument := testutil.CreateTestInstrument(t, db, models.BucketStocksETFs)
		testutil.CreateTestSavingsEntry(t, db, user.ID, instrument.ID, "2025-03", "500.00")

		err := svc.Delete(instrument.ID)
		testutil.AssertAppError(t, err, "CATEGORY_IN_USE")
	})
}

func TestInstrumentBucketLabel(t *testing.T) {
	cases := map[models.InstrumentBucket]string{
		models.BucketFDRD:       "FD/RD",
		models.BucketNPSPPF:     "NPS/PPF",
		models.BucketStocksETFs: "Stocks/ETFs",
		models.BucketMF:         "Mutual Funds",
	}
	for bucket, want := range cases {
		if got := bucket.Label(); got != want {
			t.Errorf("bucket %s: expected label %q, got %q", bucket, want, got)
		}
	}
}
