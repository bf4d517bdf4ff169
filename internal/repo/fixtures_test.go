package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/clickventure/backend/internal/domain"
	"github.com/clickventure/backend/internal/repo"
	"github.com/clickventure/backend/testutil"
)

// newTestTx opens a transaction against the test database that is rolled back
// when the test finishes, giving free per-test isolation.
//
// Requires TEST_DATABASE_URL to be set; TestMain applies the migrations.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test; no cleanup SQL needed.
		_ = tx.Rollback(context.Background())
	})
	return tx
}

// createUser inserts a user with a unique email.
func createUser(t *testing.T, tx pgx.Tx) domain.User {
	t.Helper()
	u, err := repo.NewUserRepo(tx).Create(context.Background(), domain.User{
		Name:         "Test Traveller",
		UserName:     "traveller",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		Rank:         domain.DefaultRank,
	})
	require.NoError(t, err, "create user fixture")
	return u
}

// createPlace inserts a place in the given region and category.
func createPlace(t *testing.T, tx pgx.Tx, name, region string, c domain.Category) domain.Place {
	t.Helper()
	p, err := repo.NewPlaceRepo(tx).Create(context.Background(), domain.Place{
		Name:     name,
		Region:   region,
		Category: c,
		SubTags:  []string{"Museums"},
		Images:   []string{name + ".jpg"},
	})
	require.NoError(t, err, "create place fixture")
	return p
}

// tripFixture returns a valid new trip owned by userID.
func tripFixture(t *testing.T, userID uuid.UUID, days int) domain.Trip {
	t.Helper()
	trip, err := domain.NewTrip(userID, domain.Trip{Name: "Bahrain Weekend", Regions: []string{"Manama"}, TotalDays: days})
	require.NoError(t, err)
	return trip
}
