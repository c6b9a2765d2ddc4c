package scope

import (
	"testing"
	"time"

	"github.com/bleep333/fake-shop-sub001/internal/auth"
	"github.com/bleep333/fake-shop-sub001/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open error: %v", err)
	}
	return gdb, mock
}

func TestBuildForcesOwnerForNonAdmin(t *testing.T) {
	caller := auth.Identity{UserID: 1, Email: "u1@shop.test"}
	other := uint(2)

	// Caller asks for someone else's records.
	pred := Build(FilterSpec{OwnerID: &other}, caller)
	owner, ok := pred.Owner()
	require.True(t, ok)
	assert.Equal(t, uint(1), owner.UserID, "supplied owner_id must be discarded")
	assert.True(t, owner.Forced)

	// The forced condition appears even without a supplied owner_id.
	pred = Build(FilterSpec{}, caller)
	owner, ok = pred.Owner()
	require.True(t, ok)
	assert.Equal(t, uint(1), owner.UserID)
	assert.True(t, owner.Forced)
}

func TestBuildAdminUnrestricted(t *testing.T) {
	admin := auth.Identity{UserID: 9, Email: "admin@shop.test", IsAdmin: true}

	pred := Build(FilterSpec{}, admin)
	assert.Empty(t, pred.Conditions, "empty spec for an admin matches everything")

	owner := uint(3)
	pred = Build(FilterSpec{OwnerID: &owner}, admin)
	oc, ok := pred.Owner()
	require.True(t, ok)
	assert.Equal(t, uint(3), oc.UserID, "admins may filter by any owner")
	assert.False(t, oc.Forced)
}

func TestBuildAllDimensions(t *testing.T) {
	caller := auth.Identity{UserID: 5}
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	pred := Build(FilterSpec{
		Status:     "paid",
		DateFrom:   &from,
		DateTo:     &to,
		SearchText: "tee",
	}, caller, "name")

	require.Len(t, pred.Conditions, 5)
	assert.Equal(t, StatusEquals{Value: "paid"}, pred.Conditions[0])
	assert.Equal(t, CreatedFrom{Value: from}, pred.Conditions[1])
	assert.Equal(t, CreatedTo{Value: to}, pred.Conditions[2])
	assert.Equal(t, TextSearch{Needle: "tee", Columns: []string{"name"}}, pred.Conditions[3])
	assert.Equal(t, OwnerEquals{UserID: 5, Forced: true}, pred.Conditions[4])
}

func TestBuildKeepsInvertedDateRange(t *testing.T) {
	admin := auth.Identity{UserID: 9, IsAdmin: true}
	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// from after to is not an error, it just matches nothing.
	pred := Build(FilterSpec{DateFrom: &from, DateTo: &to}, admin)
	require.Len(t, pred.Conditions, 2)
	assert.Equal(t, CreatedFrom{Value: from}, pred.Conditions[0])
	assert.Equal(t, CreatedTo{Value: to}, pred.Conditions[1])
}

func TestBuildSearchWithoutColumns(t *testing.T) {
	admin := auth.Identity{UserID: 9, IsAdmin: true}

	pred := Build(FilterSpec{SearchText: "ann"}, admin)
	assert.Empty(t, pred.Conditions)
}

func TestApplyScopesQueryToCaller(t *testing.T) {
	gdb, mock := newTestDB(t)

	caller := auth.Identity{UserID: 7}
	other := uint(42)
	pred := Build(FilterSpec{OwnerID: &other}, caller)

	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE user_id = \$1`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}))

	var out []models.Order
	err := pred.Apply(gdb.Model(&models.Order{})).Find(&out).Error
	require.NoError(t, err)
	assert.Empty(t, out)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyTextSearchIsCaseInsensitive(t *testing.T) {
	gdb, mock := newTestDB(t)

	admin := auth.Identity{UserID: 9, IsAdmin: true}
	pred := Build(FilterSpec{SearchText: "Ann"}, admin, "name", "email")

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE LOWER\(name\) LIKE \$1 OR LOWER\(email\) LIKE \$2`).
		WithArgs("%ann%", "%ann%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).
			AddRow(1, "Anna", "anna@shop.test"))

	var out []models.User
	err := pred.Apply(gdb.Model(&models.User{})).Find(&out).Error
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Anna", out[0].Name)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParseFilterSpec(t *testing.T) {
	spec, err := ParseFilterSpec("paid", "3", "2026-01-01", "2026-01-31", "tee")
	require.NoError(t, err)
	assert.Equal(t, "paid", spec.Status)
	require.NotNil(t, spec.OwnerID)
	assert.Equal(t, uint(3), *spec.OwnerID)
	require.NotNil(t, spec.DateFrom)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *spec.DateFrom)
	require.NotNil(t, spec.DateTo)
	assert.True(t, spec.DateTo.After(time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)), "to date covers the whole day")
	assert.Equal(t, "tee", spec.SearchText)

	_, err = ParseFilterSpec("", "zero", "", "", "")
	assert.ErrorIs(t, err, ErrBadOwnerID)

	_, err = ParseFilterSpec("", "", "01.02.2026", "", "")
	assert.ErrorIs(t, err, ErrBadFrom)

	_, err = ParseFilterSpec("", "", "", "Jan 31", "")
	assert.ErrorIs(t, err, ErrBadTo)

	spec, err = ParseFilterSpec("", "", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, FilterSpec{}, spec)
}
