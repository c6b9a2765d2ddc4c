package inventory

import (
	"testing"

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

func expectProductFound(mock sqlmock.Sqlmock, id int64, name string) {
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(id, name))
}

func expectSizeUpdated(mock sqlmock.Sqlmock) {
	mock.ExpectExec(`UPDATE "product_sizes" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestApplyStockBatchCommitsAll(t *testing.T) {
	gdb, mock := newTestDB(t)

	mock.ExpectBegin()
	expectProductFound(mock, 1, "Classic Tee")
	expectSizeUpdated(mock) // S
	expectProductFound(mock, 2, "Denim Jacket")
	expectSizeUpdated(mock) // M
	mock.ExpectCommit()

	count, err := ApplyStockBatch(gdb, []StockUpdateEntry{
		{ProductID: 1, StockBySize: map[string]int{"S": 5}},
		{ProductID: 2, StockBySize: map[string]int{"M": 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyStockBatchCreatesMissingSizeRows(t *testing.T) {
	gdb, mock := newTestDB(t)

	mock.ExpectBegin()
	expectProductFound(mock, 1, "Classic Tee")
	// No row for size XL yet: update touches nothing, insert follows.
	mock.ExpectExec(`UPDATE "product_sizes" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`INSERT INTO "product_sizes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectCommit()

	count, err := ApplyStockBatch(gdb, []StockUpdateEntry{
		{ProductID: 1, StockBySize: map[string]int{"XL": 7}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyStockBatchRollsBackOnMissingProduct(t *testing.T) {
	gdb, mock := newTestDB(t)

	mock.ExpectBegin()
	expectProductFound(mock, 1, "Classic Tee")
	expectSizeUpdated(mock)
	expectProductFound(mock, 2, "Denim Jacket")
	expectSizeUpdated(mock)
	expectProductFound(mock, 3, "Canvas Sneakers")
	expectSizeUpdated(mock)
	// Fourth product does not exist: the whole batch must roll back.
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	mock.ExpectRollback()

	count, err := ApplyStockBatch(gdb, []StockUpdateEntry{
		{ProductID: 1, StockBySize: map[string]int{"S": 5}},
		{ProductID: 2, StockBySize: map[string]int{"M": 3}},
		{ProductID: 3, StockBySize: map[string]int{"40": 2}},
		{ProductID: 999, StockBySize: map[string]int{"L": 1}},
		{ProductID: 4, StockBySize: map[string]int{"L": 6}},
		{ProductID: 5, StockBySize: map[string]int{"XL": 4}},
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Zero(t, count)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyStockBatchValidation(t *testing.T) {
	gdb, mock := newTestDB(t)

	_, err := ApplyStockBatch(gdb, nil)
	assert.ErrorIs(t, err, ErrEmptyBatch)

	_, err = ApplyStockBatch(gdb, []StockUpdateEntry{
		{ProductID: 0, StockBySize: map[string]int{"S": 5}},
	})
	assert.ErrorIs(t, err, ErrBadEntry)

	_, err = ApplyStockBatch(gdb, []StockUpdateEntry{
		{ProductID: 1, StockBySize: nil},
	})
	assert.ErrorIs(t, err, ErrBadEntry)

	_, err = ApplyStockBatch(gdb, []StockUpdateEntry{
		{ProductID: 1, StockBySize: map[string]int{"S": -1}},
	})
	assert.ErrorIs(t, err, ErrBadEntry)

	_, err = ApplyStockBatch(gdb, []StockUpdateEntry{
		{ProductID: 1, StockBySize: map[string]int{"": 5}},
	})
	assert.ErrorIs(t, err, ErrBadEntry)

	// Nothing may reach the store on validation failures.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyStockBatchWritesSizesDeterministically(t *testing.T) {
	gdb, mock := newTestDB(t)
	mock.MatchExpectationsInOrder(true)

	mock.ExpectBegin()
	expectProductFound(mock, 1, "Classic Tee")
	// Sizes are written in sorted order: L, M, S.
	for _, size := range []string{"L", "M", "S"} {
		mock.ExpectExec(`UPDATE "product_sizes" SET`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), int64(1), size).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	count, err := ApplyStockBatch(gdb, []StockUpdateEntry{
		{ProductID: 1, StockBySize: map[string]int{"S": 1, "M": 2, "L": 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, mock.ExpectationsWereMet())
}
