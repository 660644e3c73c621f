package assets

import (
	"context"
	"testing"
	"time"

	"asset-verifier/core/database"
	"asset-verifier/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

// setupHistoryDB opens an in-memory sqlite history store.
func setupHistoryDB(t *testing.T) *ReportStore {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	store := NewReportStore(db)
	require.NoError(t, store.Migrate())
	return store
}

func TestReportStore_SaveAndList(t *testing.T) {
	ctx := context.Background()
	store := setupHistoryDB(t)

	pass := reconcile.Reconcile(reconcile.NewAssetSet("h1"), reconcile.NewAssetSet("h1"), nil)
	fail := reconcile.Reconcile(nil, reconcile.NewAssetSet("h1", "h2"), nil)

	older := NewReport(SourceLocal, testOptions(PlatformIOS), pass)
	older.CreatedAt = time.Now().Add(-time.Hour).UTC()
	require.NoError(t, store.Save(ctx, older))

	newer := NewReport(SourceBucket, testOptions(PlatformAndroid), fail)
	require.NoError(t, store.Save(ctx, newer))

	reports, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, newer.ID, reports[0].ID)
	assert.Equal(t, "fail", reports[0].Verdict)
	assert.Equal(t, []string{"h1", "h2"}, reports[0].Orphaned)
	assert.Equal(t, "android", reports[0].Platform)
	assert.Equal(t, older.ID, reports[1].ID)

	reports, err = store.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}

func TestReportStore_Errors(t *testing.T) {
	ctx := context.Background()
	db, sqlMock := setupMockDB(t)
	store := NewReportStore(db)

	sqlMock.ExpectQuery(".*").WillReturnError(assert.AnError)
	_, err := store.List(ctx, 5)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list reports")

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec(".*").WillReturnError(assert.AnError)
	sqlMock.ExpectRollback()
	err = store.Save(ctx, NewReport(SourceLocal, testOptions(PlatformIOS), reconcile.Reconcile(nil, nil, nil)))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save report")
}

func TestService_RecordAndReports(t *testing.T) {
	ctx := context.Background()
	svc := NewService(zap.NewNop(), setupHistoryDB(t), 0)
	assert.True(t, svc.HistoryEnabled())

	res := reconcile.Reconcile(nil, reconcile.NewAssetSet("orphan"), nil)
	report, err := svc.Record(ctx, SourceLocal, testOptions(PlatformIOS), res)
	require.NoError(t, err)
	assert.NotEmpty(t, report.ID)

	reports, err := svc.Reports(ctx, 0)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, report.ID, reports[0].ID)
	assert.Equal(t, 1, reports[0].FullCount)
}
