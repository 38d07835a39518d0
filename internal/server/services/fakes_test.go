package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/furari-app/furari/internal/api"
	"github.com/furari-app/furari/internal/dbx"
	"github.com/furari-app/furari/internal/server/config"
	"github.com/furari-app/furari/internal/server/models"
	recordsrepo "github.com/furari-app/furari/internal/server/repositories/records"
	refreshtokensrepo "github.com/furari-app/furari/internal/server/repositories/refreshtokens"
	resettokensrepo "github.com/furari-app/furari/internal/server/repositories/resettokens"
	usersrepo "github.com/furari-app/furari/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		S3Bucket:                     "furari",
		S3PublicBaseURL:              "http://127.0.0.1:9000/furari",
	}
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error

	updatedUserID string
	updateErr     error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) UpdatePassword(ctx context.Context, userID string, hash []byte) error {
	f.updatedUserID = userID
	return f.updateErr
}

type fakeRecordsRepo struct {
	createOut *models.TravelRecord
	createErr error

	updateOut *models.TravelRecord
	updateErr error

	deleteErr error

	selectOut []*models.TravelRecord
	selectErr error
}

func (f *fakeRecordsRepo) Create(ctx context.Context, rec *models.TravelRecord) (*models.TravelRecord, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeRecordsRepo) Update(ctx context.Context, ownerID, id string, comment, imageURL *string) (*models.TravelRecord, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}

func (f *fakeRecordsRepo) Delete(ctx context.Context, ownerID, id string) error {
	return f.deleteErr
}

func (f *fakeRecordsRepo) SelectByOwner(ctx context.Context, ownerID string) ([]*models.TravelRecord, error) {
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	return f.selectOut, nil
}

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	createErr error
	delErr    error

	deletedForUser string
	delForUserErr  error
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	return f.createErr
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	return f.delErr
}

func (f *fakeRefreshRepo) DeleteForUser(ctx context.Context, userID string) error {
	f.deletedForUser = userID
	return f.delForUserErr
}

type fakeResetRepo struct {
	findOut *models.ResetToken
	findErr error

	createdCode string
	createErr   error

	deletedCode string
	delErr      error
}

func (f *fakeResetRepo) Create(ctx context.Context, userID string, code string, validity time.Duration) error {
	f.createdCode = code
	return f.createErr
}

func (f *fakeResetRepo) Find(ctx context.Context, code string) (*models.ResetToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeResetRepo) Delete(ctx context.Context, code string) error {
	f.deletedCode = code
	return f.delErr
}

type fakeRepoManager struct {
	u  *fakeUsersRepo
	rc *fakeRecordsRepo
	rt *fakeRefreshRepo
	rs *fakeResetRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *fakeRepoManager) Records(db dbx.DBTX) recordsrepo.Repository  { return m.rc }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository {
	return m.rt
}
func (m *fakeRepoManager) ResetTokens(db dbx.DBTX) resettokensrepo.Repository { return m.rs }

type fakePublisher struct {
	keys     []string
	payloads []any
	err      error
}

func (f *fakePublisher) PublishJSON(ctx context.Context, key string, v any) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	f.payloads = append(f.payloads, v)
	return nil
}

type fakeHub struct {
	owners    []string
	snapshots []api.Snapshot
}

func (f *fakeHub) Publish(ownerID string, snapshot api.Snapshot) {
	f.owners = append(f.owners, ownerID)
	f.snapshots = append(f.snapshots, snapshot)
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }
