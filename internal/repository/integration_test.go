//go:build integration
// +build integration

package repository

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/adflow-io/adflow-go/internal/domain/attachment"
	"github.com/adflow-io/adflow-go/internal/domain/client"
	"github.com/adflow-io/adflow-go/internal/domain/comment"
	"github.com/adflow-io/adflow-go/internal/domain/profile"
	"github.com/adflow-io/adflow-go/internal/domain/request"
	"github.com/adflow-io/adflow-go/internal/testutils"
	"github.com/adflow-io/adflow-go/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var testRepos *Repos

func TestMain(m *testing.M) {
	sqlDB, cleanup := testutils.SetupPostgresForIntegration()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		cleanup()
		log.Fatalf("Failed to open gorm over test database: %v", err)
	}
	testRepos = NewRepositories(gdb)

	code := m.Run()
	cleanup()
	os.Exit(code)
}

func seedRequestWithThread(t *testing.T) (client.Client, profile.Profile, profile.Profile, request.Request) {
	t.Helper()

	operator := profile.Profile{Email: uniqueEmail(t, "op"), Name: "Operator", Password: "x", Role: profile.RoleOperator}
	require.NoError(t, testRepos.Profile.Save(&operator))

	login := profile.Profile{Email: uniqueEmail(t, "cl"), Name: "Client", Password: "x", Role: profile.RoleClient}
	require.NoError(t, testRepos.Profile.Save(&login))

	c := client.Client{UserID: &login.ID, DepartmentName: "Marketing", ContactName: "Kim", Email: login.Email, Status: profile.StatusActive}
	require.NoError(t, testRepos.Client.Save(&c))

	req := request.Request{
		RequestNumber: fmt.Sprintf("REQ-TEST-%d", time.Now().UnixNano()),
		ClientID:      c.ID,
		RequestType:   request.TypeBudgetChange,
		Platform:      request.PlatformNaver,
		Priority:      request.PriorityNormal,
		Title:         "Budget bump",
		Description:   "Raise the cap",
		Status:        request.StatusPending,
	}
	require.NoError(t, testRepos.Request.Create(&req))

	return c, login, operator, req
}

func uniqueEmail(t *testing.T, prefix string) string {
	t.Helper()
	return fmt.Sprintf("%s-%d@test.com", prefix, time.Now().UnixNano())
}

func TestCommentListing_FiltersInternalForClients(t *testing.T) {
	_, login, operator, req := seedRequestWithThread(t)

	public := comment.Comment{RequestID: req.ID, AuthorID: &login.ID, Content: "any news?"}
	require.NoError(t, testRepos.Comment.Create(&public))
	internal := comment.Comment{RequestID: req.ID, AuthorID: &operator.ID, Content: "waiting on finance", IsInternal: true}
	require.NoError(t, testRepos.Comment.Create(&internal))

	clientView, err := testRepos.Comment.ListByRequestID(req.ID, types.Viewer{ProfileID: login.ID, Role: "client"})
	require.NoError(t, err)
	assert.Len(t, clientView, 1)
	assert.Equal(t, "any news?", clientView[0].Content)
	assert.NotNil(t, clientView[0].Author)

	staffView, err := testRepos.Comment.ListByRequestID(req.ID, types.Viewer{ProfileID: operator.ID, Role: "operator"})
	require.NoError(t, err)
	assert.Len(t, staffView, 2)
	// Oldest first.
	assert.Equal(t, public.ID, staffView[0].ID)
}

func TestRequestListing_CommentCountsRespectVisibility(t *testing.T) {
	c, login, operator, req := seedRequestWithThread(t)

	require.NoError(t, testRepos.Comment.Create(&comment.Comment{RequestID: req.ID, AuthorID: &login.ID, Content: "status?"}))
	require.NoError(t, testRepos.Comment.Create(&comment.Comment{RequestID: req.ID, AuthorID: &operator.ID, Content: "internal note", IsInternal: true}))

	clientRows, err := testRepos.Request.ListByClientID(c.ID)
	require.NoError(t, err)
	require.Len(t, clientRows, 1)
	assert.Equal(t, int64(1), clientRows[0].CommentCount)

	staffRows, err := testRepos.Request.ListAll()
	require.NoError(t, err)
	for _, row := range staffRows {
		if row.ID == req.ID {
			assert.Equal(t, int64(2), row.CommentCount)
			require.NotNil(t, row.LatestClientComment)
			assert.Equal(t, "status?", row.LatestClientComment.Content)
		}
	}
}

func TestRequestDelete_CascadesThread(t *testing.T) {
	_, login, _, req := seedRequestWithThread(t)

	cm := comment.Comment{RequestID: req.ID, AuthorID: &login.ID, Content: "with file"}
	require.NoError(t, testRepos.Comment.Create(&cm))
	att := attachment.Attachment{RequestID: req.ID, CommentID: &cm.ID, FileName: "a.png", FilePath: "x/y/z.png", UploadedBy: login.ID}
	require.NoError(t, testRepos.Attachment.Create(&att))

	require.NoError(t, testRepos.Request.Delete(req.ID))

	_, err := testRepos.Request.GetByID(req.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = testRepos.Comment.GetByID(cm.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = testRepos.Attachment.GetByID(att.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProfileDeactivate_KeepsRow(t *testing.T) {
	_, login, _, _ := seedRequestWithThread(t)

	require.NoError(t, testRepos.Profile.Deactivate(login.ID))

	p, err := testRepos.Profile.GetByID(login.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.StatusInactive, p.Status)
}

func TestStatsOverview_Counts(t *testing.T) {
	_, _, _, _ = seedRequestWithThread(t)

	overview, err := testRepos.Stats.Overview()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, overview.TotalRequests, int64(1))
}
