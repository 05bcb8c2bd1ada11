package application

import (
	"testing"

	"github.com/adflow-io/adflow-go/internal/domain/client"
	"github.com/adflow-io/adflow-go/internal/domain/profile"
	"github.com/adflow-io/adflow-go/internal/repository"
	"github.com/adflow-io/adflow-go/internal/repository/mock"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// --------------------- Setup ---------------------
func setupClientServiceMocks(t *testing.T) (*ClientService, *mock.MockClientRepo, *mock.MockProfileRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockClient := mock.NewMockClientRepo(ctrl)
	mockProfile := mock.NewMockProfileRepo(ctrl)
	repos := &repository.Repos{
		Client:  mockClient,
		Profile: mockProfile,
	}
	svc := NewClientService(repos)
	return svc, mockClient, mockProfile
}

// --------------------- CreateClient ---------------------
func TestCreateClient_Unlinked(t *testing.T) {
	svc, mockClient, _ := setupClientServiceMocks(t)

	mockClient.EXPECT().Save(gomock.Any()).DoAndReturn(func(c *client.Client) error {
		assert.Nil(t, c.UserID)
		assert.Equal(t, profile.StatusActive, c.Status)
		c.ID = 1
		return nil
	})

	input := client.CreateClientDTO{DepartmentName: "Performance Marketing", ContactName: "Kim", Email: "kim@acme.com"}
	c, err := svc.CreateClient(input)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), c.ID)
}

func TestCreateClient_LinkedToClientProfile(t *testing.T) {
	svc, mockClient, mockProfile := setupClientServiceMocks(t)

	mockProfile.EXPECT().GetByID(uint(10)).Return(profile.Profile{ID: 10, Role: profile.RoleClient}, nil)
	mockClient.EXPECT().Save(gomock.Any()).Return(nil)

	input := client.CreateClientDTO{DepartmentName: "Brand", ContactName: "Lee", Email: "lee@acme.com", UserID: ptrUint(10)}
	_, err := svc.CreateClient(input)
	assert.NoError(t, err)
}

func TestCreateClient_LinkedProfileNotClientRole(t *testing.T) {
	svc, _, mockProfile := setupClientServiceMocks(t)

	mockProfile.EXPECT().GetByID(uint(20)).Return(profile.Profile{ID: 20, Role: profile.RoleOperator}, nil)

	input := client.CreateClientDTO{DepartmentName: "Brand", ContactName: "Lee", Email: "lee@acme.com", UserID: ptrUint(20)}
	_, err := svc.CreateClient(input)
	assert.ErrorIs(t, err, ErrUserNotClient)
}

func TestCreateClient_LinkedProfileMissing(t *testing.T) {
	svc, _, mockProfile := setupClientServiceMocks(t)

	mockProfile.EXPECT().GetByID(uint(99)).Return(profile.Profile{}, gorm.ErrRecordNotFound)

	input := client.CreateClientDTO{DepartmentName: "Brand", ContactName: "Lee", Email: "lee@acme.com", UserID: ptrUint(99)}
	_, err := svc.CreateClient(input)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

// --------------------- FindClientByUserID ---------------------
func TestFindClientByUserID_NotFound(t *testing.T) {
	svc, mockClient, _ := setupClientServiceMocks(t)

	mockClient.EXPECT().GetByUserID(uint(10)).Return(client.Client{}, gorm.ErrRecordNotFound)

	_, err := svc.FindClientByUserID(10)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

// --------------------- UpdateClient ---------------------
func TestUpdateClient_Success(t *testing.T) {
	svc, mockClient, _ := setupClientServiceMocks(t)

	mockClient.EXPECT().GetByID(uint(1)).Return(client.Client{ID: 1, ContactName: "Kim"}, nil)
	mockClient.EXPECT().Save(gomock.Any()).Return(nil)

	updated, err := svc.UpdateClient(1, client.UpdateClientDTO{ContactName: ptrString("Park"), AssignedOperatorID: ptrUint(20)})
	assert.NoError(t, err)
	assert.Equal(t, "Park", updated.ContactName)
	assert.Equal(t, uint(20), *updated.AssignedOperatorID)
}

func TestUpdateClient_NotFound(t *testing.T) {
	svc, mockClient, _ := setupClientServiceMocks(t)

	mockClient.EXPECT().GetByID(uint(9)).Return(client.Client{}, gorm.ErrRecordNotFound)

	_, err := svc.UpdateClient(9, client.UpdateClientDTO{})
	assert.ErrorIs(t, err, ErrClientNotFound)
}

// --------------------- DeleteClient ---------------------
func TestDeleteClient_NotFound(t *testing.T) {
	svc, mockClient, _ := setupClientServiceMocks(t)

	mockClient.EXPECT().Delete(uint(9)).Return(gorm.ErrRecordNotFound)

	err := svc.DeleteClient(9)
	assert.ErrorIs(t, err, ErrClientNotFound)
}
