package application

import (
	"errors"
	"testing"
	"time"

	"github.com/adflow-io/adflow-go/internal/api/middleware"
	"github.com/adflow-io/adflow-go/internal/domain/profile"
	"github.com/adflow-io/adflow-go/internal/repository"
	"github.com/adflow-io/adflow-go/internal/repository/mock"
	"github.com/adflow-io/adflow-go/pkg/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// --------------------- Setup ---------------------
func setupProfileServiceMocks(t *testing.T) (*ProfileService, *mock.MockProfileRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockProfile := mock.NewMockProfileRepo(ctrl)
	repos := &repository.Repos{
		Profile: mockProfile,
	}
	svc := NewProfileService(repos)
	return svc, mockProfile
}

// --------------------- CreateProfile ---------------------
func TestCreateProfile_Success(t *testing.T) {
	svc, mockProfile := setupProfileServiceMocks(t)

	mockProfile.EXPECT().GetByEmail("alice@test.com").Return(profile.Profile{}, gorm.ErrRecordNotFound)
	mockProfile.EXPECT().Save(gomock.Any()).DoAndReturn(func(p *profile.Profile) error {
		assert.Equal(t, profile.StatusActive, p.Status)
		assert.NotEqual(t, "123456", p.Password)
		p.ID = 1
		return nil
	})

	input := profile.CreateProfileDTO{
		Email:    "alice@test.com",
		Password: "123456",
		Name:     "Alice",
		Role:     "client",
	}
	p, err := svc.CreateProfile(input)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), p.ID)
	assert.Equal(t, profile.RoleClient, p.Role)
}

func TestCreateProfile_EmailTaken(t *testing.T) {
	svc, mockProfile := setupProfileServiceMocks(t)

	mockProfile.EXPECT().GetByEmail("taken@test.com").Return(profile.Profile{ID: 2}, nil)

	input := profile.CreateProfileDTO{Email: "taken@test.com", Password: "123456", Name: "Bob", Role: "client"}
	_, err := svc.CreateProfile(input)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

// --------------------- Login ---------------------
func TestLogin_Success(t *testing.T) {
	svc, mockProfile := setupProfileServiceMocks(t)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	p := profile.Profile{ID: 1, Email: "bob@test.com", Name: "Bob", Role: profile.RoleOperator, Status: profile.StatusActive, Password: string(hashed)}

	mockProfile.EXPECT().GetByEmail("bob@test.com").Return(p, nil)

	oldGen := middleware.GenerateToken
	middleware.GenerateToken = func(profileID uint, name, role string, expireDuration time.Duration) (string, error) {
		assert.Equal(t, uint(1), profileID)
		assert.Equal(t, "operator", role)
		return "token123", nil
	}
	defer func() { middleware.GenerateToken = oldGen }()

	logged, token, err := svc.Login("bob@test.com", "123456")
	assert.NoError(t, err)
	assert.Equal(t, "Bob", logged.Name)
	assert.Equal(t, "token123", token)
}

func TestLogin_InvalidPassword(t *testing.T) {
	svc, mockProfile := setupProfileServiceMocks(t)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	p := profile.Profile{ID: 1, Password: string(hashed), Status: profile.StatusActive}

	mockProfile.EXPECT().GetByEmail("bob@test.com").Return(p, nil)

	_, token, err := svc.Login("bob@test.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, mockProfile := setupProfileServiceMocks(t)

	mockProfile.EXPECT().GetByEmail("ghost@test.com").Return(profile.Profile{}, gorm.ErrRecordNotFound)

	_, _, err := svc.Login("ghost@test.com", "123456")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveAccount(t *testing.T) {
	svc, mockProfile := setupProfileServiceMocks(t)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	p := profile.Profile{ID: 1, Password: string(hashed), Status: profile.StatusInactive}

	mockProfile.EXPECT().GetByEmail("left@test.com").Return(p, nil)

	_, _, err := svc.Login("left@test.com", "123456")
	assert.ErrorIs(t, err, ErrAccountInactive)
}

// --------------------- UpdateProfile ---------------------
func TestUpdateProfile_EmailConflict(t *testing.T) {
	svc, mockProfile := setupProfileServiceMocks(t)

	mockProfile.EXPECT().GetByID(uint(1)).Return(profile.Profile{ID: 1, Email: "old@test.com"}, nil)
	mockProfile.EXPECT().GetByEmail("new@test.com").Return(profile.Profile{ID: 2}, nil)

	_, err := svc.UpdateProfile(1, profile.UpdateProfileDTO{Email: ptrString("new@test.com")})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUpdateProfile_Success(t *testing.T) {
	svc, mockProfile := setupProfileServiceMocks(t)

	mockProfile.EXPECT().GetByID(uint(1)).Return(profile.Profile{ID: 1, Name: "Old", Role: profile.RoleClient}, nil)
	mockProfile.EXPECT().Save(gomock.Any()).Return(nil)

	updated, err := svc.UpdateProfile(1, profile.UpdateProfileDTO{Name: ptrString("New"), Role: ptrString("operator")})
	assert.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, profile.RoleOperator, updated.Role)
}

// --------------------- ChangePassword ---------------------
func TestChangePassword_SelfWithOldPassword(t *testing.T) {
	svc, mockProfile := setupProfileServiceMocks(t)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("oldpass"), bcrypt.DefaultCost)
	mockProfile.EXPECT().GetByID(uint(1)).Return(profile.Profile{ID: 1, Password: string(hashed)}, nil)
	mockProfile.EXPECT().Save(gomock.Any()).DoAndReturn(func(p *profile.Profile) error {
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(p.Password), []byte("newpass")))
		return nil
	})

	actor := types.Viewer{ProfileID: 1, Role: "client"}
	err := svc.ChangePassword(actor, 1, profile.ChangePasswordDTO{OldPassword: ptrString("oldpass"), NewPassword: "newpass"})
	assert.NoError(t, err)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	svc, mockProfile := setupProfileServiceMocks(t)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("oldpass"), bcrypt.DefaultCost)
	mockProfile.EXPECT().GetByID(uint(1)).Return(profile.Profile{ID: 1, Password: string(hashed)}, nil)

	actor := types.Viewer{ProfileID: 1, Role: "client"}
	err := svc.ChangePassword(actor, 1, profile.ChangePasswordDTO{OldPassword: ptrString("wrong"), NewPassword: "newpass"})
	assert.ErrorIs(t, err, ErrIncorrectPassword)
}

func TestChangePassword_MissingOldPassword(t *testing.T) {
	svc, mockProfile := setupProfileServiceMocks(t)

	mockProfile.EXPECT().GetByID(uint(1)).Return(profile.Profile{ID: 1}, nil)

	actor := types.Viewer{ProfileID: 1, Role: "client"}
	err := svc.ChangePassword(actor, 1, profile.ChangePasswordDTO{NewPassword: "newpass"})
	assert.ErrorIs(t, err, ErrMissingOldPassword)
}

func TestChangePassword_AdminOverride(t *testing.T) {
	svc, mockProfile := setupProfileServiceMocks(t)

	mockProfile.EXPECT().GetByID(uint(1)).Return(profile.Profile{ID: 1, Password: "whatever"}, nil)
	mockProfile.EXPECT().Save(gomock.Any()).Return(nil)

	err := svc.ChangePassword(adminViewer(30), 1, profile.ChangePasswordDTO{NewPassword: "resetpass"})
	assert.NoError(t, err)
}

func TestChangePassword_OtherProfileDenied(t *testing.T) {
	svc, _ := setupProfileServiceMocks(t)

	actor := types.Viewer{ProfileID: 2, Role: "operator"}
	err := svc.ChangePassword(actor, 1, profile.ChangePasswordDTO{NewPassword: "newpass"})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

// --------------------- DeactivateProfile ---------------------
func TestDeactivateProfile_Success(t *testing.T) {
	svc, mockProfile := setupProfileServiceMocks(t)

	mockProfile.EXPECT().Deactivate(uint(1)).Return(nil)

	err := svc.DeactivateProfile(1)
	assert.NoError(t, err)
}

func TestDeactivateProfile_NotFound(t *testing.T) {
	svc, mockProfile := setupProfileServiceMocks(t)

	mockProfile.EXPECT().Deactivate(uint(9)).Return(gorm.ErrRecordNotFound)

	err := svc.DeactivateProfile(9)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

// --------------------- ListOperators ---------------------
func TestListOperators_Success(t *testing.T) {
	svc, mockProfile := setupProfileServiceMocks(t)

	mockProfile.EXPECT().ListStaff().Return([]profile.Profile{{ID: 1, Role: profile.RoleOperator}}, nil)

	result, err := svc.ListOperators()
	assert.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestFindProfileByID_NotFound(t *testing.T) {
	svc, mockProfile := setupProfileServiceMocks(t)

	mockProfile.EXPECT().GetByID(uint(99)).Return(profile.Profile{}, gorm.ErrRecordNotFound)

	_, err := svc.FindProfileByID(99)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestListProfiles_RepoError(t *testing.T) {
	svc, mockProfile := setupProfileServiceMocks(t)

	mockProfile.EXPECT().ListAll().Return(nil, errors.New("db error"))

	_, err := svc.ListProfiles()
	assert.Error(t, err)
}

// --------------------- Helpers ---------------------
func ptrString(s string) *string { return &s }
func ptrUint(v uint) *uint       { return &v }

func clientViewer(id uint) types.Viewer   { return types.Viewer{ProfileID: id, Role: "client"} }
func operatorViewer(id uint) types.Viewer { return types.Viewer{ProfileID: id, Role: "operator"} }
func adminViewer(id uint) types.Viewer    { return types.Viewer{ProfileID: id, Role: "admin"} }
