package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewAuthService(repository.NewUserRepository(db)), db
}

func TestAuthService_Register_NormalizesEmail(t *testing.T) {
	svc, db := setupAuthService(t)

	user, err := svc.Register(RegisterInput{
		Email:    "  Mixed.Case@Example.COM ",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.Equal(t, "mixed.case@example.com", user.Email)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	require.Equal(t, "mixed.case@example.com", stored.Email)
	require.NotEqual(t, "supersecret", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("supersecret")))
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, db := setupAuthService(t)

	_, err := svc.Register(RegisterInput{Email: "taken@example.com", Password: "supersecret"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterInput{Email: "Taken@Example.com", Password: "othersecret"})
	require.ErrorIs(t, err, ErrEmailTaken)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestAuthService_Register_EmptyFields(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.Register(RegisterInput{Email: "   ", Password: "supersecret"})
	require.ErrorIs(t, err, ErrCredentialsRequired)

	_, err = svc.Register(RegisterInput{Email: "ok@example.com", Password: ""})
	require.ErrorIs(t, err, ErrCredentialsRequired)
}

func TestAuthService_Login_UniformError(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.Register(RegisterInput{Email: "existing@example.com", Password: "supersecret"})
	require.NoError(t, err)

	_, unknownErr := svc.Login(LoginInput{Email: "nobody@example.com", Password: "supersecret"})
	_, wrongErr := svc.Login(LoginInput{Email: "existing@example.com", Password: "wrong"})

	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	require.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	require.Equal(t, unknownErr, wrongErr, "failure modes must be indistinguishable")
}

func TestAuthService_Login_CaseInsensitiveEmail(t *testing.T) {
	svc, _ := setupAuthService(t)

	registered, err := svc.Register(RegisterInput{Email: "existing@example.com", Password: "supersecret"})
	require.NoError(t, err)

	user, err := svc.Login(LoginInput{Email: "EXISTING@example.com", Password: "supersecret"})
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
}
