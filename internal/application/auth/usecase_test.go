package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wmslabs/composicao-api/internal/application/auth"
	"github.com/wmslabs/composicao-api/internal/application/dto"
	"github.com/wmslabs/composicao-api/internal/domain"
	"github.com/wmslabs/composicao-api/internal/domain/entity"
	"github.com/wmslabs/composicao-api/internal/infrastructure/memory"
	pkgjwt "github.com/wmslabs/composicao-api/pkg/jwt"
)

var testJWTCfg = auth.JWTConfig{
	Secret:     "test-secret-key-for-unit-tests",
	ExpMinutes: 60,
	Issuer:     "composicao-api-test",
}

func newAuthUseCase() *auth.UseCase {
	return auth.NewUseCase(memory.NewUserRepository(memory.NewStore()), testJWTCfg)
}

func TestRegister_CriaOperadorPorPadrao(t *testing.T) {
	uc := newAuthUseCase()

	user, err := uc.Register(dto.RegisterRequest{
		Name: "Maria Souza", Email: "maria@wms.local", Password: "senha-forte-123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "maria@wms.local", user.Email)
	assert.Equal(t, entity.RoleOperador, user.Role, "papel padrão é operador")
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := newAuthUseCase()

	req := dto.RegisterRequest{Name: "Maria", Email: "maria@wms.local", Password: "senha-forte-123"}
	_, err := uc.Register(req)
	require.NoError(t, err)

	_, err = uc.Register(req)
	assert.ErrorIs(t, err, domain.ErrEmailExists)
}

func TestLogin_DevolveTokenComClaims(t *testing.T) {
	uc := newAuthUseCase()

	created, err := uc.Register(dto.RegisterRequest{
		Name: "João Admin", Email: "joao@wms.local", Password: "senha-forte-123", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "joao@wms.local", Password: "senha-forte-123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, created.ID, out.User.ID)

	userID, role, err := pkgjwt.Parse(testJWTCfg.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_CredenciaisInvalidas(t *testing.T) {
	uc := newAuthUseCase()

	_, err := uc.Register(dto.RegisterRequest{
		Name: "Maria", Email: "maria@wms.local", Password: "senha-forte-123",
	})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "maria@wms.local", Password: "senha-errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "senha incorreta não revela detalhes")

	_, err = uc.Login(dto.LoginRequest{Email: "ninguem@wms.local", Password: "qualquer"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "e-mail inexistente não revela detalhes")
}

func TestLogin_UsuarioInativo(t *testing.T) {
	store := memory.NewStore()
	uc := auth.NewUseCase(memory.NewUserRepository(store), testJWTCfg)

	created, err := uc.Register(dto.RegisterRequest{
		Name: "Maria", Email: "maria@wms.local", Password: "senha-forte-123",
	})
	require.NoError(t, err)

	repo := memory.NewUserRepository(store)
	user, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	user.IsActive = false
	store.PutUser(user)

	_, err = uc.Login(dto.LoginRequest{Email: "maria@wms.local", Password: "senha-forte-123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
