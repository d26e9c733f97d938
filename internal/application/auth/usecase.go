package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Operator credencial de un operador del PDV (usuario + hash bcrypt + rol).
type Operator struct {
	Username     string
	PasswordHash string
	Role         string
}

// AuthUseCase login de operadores configurados. No hay registro: las credenciales vienen de la configuración.
type AuthUseCase struct {
	operators []Operator
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth. Ignora operadores sin usuario o sin hash.
func NewAuthUseCase(operators []Operator, jwtCfg JWTConfig) *AuthUseCase {
	valid := make([]Operator, 0, len(operators))
	for _, op := range operators {
		if op.Username != "" && op.PasswordHash != "" {
			valid = append(valid, op)
		}
	}
	return &AuthUseCase{operators: valid, jwtCfg: jwtCfg}
}

// Login verifica usuario/password, genera JWT y retorna token + rol.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.NewValidationError("username", "Usuário e senha são obrigatórios")
	}
	var found *Operator
	for i := range uc.operators {
		if subtle.ConstantTimeCompare([]byte(uc.operators[i].Username), []byte(username)) == 1 {
			found = &uc.operators[i]
			break
		}
	}
	if found == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	role := found.Role
	if role == "" {
		role = jwt.RoleOperador
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, found.Username, role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		Username:  found.Username,
		Role:      role,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
	}, nil
}
