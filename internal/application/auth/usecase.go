package auth

import (
	"time"

	"github.com/titya18/pos-react-front-office-sub001/internal/application/dto"
	"github.com/titya18/pos-react-front-office-sub001/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase emite tokens de acceso para operadores. La identidad del usuario la
// resuelve un sistema externo; aquí solo se firma el par usuario/rol.
type AuthUseCase struct {
	jwtCfg JWTConfig
	now    func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{jwtCfg: jwtCfg, now: time.Now}
}

// IssueToken valida usuario y rol y devuelve un token firmado.
func (uc *AuthUseCase) IssueToken(in dto.IssueTokenRequest) (*dto.TokenResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	exp := in.ExpMinutes
	if exp <= 0 {
		exp = uc.jwtCfg.ExpMinutes
	}
	issuedAt := uc.now()
	token, err := jwt.Generate(uc.jwtCfg.Secret, in.UserID, in.Role, uc.jwtCfg.Issuer, exp)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		Token:     token,
		UserID:    in.UserID,
		Role:      in.Role,
		ExpiresAt: issuedAt.Add(time.Duration(exp) * time.Minute),
	}, nil
}
