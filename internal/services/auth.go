package services

import (
	"context"

	"sasce-admin/internal/apiclient"
	"sasce-admin/internal/domain"
)

// AuthService implements the token-based authentication scheme. Earlier
// iterations of the system looked users up by email and trusted the client;
// that scheme is superseded and deliberately not implemented here.
type AuthService struct {
	client *apiclient.Client
}

// NewAuthService wraps a gateway client.
func NewAuthService(client *apiclient.Client) *AuthService {
	return &AuthService{client: client}
}

type loginRequest struct {
	Correo   string `json:"correo"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string          `json:"accessToken"`
	Usuario     *domain.Usuario `json:"usuario"`
}

// Login exchanges credentials for an access token and the user record.
// On failure the error carries a user-displayable message and no session
// state is touched. The exchange goes out without a bearer token: when a
// session is already held, a rejection of the new credentials must not
// tear it down.
func (s *AuthService) Login(ctx context.Context, correo, password string) (string, *domain.Usuario, error) {
	var resp loginResponse
	err := s.client.WithoutAuth().Post(ctx, "/auth/login", loginRequest{Correo: correo, Password: password}, &resp)
	if err != nil {
		return "", nil, err
	}
	if resp.AccessToken == "" || resp.Usuario == nil {
		return "", nil, domain.ErrValidation("Respuesta de autenticación incompleta del servidor")
	}
	return resp.AccessToken, resp.Usuario, nil
}
