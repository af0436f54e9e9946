package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/taskdash/taskdash/internal/auth"
	"github.com/taskdash/taskdash/internal/domain"
)

type LoginInput struct {
	Body struct {
		Email    string `json:"email" format:"email" doc:"Account email"`
		Password string `json:"password" minLength:"1" doc:"Account password"`
	}
}

type LoginOutput struct {
	Body struct {
		User         *domain.User `json:"user"`
		AccessToken  string       `json:"access_token"`
		RefreshToken string       `json:"refresh_token"`
	}
}

type RefreshInput struct {
	Body struct {
		RefreshToken string `json:"refresh_token" minLength:"1" doc:"Refresh token from login"`
	}
}

type RefreshOutput struct {
	Body struct {
		AccessToken string `json:"access_token"`
	}
}

func RegisterAuthRoutes(api huma.API, svc AuthService) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Summary:     "Exchange email and password for a token pair",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
		user, access, refresh, err := svc.Login(ctx, input.Body.Email, input.Body.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				return nil, huma.Error401Unauthorized("invalid email or password")
			}
			return nil, huma.Error500InternalServerError("login failed")
		}

		out := &LoginOutput{}
		out.Body.User = user
		out.Body.AccessToken = access
		out.Body.RefreshToken = refresh
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "refresh-token",
		Method:      http.MethodPost,
		Path:        "/auth/refresh",
		Summary:     "Exchange a refresh token for a new access token",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *RefreshInput) (*RefreshOutput, error) {
		access, err := svc.Refresh(ctx, input.Body.RefreshToken)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error401Unauthorized("invalid refresh token")
			}
			return nil, huma.Error500InternalServerError("token refresh failed")
		}

		out := &RefreshOutput{}
		out.Body.AccessToken = access
		return out, nil
	})
}
