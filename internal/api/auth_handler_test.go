package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/mhutchins/taskvault-api/internal/domain"
	"github.com/mhutchins/taskvault-api/internal/mocks"
	"github.com/mhutchins/taskvault-api/internal/service/auth"
	"github.com/mhutchins/taskvault-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthHandler(
	userStore *mocks.MockUserStore,
	jwtService *mocks.MockJWTService,
	verifier *mocks.MockPasswordVerifier,
) *AuthHandler {
	return NewAuthHandler(userStore, jwtService, verifier, slog.Default())
}

func postJSON(t *testing.T, handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestRegister(t *testing.T) {
	t.Run("creates the user and returns both tokens", func(t *testing.T) {
		var createdUser *domain.User
		userStore := &mocks.MockUserStore{
			CreateFn: func(ctx context.Context, user *domain.User) error {
				createdUser = user
				return nil
			},
		}
		jwtService := &mocks.MockJWTService{Token: "access-token", RefreshToken: "refresh-token"}

		handler := newAuthHandler(userStore, jwtService, &mocks.MockPasswordVerifier{})
		rr := postJSON(t, handler.Register, "/api/auth/register",
			`{"email":"new@example.com","password":"a-long-enough-password"}`)

		require.Equal(t, http.StatusCreated, rr.Code)
		require.NotNil(t, createdUser)
		assert.Equal(t, "new@example.com", createdUser.Email)

		var resp AuthResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, createdUser.ID, resp.UserID)
		assert.Equal(t, "access-token", resp.Token)
		assert.Equal(t, "refresh-token", resp.RefreshToken)
	})

	t.Run("rejects a short password", func(t *testing.T) {
		handler := newAuthHandler(&mocks.MockUserStore{}, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{})
		rr := postJSON(t, handler.Register, "/api/auth/register",
			`{"email":"new@example.com","password":"short"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects an invalid email", func(t *testing.T) {
		handler := newAuthHandler(&mocks.MockUserStore{}, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{})
		rr := postJSON(t, handler.Register, "/api/auth/register",
			`{"email":"not-an-email","password":"a-long-enough-password"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		userStore := &mocks.MockUserStore{Err: store.ErrEmailExists}
		handler := newAuthHandler(userStore, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{})
		rr := postJSON(t, handler.Register, "/api/auth/register",
			`{"email":"taken@example.com","password":"a-long-enough-password"}`)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("store failure is a server error", func(t *testing.T) {
		userStore := &mocks.MockUserStore{Err: errors.New("connection refused")}
		handler := newAuthHandler(userStore, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{})
		rr := postJSON(t, handler.Register, "/api/auth/register",
			`{"email":"new@example.com","password":"a-long-enough-password"}`)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestLogin(t *testing.T) {
	userID := uuid.New()
	storedUser := &domain.User{
		ID:             userID,
		Email:          "known@example.com",
		HashedPassword: "$2a$10$hash",
	}

	t.Run("valid credentials return both tokens", func(t *testing.T) {
		userStore := &mocks.MockUserStore{User: storedUser}
		jwtService := &mocks.MockJWTService{Token: "access-token", RefreshToken: "refresh-token"}

		handler := newAuthHandler(userStore, jwtService, &mocks.MockPasswordVerifier{})
		rr := postJSON(t, handler.Login, "/api/auth/login",
			`{"email":"known@example.com","password":"a-long-enough-password"}`)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp AuthResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, userID, resp.UserID)
		assert.Equal(t, "access-token", resp.Token)
		assert.Equal(t, "refresh-token", resp.RefreshToken)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		unknownStore := &mocks.MockUserStore{Err: store.ErrUserNotFound}
		handler := newAuthHandler(unknownStore, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{})
		rrUnknown := postJSON(t, handler.Login, "/api/auth/login",
			`{"email":"nobody@example.com","password":"a-long-enough-password"}`)

		wrongPassword := &mocks.MockPasswordVerifier{Err: errors.New("mismatch")}
		handler = newAuthHandler(&mocks.MockUserStore{User: storedUser}, &mocks.MockJWTService{}, wrongPassword)
		rrWrong := postJSON(t, handler.Login, "/api/auth/login",
			`{"email":"known@example.com","password":"a-wrong-password-entirely"}`)

		assert.Equal(t, http.StatusUnauthorized, rrUnknown.Code)
		assert.Equal(t, http.StatusUnauthorized, rrWrong.Code)
		assert.JSONEq(t, rrUnknown.Body.String(), rrWrong.Body.String())
	})

	t.Run("store failure is a server error", func(t *testing.T) {
		userStore := &mocks.MockUserStore{Err: errors.New("connection refused")}
		handler := newAuthHandler(userStore, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{})
		rr := postJSON(t, handler.Login, "/api/auth/login",
			`{"email":"known@example.com","password":"a-long-enough-password"}`)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestRefreshToken(t *testing.T) {
	userID := uuid.New()

	t.Run("valid refresh token yields a new pair", func(t *testing.T) {
		jwtService := &mocks.MockJWTService{
			Token:        "new-access",
			RefreshToken: "new-refresh",
			Claims:       &auth.Claims{UserID: userID, TokenType: "refresh"},
		}
		handler := newAuthHandler(&mocks.MockUserStore{}, jwtService, &mocks.MockPasswordVerifier{})
		rr := postJSON(t, handler.RefreshToken, "/api/auth/refresh",
			`{"refresh_token":"old-refresh"}`)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp AuthResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "new-access", resp.Token)
		assert.Equal(t, "new-refresh", resp.RefreshToken)
	})

	t.Run("expired refresh token", func(t *testing.T) {
		jwtService := &mocks.MockJWTService{ValidateErr: auth.ErrExpiredToken}
		handler := newAuthHandler(&mocks.MockUserStore{}, jwtService, &mocks.MockPasswordVerifier{})
		rr := postJSON(t, handler.RefreshToken, "/api/auth/refresh",
			`{"refresh_token":"stale"}`)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("access token passed as refresh token", func(t *testing.T) {
		jwtService := &mocks.MockJWTService{ValidateErr: auth.ErrWrongTokenType}
		handler := newAuthHandler(&mocks.MockUserStore{}, jwtService, &mocks.MockPasswordVerifier{})
		rr := postJSON(t, handler.RefreshToken, "/api/auth/refresh",
			`{"refresh_token":"an-access-token"}`)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("missing token field", func(t *testing.T) {
		handler := newAuthHandler(&mocks.MockUserStore{}, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{})
		rr := postJSON(t, handler.RefreshToken, "/api/auth/refresh", `{}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
