package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/identity/internal/domain/errors"
	"github.com/polkiloo/identity/internal/domain/model"
	pkgAuth "github.com/polkiloo/identity/internal/pkg/auth"
	"github.com/polkiloo/identity/internal/server/http/dto"
	"github.com/polkiloo/identity/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/identity/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, path, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonHeaders() map[string]string {
	return map[string]string{"Content-Type": "application/json"}
}

func asUser(id int64) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, id)
	}
}

func decodeMessage(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var out dto.MessageResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode body %q: %v", resp.Body.String(), err)
	}
	return out.Message
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.UserIDContextKey, int64(42))
	if got := CurrentUserID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestCurrentClaims(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentClaims(c); got != nil {
		t.Fatalf("expected nil when not set, got %+v", got)
	}

	c.Set(middleware.ClaimsContextKey, &pkgAuth.TokenClaims{UserID: 7, Role: model.RoleAdmin})
	claims := CurrentClaims(c)
	if claims == nil || claims.UserID != 7 || claims.Role != model.RoleAdmin {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.RegisterRequest{Email: "alice@example.com", Password: "secret1", FullName: "Alice"})
	handler := NewAuthHandler(testhelpers.IdentityFacadeStub{RegisterFn: func(ctx context.Context, email, password, fullName string) (*model.User, string, error) {
		if email != "alice@example.com" || password != "secret1" || fullName != "Alice" {
			t.Fatalf("unexpected arguments passed to facade: %q %q %q", email, password, fullName)
		}
		return &model.User{ID: 5, Email: email}, "session-token", nil
	}})
	resp := performRequest(t, http.MethodPost, "/register", handler.Register, nil, body, jsonHeaders())
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if got := resp.Header().Get("Authorization"); got != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", got)
	}

	var out dto.AuthResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if out.Token != "session-token" || out.User.ID != 5 || out.User.Email != "alice@example.com" {
		t.Fatalf("unexpected response %+v", out)
	}
	if out.User.IsVerified != nil {
		t.Fatalf("registration response must not include verification state, got %+v", out.User)
	}

	result := resp.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	cookies := result.Cookies()
	if len(cookies) == 0 || cookies[0].Value != "session-token" {
		t.Fatalf("expected auth cookie with token, got %+v", cookies)
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	validBody, _ := json.Marshal(dto.RegisterRequest{Email: "alice@example.com", Password: "secret1"})

	tests := []struct {
		name    string
		facade  testhelpers.IdentityFacadeStub
		body    []byte
		status  int
		message string
	}{
		{
			name:    "malformed body",
			body:    []byte("{"),
			status:  http.StatusBadRequest,
			message: "malformed request body",
		},
		{
			name: "duplicate email",
			facade: testhelpers.IdentityFacadeStub{RegisterFn: func(context.Context, string, string, string) (*model.User, string, error) {
				return nil, "", domainErrors.ErrAlreadyExists
			}},
			body:    validBody,
			status:  http.StatusBadRequest,
			message: domainErrors.ErrAlreadyExists.Error(),
		},
		{
			name: "invalid email",
			facade: testhelpers.IdentityFacadeStub{RegisterFn: func(context.Context, string, string, string) (*model.User, string, error) {
				return nil, "", domainErrors.ErrInvalidEmail
			}},
			body:    validBody,
			status:  http.StatusBadRequest,
			message: domainErrors.ErrInvalidEmail.Error(),
		},
		{
			name: "weak password",
			facade: testhelpers.IdentityFacadeStub{RegisterFn: func(context.Context, string, string, string) (*model.User, string, error) {
				return nil, "", domainErrors.ErrWeakPassword
			}},
			body:    validBody,
			status:  http.StatusBadRequest,
			message: domainErrors.ErrWeakPassword.Error(),
		},
		{
			name: "internal error",
			facade: testhelpers.IdentityFacadeStub{RegisterFn: func(context.Context, string, string, string) (*model.User, string, error) {
				return nil, "", errors.New("db down")
			}},
			body:   validBody,
			status: http.StatusInternalServerError,
		},
		{
			name: "timeout",
			facade: testhelpers.IdentityFacadeStub{RegisterFn: func(context.Context, string, string, string) (*model.User, string, error) {
				return nil, "", context.DeadlineExceeded
			}},
			body:   validBody,
			status: http.StatusGatewayTimeout,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(tc.facade).Register, nil, tc.body, jsonHeaders())
			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.Code)
			}
			if tc.message != "" && decodeMessage(t, resp) != tc.message {
				t.Fatalf("unexpected message %q", resp.Body.String())
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.LoginRequest{Email: "alice@example.com", Password: "secret1"})
	handler := NewAuthHandler(testhelpers.IdentityFacadeStub{AuthenticateFn: func(ctx context.Context, email, password string) (*model.User, string, error) {
		return &model.User{ID: 5, Email: email, IsVerified: true}, "session-token", nil
	}})
	resp := performRequest(t, http.MethodPost, "/login", handler.Login, nil, body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var out dto.AuthResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if out.Token != "session-token" || out.User.Email != "alice@example.com" {
		t.Fatalf("unexpected response %+v", out)
	}
	if out.User.IsVerified == nil || !*out.User.IsVerified {
		t.Fatalf("expected verification state in login response, got %+v", out.User)
	}
}

func TestAuthHandlerLoginFailures(t *testing.T) {
	validBody, _ := json.Marshal(dto.LoginRequest{Email: "alice@example.com", Password: "wrong"})

	resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(testhelpers.IdentityFacadeStub{}).Login, nil, []byte("{"), jsonHeaders())
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.Code)
	}

	handler := NewAuthHandler(testhelpers.IdentityFacadeStub{AuthenticateFn: func(context.Context, string, string) (*model.User, string, error) {
		return nil, "", domainErrors.ErrInvalidCredentials
	}})
	resp = performRequest(t, http.MethodPost, "/login", handler.Login, nil, validBody, jsonHeaders())
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad credentials, got %d", resp.Code)
	}
	if decodeMessage(t, resp) != "Invalid Credentials" {
		t.Fatalf("unexpected message %q", resp.Body.String())
	}
}

func TestAuthHandlerMe(t *testing.T) {
	createdAt := time.Now()
	handler := NewAuthHandler(testhelpers.IdentityFacadeStub{GetUserFn: func(ctx context.Context, id int64) (*model.User, error) {
		if id != 42 {
			t.Fatalf("unexpected user id %d", id)
		}
		return &model.User{
			ID:           42,
			Email:        "alice@example.com",
			FullName:     "Alice",
			PasswordHash: "$2a$10$secret",
			Role:         model.RoleUser,
			IsVerified:   true,
			CreatedAt:    createdAt,
		}, nil
	}})
	resp := performRequest(t, http.MethodGet, "/me", handler.Me, asUser(42), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var out dto.ProfileResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if out.ID != 42 || out.Email != "alice@example.com" || out.FullName != "Alice" || !out.IsVerified || out.Role != "user" {
		t.Fatalf("unexpected profile %+v", out)
	}
	if strings.Contains(resp.Body.String(), "secret") || strings.Contains(resp.Body.String(), "password") {
		t.Fatalf("profile response leaks credentials: %s", resp.Body.String())
	}
}

func TestAuthHandlerMeNotFound(t *testing.T) {
	handler := NewAuthHandler(testhelpers.IdentityFacadeStub{GetUserFn: func(context.Context, int64) (*model.User, error) {
		return nil, domainErrors.ErrNotFound
	}})
	resp := performRequest(t, http.MethodGet, "/me", handler.Me, asUser(42), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestAuthHandlerChangePassword(t *testing.T) {
	body, _ := json.Marshal(dto.ChangePasswordRequest{OldPassword: "oldpass", NewPassword: "newpass1"})
	handler := NewAuthHandler(testhelpers.IdentityFacadeStub{ChangePasswordFn: func(ctx context.Context, id int64, oldPassword, newPassword string) error {
		if id != 42 || oldPassword != "oldpass" || newPassword != "newpass1" {
			t.Fatalf("unexpected arguments: %d %q %q", id, oldPassword, newPassword)
		}
		return nil
	}})
	resp := performRequest(t, http.MethodPost, "/change-password", handler.ChangePassword, asUser(42), body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if decodeMessage(t, resp) != "Password updated successfully" {
		t.Fatalf("unexpected message %q", resp.Body.String())
	}
}

func TestAuthHandlerChangePasswordFailures(t *testing.T) {
	validBody, _ := json.Marshal(dto.ChangePasswordRequest{OldPassword: "oldpass", NewPassword: "newpass1"})

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"wrong old password", domainErrors.ErrInvalidOldPassword, http.StatusBadRequest, "Incorrect old password"},
		{"weak new password", domainErrors.ErrWeakPassword, http.StatusBadRequest, domainErrors.ErrWeakPassword.Error()},
		{"unknown user", domainErrors.ErrNotFound, http.StatusNotFound, "Not found"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewAuthHandler(testhelpers.IdentityFacadeStub{ChangePasswordFn: func(context.Context, int64, string, string) error {
				return tc.err
			}})
			resp := performRequest(t, http.MethodPost, "/change-password", handler.ChangePassword, asUser(42), validBody, jsonHeaders())
			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.Code)
			}
			if decodeMessage(t, resp) != tc.message {
				t.Fatalf("unexpected message %q", resp.Body.String())
			}
		})
	}

	resp := performRequest(t, http.MethodPost, "/change-password", NewAuthHandler(testhelpers.IdentityFacadeStub{}).ChangePassword, asUser(42), []byte("{"), jsonHeaders())
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.Code)
	}
}

func TestProfileHandlerUpdate(t *testing.T) {
	body, _ := json.Marshal(dto.UpdateProfileRequest{Email: "new@example.com", FullName: "New Name"})
	handler := NewProfileHandler(testhelpers.IdentityFacadeStub{UpdateProfileFn: func(ctx context.Context, id int64, email, fullName string) (*model.User, string, error) {
		if id != 42 || email != "new@example.com" || fullName != "New Name" {
			t.Fatalf("unexpected arguments: %d %q %q", id, email, fullName)
		}
		return &model.User{ID: 42, Email: email, FullName: fullName}, "fresh-token", nil
	}})
	resp := performRequest(t, http.MethodPut, "/profile", handler.Update, asUser(42), body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var out dto.AuthResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if out.Token != "fresh-token" || out.User.Email != "new@example.com" {
		t.Fatalf("unexpected response %+v", out)
	}
	if got := resp.Header().Get("Authorization"); got != "Bearer fresh-token" {
		t.Fatalf("expected re-issued token in header, got %q", got)
	}
}

func TestProfileHandlerUpdateFailures(t *testing.T) {
	validBody, _ := json.Marshal(dto.UpdateProfileRequest{Email: "taken@example.com"})

	handler := NewProfileHandler(testhelpers.IdentityFacadeStub{UpdateProfileFn: func(context.Context, int64, string, string) (*model.User, string, error) {
		return nil, "", domainErrors.ErrAlreadyExists
	}})
	resp := performRequest(t, http.MethodPut, "/profile", handler.Update, asUser(42), validBody, jsonHeaders())
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for taken email, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPut, "/profile", NewProfileHandler(testhelpers.IdentityFacadeStub{}).Update, asUser(42), []byte("{"), jsonHeaders())
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.Code)
	}
}

func TestProfileHandlerRequestVerification(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)
	handler := NewProfileHandler(testhelpers.IdentityFacadeStub{RequestVerificationFn: func(ctx context.Context, id int64) (*model.VerificationToken, error) {
		return &model.VerificationToken{Token: "verify-token", UserID: id, ExpiresAt: expiresAt}, nil
	}})
	resp := performRequest(t, http.MethodPost, "/verify/request", handler.RequestVerification, asUser(42), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var out dto.VerificationResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if out.Token != "verify-token" || out.ExpiresAt != expiresAt.Format(time.RFC3339) {
		t.Fatalf("unexpected response %+v", out)
	}

	already := NewProfileHandler(testhelpers.IdentityFacadeStub{RequestVerificationFn: func(context.Context, int64) (*model.VerificationToken, error) {
		return nil, domainErrors.ErrAlreadyVerified
	}})
	resp = performRequest(t, http.MethodPost, "/verify/request", already.RequestVerification, asUser(42), nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for verified account, got %d", resp.Code)
	}
}

func TestProfileHandlerConfirmVerification(t *testing.T) {
	body, _ := json.Marshal(dto.ConfirmVerificationRequest{Token: "verify-token"})
	handler := NewProfileHandler(testhelpers.IdentityFacadeStub{ConfirmVerificationFn: func(ctx context.Context, token string) error {
		if token != "verify-token" {
			t.Fatalf("unexpected token %q", token)
		}
		return nil
	}})
	resp := performRequest(t, http.MethodPost, "/verify/confirm", handler.ConfirmVerification, nil, body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if decodeMessage(t, resp) != "Email verified" {
		t.Fatalf("unexpected message %q", resp.Body.String())
	}

	unknown := NewProfileHandler(testhelpers.IdentityFacadeStub{ConfirmVerificationFn: func(context.Context, string) error {
		return domainErrors.ErrNotFound
	}})
	resp = performRequest(t, http.MethodPost, "/verify/confirm", unknown.ConfirmVerification, nil, body, jsonHeaders())
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown token, got %d", resp.Code)
	}
	if decodeMessage(t, resp) != "Invalid or expired verification token" {
		t.Fatalf("unexpected message %q", resp.Body.String())
	}

	resp = performRequest(t, http.MethodPost, "/verify/confirm", NewProfileHandler(testhelpers.IdentityFacadeStub{}).ConfirmVerification, nil, []byte("{"), jsonHeaders())
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.Code)
	}
}

func TestAdminHandlerResetPassword(t *testing.T) {
	body, _ := json.Marshal(dto.ResetPasswordRequest{Email: "alice@example.com", NewPassword: "newpass1"})
	handler := NewAdminHandler(testhelpers.IdentityFacadeStub{ResetPasswordFn: func(ctx context.Context, email, newPassword string) error {
		if email != "alice@example.com" || newPassword != "newpass1" {
			t.Fatalf("unexpected arguments: %q %q", email, newPassword)
		}
		return nil
	}})
	resp := performRequest(t, http.MethodPost, "/admin/reset-password", handler.ResetPassword, nil, body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if decodeMessage(t, resp) != "Password reset successfully" {
		t.Fatalf("unexpected message %q", resp.Body.String())
	}

	unknown := NewAdminHandler(testhelpers.IdentityFacadeStub{ResetPasswordFn: func(context.Context, string, string) error {
		return domainErrors.ErrNotFound
	}})
	resp = performRequest(t, http.MethodPost, "/admin/reset-password", unknown.ResetPassword, nil, body, jsonHeaders())
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPost, "/admin/reset-password", NewAdminHandler(testhelpers.IdentityFacadeStub{}).ResetPassword, nil, []byte("{"), jsonHeaders())
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.Code)
	}
}
