package cli

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"

	apperrors "github.com/gymstack/gymctl/internal/pkg/errors"
	"github.com/gymstack/gymctl/internal/pkg/logger"
	validatorpkg "github.com/gymstack/gymctl/internal/pkg/validator"
	"github.com/gymstack/gymctl/pkg/client"
)

// testSession points the config layer at a throwaway file and resets it
// afterwards, so session writes never touch the real home directory.
func testSession(t *testing.T) {
	t.Helper()
	viper.Reset()
	cfgFile = filepath.Join(t.TempDir(), "config.yaml")
	log = logger.New(logger.Config{Level: "error", Format: "console"})
	t.Cleanup(func() {
		viper.Reset()
		cfgFile = ""
	})
}

func signedToken(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": role, "sub": "1"})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestRoleFromToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{name: "empty token", token: "", want: ""},
		{name: "garbage token", token: "not-a-jwt", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := roleFromToken(tt.token); got != tt.want {
				t.Errorf("roleFromToken(%q) = %q, want %q", tt.token, got, tt.want)
			}
		})
	}

	t.Run("signed token role claim", func(t *testing.T) {
		if got := roleFromToken(signedToken(t, client.RoleTrainer)); got != client.RoleTrainer {
			t.Errorf("roleFromToken() = %q, want %q", got, client.RoleTrainer)
		}
	})
}

func TestCurrentRolePrefersStoredUser(t *testing.T) {
	testSession(t)

	viper.Set("auth.user.email", "admin@example.com")
	viper.Set("auth.user.role", client.RoleAdmin)
	viper.Set("auth.token", signedToken(t, client.RoleMember))

	if got := currentRole(); got != client.RoleAdmin {
		t.Errorf("currentRole() = %q, want stored role %q", got, client.RoleAdmin)
	}
}

func TestCurrentRoleFallsBackToToken(t *testing.T) {
	testSession(t)
	viper.Set("auth.token", signedToken(t, client.RoleTrainer))

	if got := currentRole(); got != client.RoleTrainer {
		t.Errorf("currentRole() = %q, want token role %q", got, client.RoleTrainer)
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		allowed []string
		wantErr bool
	}{
		{name: "matching role", role: client.RoleAdmin, allowed: []string{client.RoleAdmin}, wantErr: false},
		{name: "one of several", role: client.RoleTrainer, allowed: []string{client.RoleAdmin, client.RoleTrainer}, wantErr: false},
		{name: "wrong role", role: client.RoleMember, allowed: []string{client.RoleAdmin}, wantErr: true},
		{name: "no session", role: "", allowed: []string{client.RoleAdmin}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testSession(t)
			if tt.role != "" {
				viper.Set("auth.user.email", "someone@example.com")
				viper.Set("auth.user.role", tt.role)
			}
			err := requireRole(tt.allowed...)
			if (err != nil) != tt.wantErr {
				t.Errorf("requireRole() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFailureClearsSessionOnAuthError(t *testing.T) {
	testSession(t)
	viper.Set("auth.token", "stale-token")
	viper.Set("auth.user.email", "someone@example.com")

	err := failure("load members", &client.APIError{StatusCode: 401, Message: "token expired"})

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Kind != apperrors.KindAuth {
		t.Fatalf("failure() = %v, want auth-kind app error", err)
	}
	if viper.GetString("auth.token") != "" {
		t.Error("auth.token not cleared after 401")
	}
	if storedUser() != nil {
		t.Error("user snapshot not cleared after 401")
	}
}

func TestFailureKeepsSessionOnOtherErrors(t *testing.T) {
	testSession(t)
	viper.Set("auth.token", "good-token")
	viper.Set("auth.user.email", "someone@example.com")

	err := failure("delete plan", &client.APIError{StatusCode: 409, Message: "plan has subscriptions"})
	if err == nil {
		t.Fatal("failure() = nil, want error")
	}
	if viper.GetString("auth.token") != "good-token" {
		t.Error("auth.token cleared on non-auth error")
	}
}

func TestSaveAndClearSessionRoundTrip(t *testing.T) {
	testSession(t)

	user := &client.User{ID: 7, Name: "Dana", Email: "dana@example.com", Role: client.RoleMember, Verified: true}
	if err := saveSession("tok", user); err != nil {
		t.Fatalf("saveSession() error = %v", err)
	}

	got := storedUser()
	if got == nil || got.ID != 7 || got.Role != client.RoleMember || !got.Verified {
		t.Fatalf("storedUser() = %+v, want saved snapshot", got)
	}

	clearSession()
	if storedUser() != nil {
		t.Error("storedUser() after clearSession() should be nil")
	}
}

func TestValidateRequestReportsFieldCount(t *testing.T) {
	validate = validatorpkg.New()

	err := validateRequest(client.RegisterRequest{Name: "", Email: "nope", Password: "x"})
	if err == nil {
		t.Fatal("validateRequest() = nil, want error")
	}
	if !strings.Contains(err.Error(), "failed validation") {
		t.Errorf("error %q missing validation summary", err)
	}
}
