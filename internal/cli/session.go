package cli

import (
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"

	apperrors "github.com/gymstack/gymctl/internal/pkg/errors"
	"github.com/gymstack/gymctl/pkg/client"
)

// The session is the token plus a snapshot of the logged-in user's profile,
// persisted together under the auth.* config keys and always cleared
// together: on logout and on any 401.

func saveSession(token string, user *client.User) error {
	viper.Set("auth.token", token)
	if user != nil {
		viper.Set("auth.user.id", user.ID)
		viper.Set("auth.user.name", user.Name)
		viper.Set("auth.user.email", user.Email)
		viper.Set("auth.user.role", user.Role)
		viper.Set("auth.user.verified", user.Verified)
	}
	return writeConfig()
}

func clearSession() {
	viper.Set("auth.token", "")
	viper.Set("auth.user.id", 0)
	viper.Set("auth.user.name", "")
	viper.Set("auth.user.email", "")
	viper.Set("auth.user.role", "")
	viper.Set("auth.user.verified", false)
	if err := writeConfig(); err != nil {
		log.ErrorWithErr(err, "failed to clear stored credentials")
	}
}

// storedUser returns the persisted user snapshot, or nil when none exists.
func storedUser() *client.User {
	if viper.GetString("auth.user.email") == "" {
		return nil
	}
	return &client.User{
		ID:       viper.GetInt64("auth.user.id"),
		Name:     viper.GetString("auth.user.name"),
		Email:    viper.GetString("auth.user.email"),
		Role:     viper.GetString("auth.user.role"),
		Verified: viper.GetBool("auth.user.verified"),
	}
}

// currentRole resolves the session's role from the user snapshot, falling
// back to the token's unverified claims. The server still authorizes every
// request; this only selects the local command surface.
func currentRole() string {
	if u := storedUser(); u != nil && u.Role != "" {
		return u.Role
	}
	return roleFromToken(viper.GetString("auth.token"))
}

func roleFromToken(token string) string {
	if token == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}

// requireRole refuses role-gated commands locally before any network call.
func requireRole(roles ...string) error {
	role := currentRole()
	for _, r := range roles {
		if role == r {
			return nil
		}
	}
	return fmt.Errorf("this command requires the %s role (you are logged in as %s)", rolesLabel(roles), roleLabel(role))
}

func rolesLabel(roles []string) string {
	if len(roles) == 1 {
		return roles[0]
	}
	out := ""
	for i, r := range roles {
		if i > 0 {
			out += " or "
		}
		out += r
	}
	return out
}

func roleLabel(role string) string {
	if role == "" {
		return "an unknown role"
	}
	return role
}

// failure converts a collaborator error into the error shown by cobra,
// after applying the global 401 policy and printing any field-level
// validation messages.
func failure(action string, err error) error {
	appErr := apperrors.Classify(action, err)
	log.ErrorWithErr(err, "api call failed")
	if appErr.Kind == apperrors.KindAuth {
		clearSession()
	}
	for _, f := range appErr.Fields {
		fmt.Fprintln(os.Stderr, "  - "+f)
	}
	return appErr
}

// notifyFailure reports a collaborator error inside an interactive screen
// without ending the program. It returns true when the session expired and
// the screen should exit.
func notifyFailure(action string, err error) bool {
	appErr := apperrors.Classify(action, err)
	log.ErrorWithErr(err, "api call failed")
	fmt.Fprintf(os.Stderr, "✗ %s\n", appErr.Message)
	for _, f := range appErr.Fields {
		fmt.Fprintln(os.Stderr, "  - "+f)
	}
	if appErr.Kind == apperrors.KindAuth {
		clearSession()
		return true
	}
	return false
}

func notifySuccess(msg string) {
	fmt.Println("✓ " + msg)
}

// fetchCollection is the collection fetcher contract: it never fails the
// caller. A fetch error is reported as a notification and yields an empty
// collection.
func fetchCollection[T any](action string, fetch func() ([]T, error)) []T {
	items, err := fetch()
	if err != nil {
		notifyFailure(action, err)
		return nil
	}
	return items
}

// validateRequest runs pre-submit validation and converts failures into a
// single error listing the offending fields.
func validateRequest(req interface{}) error {
	errs := validate.Validate(req)
	if len(errs) == 0 {
		return nil
	}
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "  - %s\n", e.Message)
	}
	return fmt.Errorf("invalid input (%d field(s) failed validation)", len(errs))
}
