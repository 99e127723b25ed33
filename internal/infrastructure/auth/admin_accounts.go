package auth

import (
	"crypto/subtle"
	"encoding/json"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffhub/backend/internal/infrastructure/config"
)

// AdminAccount is a provisioned administrator login. Password may be either a
// plaintext value or a bcrypt hash.
type AdminAccount struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	OpenID   string `json:"openId,omitempty"`
}

// predefinedAccounts are the built-in administrator logins. Configured
// accounts with the same email take precedence.
var predefinedAccounts = []AdminAccount{
	{Email: "moises.costa12345@gmail.com", Password: "Moises@msc", Name: "Moises Costa"},
	{Email: "gabrielol2035@gmail.com", Password: "Gabriel@msc", Name: "Gabriel"},
	{Email: "naiaramsc@gmail.com", Password: "Naiara@msc", Name: "Naiara"},
	{Email: "recantodoacaienventosrj@gmail.com", Password: "Recanto@2025", Name: "Recanto Do Açaí Eventos RJ"},
	{Email: "arquimedesmsc@gmail.com", Password: "Arquimes@2025", Name: "Arquimedes"},
}

var openIDSlugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// SanitizeOpenID derives a stable open id slug from an email address.
// The result is prefixed with "admin-" and capped at 64 characters.
func SanitizeOpenID(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	slug := strings.Trim(openIDSlugPattern.ReplaceAllString(normalized, "-"), "-")
	if slug == "" {
		slug = "admin"
	}
	prefixed := "admin-" + slug
	if len(prefixed) > 64 {
		prefixed = prefixed[:64]
	}
	return prefixed
}

// AdminAccountRegistry resolves administrator logins merged from
// configuration and the built-in list.
type AdminAccountRegistry struct {
	accounts []AdminAccount
}

// NewAdminAccountRegistry merges administrator accounts in priority order:
// the configured JSON list first, then the configured email/password pair,
// then the built-in accounts. Accounts are deduplicated by lower-cased email
// with the first occurrence winning.
func NewAdminAccountRegistry(cfg config.AdminConfig, log *zap.Logger) *AdminAccountRegistry {
	candidates := parseJSONAccounts(cfg.AccountsJSON, log)

	if cfg.Email != "" && cfg.Password != "" {
		candidates = append(candidates, AdminAccount{
			Email:    cfg.Email,
			Password: cfg.Password,
		})
	}

	candidates = append(candidates, predefinedAccounts...)

	byEmail := make(map[string]struct{}, len(candidates))
	accounts := make([]AdminAccount, 0, len(candidates))

	for _, account := range candidates {
		email := strings.ToLower(strings.TrimSpace(account.Email))
		if email == "" {
			continue
		}
		if _, seen := byEmail[email]; seen {
			continue
		}
		byEmail[email] = struct{}{}

		normalized := account
		normalized.Email = email
		if normalized.OpenID == "" {
			normalized.OpenID = SanitizeOpenID(account.Email)
		}
		if normalized.Name == "" {
			normalized.Name = strings.SplitN(email, "@", 2)[0]
		}
		accounts = append(accounts, normalized)
	}

	return &AdminAccountRegistry{accounts: accounts}
}

func parseJSONAccounts(raw string, log *zap.Logger) []AdminAccount {
	if raw == "" {
		return nil
	}
	var accounts []AdminAccount
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		log.Warn("Failed to parse admin accounts JSON", zap.Error(err))
		return nil
	}
	valid := accounts[:0]
	for _, account := range accounts {
		if account.Email == "" || account.Password == "" {
			log.Warn("Skipping admin account without email or password")
			continue
		}
		valid = append(valid, account)
	}
	return valid
}

// Accounts returns all resolved administrator accounts.
func (r *AdminAccountRegistry) Accounts() []AdminAccount {
	return r.accounts
}

// FindByEmail returns the account for the given email, or nil.
func (r *AdminAccountRegistry) FindByEmail(email string) *AdminAccount {
	normalized := strings.ToLower(strings.TrimSpace(email))
	for i := range r.accounts {
		if r.accounts[i].Email == normalized {
			return &r.accounts[i]
		}
	}
	return nil
}

// VerifyPassword checks a candidate password against the account's stored
// one. Bcrypt hashes are compared with bcrypt, everything else in constant
// time.
func (a *AdminAccount) VerifyPassword(candidate string) bool {
	if strings.HasPrefix(a.Password, "$2a$") ||
		strings.HasPrefix(a.Password, "$2b$") ||
		strings.HasPrefix(a.Password, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(a.Password), []byte(candidate)) == 1
}
