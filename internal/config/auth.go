package config

// AuthConfig holds the runtime configuration of the auth/profile service.
// It is intentionally smaller than Config: the auth service has no SQL
// database and issues only short-lived access tokens.
type AuthConfig struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	JWTSecret    string // secret used to sign JWTs
	AccessTTLMin int    // access token time-to-live in minutes
	BcryptCost   int    // bcrypt cost for password hashing
}

// LoadAuth reads the auth service configuration.  Secret and environment
// are required; the rest have conventional defaults so a local run needs
// almost no setup.
func LoadAuth() AuthConfig {
	return AuthConfig{
		Env:          envStr("APP_ENV", "dev"),
		Port:         envStr("AUTH_PORT", "8081"),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: envInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
		BcryptCost:   envInt("BCRYPT_COST", 10),
	}
}
