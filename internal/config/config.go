package config

// Config is the hotel service's runtime configuration, read once at
// startup.  Connection details and the JWT secret are required and
// abort startup when absent; token lifetimes and the bcrypt cost have
// defaults suitable for development.
type Config struct {
	Env  string // dev, test or prod
	Port string // HTTP listen port

	DBUser string
	DBPass string // empty allowed for local setups
	DBHost string
	DBPort string
	DBName string // hotel schema name

	JWTSecret      string
	AccessTTLMin   int // access token lifetime in minutes
	RefreshTTLDays int // refresh token lifetime in days
	BcryptCost     int
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		Env:            envStr("APP_ENV", "dev"),
		Port:           envStr("APP_PORT", "8080"),
		DBUser:         must("DB_USER"),
		DBPass:         envStr("DB_PASS", ""),
		DBHost:         must("DB_HOST"),
		DBPort:         envStr("DB_PORT", "3306"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   envInt("ACCESS_TOKEN_TTL_MIN", 15),
		RefreshTTLDays: envInt("REFRESH_TOKEN_TTL_DAYS", 30),
		BcryptCost:     envInt("BCRYPT_COST", 12),
	}
}
