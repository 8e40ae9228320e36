package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Catalog       CatalogConfig
	CORS          CORSConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" && os.Getenv(EnvPort) == "" {
		cfg.App.Port = port
	}
	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return nil, fmt.Errorf("%s must not be blank", EnvJWTSecret)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	nets, err := parseTrustedProxies(cfg.AuthRateLimit.TrustedProxies)
	if err != nil {
		return nil, err
	}
	cfg.AuthRateLimit.TrustedProxyNets = nets
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LIVESTOCKMART_APP_ENV" required:"true"`
	Port         string `envconfig:"LIVESTOCKMART_APP_PORT" default:"5000"`
	LogLevel     string `envconfig:"LIVESTOCKMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LIVESTOCKMART_LOG_WARN_STACK" default:"false"`
	StaticDir    string `envconfig:"LIVESTOCKMART_STATIC_DIR"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd) || strings.EqualFold(a.Env, "production")
}

type DBConfig struct {
	DSN    string `envconfig:"LIVESTOCKMART_DB_DSN"`
	Driver string `envconfig:"LIVESTOCKMART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LIVESTOCKMART_DB_HOST"`
	LegacyPort     int    `envconfig:"LIVESTOCKMART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LIVESTOCKMART_DB_USER"`
	LegacyPassword string `envconfig:"LIVESTOCKMART_DB_PASSWORD"`
	LegacyName     string `envconfig:"LIVESTOCKMART_DB_NAME"`
	LegacySSLMode  string `envconfig:"LIVESTOCKMART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LIVESTOCKMART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LIVESTOCKMART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LIVESTOCKMART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LIVESTOCKMART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver is the embedded sqlite one.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"LIVESTOCKMART_REDIS_URL"`
	Address      string        `envconfig:"LIVESTOCKMART_REDIS_ADDR"`
	Password     string        `envconfig:"LIVESTOCKMART_REDIS_PASSWORD"`
	DB           int           `envconfig:"LIVESTOCKMART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LIVESTOCKMART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LIVESTOCKMART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LIVESTOCKMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LIVESTOCKMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LIVESTOCKMART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured. Rate limiting and
// the catalog cache are skipped without one.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret string `envconfig:"LIVESTOCKMART_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"LIVESTOCKMART_JWT_ISSUER" default:"livestockmart"`
}

type PasswordConfig struct {
	Algorithm        string `envconfig:"LIVESTOCKMART_PASSWORD_ALGORITHM" default:"bcrypt"`
	BcryptCost       int    `envconfig:"LIVESTOCKMART_BCRYPT_COST" default:"12"`
	ArgonMemoryKB    int    `envconfig:"LIVESTOCKMART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int    `envconfig:"LIVESTOCKMART_ARGON_TIME" default:"3"`
	ArgonParallelism int    `envconfig:"LIVESTOCKMART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int    `envconfig:"LIVESTOCKMART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int    `envconfig:"LIVESTOCKMART_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"LIVESTOCKMART_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"LIVESTOCKMART_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"LIVESTOCKMART_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"LIVESTOCKMART_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"LIVESTOCKMART_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"LIVESTOCKMART_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`

	// TrustedProxies lists the IPs or CIDRs whose forwarding headers are
	// believed. Empty means the socket peer is always the client.
	TrustedProxies   []string     `envconfig:"LIVESTOCKMART_TRUSTED_PROXIES"`
	TrustedProxyNets []*net.IPNet `ignored:"true"`
}

type CatalogConfig struct {
	CacheTTL time.Duration `envconfig:"LIVESTOCKMART_CATALOG_CACHE_TTL" default:"60s"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"LIVESTOCKMART_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LIVESTOCKMART_AUTO_MIGRATE" default:"false"`
}

func parseTrustedProxies(values []string) ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(values))
	for _, raw := range values {
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}
		if !strings.Contains(v, "/") {
			ip := net.ParseIP(v)
			if ip == nil {
				return nil, fmt.Errorf("%s: invalid address %q", EnvTrustedProxies, v)
			}
			bits := 128
			if ip.To4() != nil {
				ip = ip.To4()
				bits = 32
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, cidr, err := net.ParseCIDR(v)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid cidr %q: %w", EnvTrustedProxies, v, err)
		}
		nets = append(nets, cidr)
	}
	return nets, nil
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required for the sqlite driver", EnvDBDSN)
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
