// internal/config/model.go
//
// Typed configuration model for the content service.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                         – dotenv values,
//   • `conf/global.yaml`                      – primary static file,
//   • `ADEPT_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client *before* unmarshalling, so the model never
// stores Vault URIs, only plain strings.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.  Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.  No em-dash.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.  CORSAllowedOrigins accepts a YAML list
// or a comma-separated env value; "*" allows every origin.
type HTTP struct {
	ListenAddr         string        `koanf:"listen_addr"          validate:"required,hostname_port"`
	ForceHTTPS         bool          `koanf:"force_https"`
	CORSAllowedOrigins []string      `koanf:"cors_allowed_origins"`
	ShutdownTimeout    time.Duration `koanf:"shutdown_timeout"`
}

//
// Database section
//

// Database holds the DSN template and its secret.
//
// The *template* (`DSN`) is kept in YAML so operators can tweak host, port,
// or flags without touching Vault.  The *secret* (`Password`) normally is a
// `vault:` reference and is injected at runtime, keeping credentials out of
// flat files and git history.
type Database struct {
	DSN         string `koanf:"dsn"          validate:"required"`
	Password    string `koanf:"password"`
	MaxOpen     int    `koanf:"max_open"     validate:"min=0"`
	MaxIdle     int    `koanf:"max_idle"     validate:"min=0"`
	AutoMigrate bool   `koanf:"auto_migrate"`
}

//
// Auth section
//

// Auth configures bearer-token verification for the admin API.
type Auth struct {
	JWTSecret string `koanf:"jwt_secret" validate:"required,min=16"`
	Issuer    string `koanf:"issuer"`
}

//
// Content section
//

// Content holds listing defaults.  PerPage zero means the built-in 10.
type Content struct {
	PerPage int `koanf:"per_page" validate:"min=0,max=1000"`
}

//
// Mail section
//

// Mail configures the SMTP relay and contact-form addressing.  An empty
// Host disables outbound mail; the contact form then answers 502.
type Mail struct {
	Host           string `koanf:"host"`
	Port           int    `koanf:"port"            validate:"required_with=Host,omitempty,min=1,max=65535"`
	Username       string `koanf:"username"`
	Password       string `koanf:"password"`
	TLS            bool   `koanf:"tls"`
	From           string `koanf:"from"            validate:"required_with=Host,omitempty,email"`
	ContactTo      string `koanf:"contact_to"      validate:"required_with=Host,omitempty,email"`
	ContactSubject string `koanf:"contact_subject"`
}

//
// Log and GeoIP sections
//

// Log selects the minimum level written.
type Log struct {
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
}

// GeoIP points at an optional GeoLite2-City database.
type GeoIP struct {
	DBPath string `koanf:"db_path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.  The loader
// discovers `Root` (repo root or ADEPT_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root string // ADEPT_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load().
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	Auth     Auth     `koanf:"auth"`
	Content  Content  `koanf:"content"`
	Mail     Mail     `koanf:"mail"`
	Log      Log      `koanf:"log"`
	GeoIP    GeoIP    `koanf:"geoip"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}
