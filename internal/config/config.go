package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config is the top-level dialsheet configuration.
type Config struct {
	Clean   CleanConfig   `toml:"clean"`
	Prepare PrepareConfig `toml:"prepare"`
	Send    SendConfig    `toml:"send"`
	Logging LoggingConfig `toml:"logging"`
}

// CleanConfig controls how raw exports are cleaned into send lists.
type CleanConfig struct {
	DefaultCountryCode string   `toml:"default_country_code"` // assumed for bare 10-digit numbers
	MXMobileOne        bool     `toml:"mx_mobile_one"`        // emit the legacy +521 mobile form for Mexico
	MobileLabels       []string `toml:"mobile_labels"`        // label keywords that mark a phone slot as mobile
	Channel            string   `toml:"channel"`              // stamped on rows that carry no channel
}

// PrepareConfig controls greeting derivation and the channel splits.
type PrepareConfig struct {
	GreetingFallback string   `toml:"greeting_fallback"`
	SMSCountries     []string `toml:"sms_countries"`
}

// SendConfig controls the bulk sender. Provider "log" prints instead of
// sending, so a fresh config can rehearse a campaign safely.
type SendConfig struct {
	Provider         string       `toml:"provider"` // "log" (default), "twilio", "sns", "capture"
	DelayMS          int          `toml:"delay_ms"`
	Validate         bool         `toml:"validate"`
	AllowedCountries []string     `toml:"allowed_countries"`
	SMSBody          string       `toml:"sms_body"`
	WhatsAppTemplate string       `toml:"whatsapp_template"`
	Twilio           TwilioConfig `toml:"twilio"`
	SNS              SNSConfig    `toml:"sns"`
}

// TwilioConfig carries Twilio credentials and sender numbers. All of these
// are usually supplied through the classic TWILIO_* environment variables
// rather than the config file.
type TwilioConfig struct {
	AccountSID   string `toml:"account_sid"`
	AuthToken    string `toml:"auth_token"`
	SMSFrom      string `toml:"sms_from"`
	WhatsAppFrom string `toml:"whatsapp_from"`
	BaseURL      string `toml:"base_url"`
}

// SNSConfig carries AWS SNS settings. An empty region falls back to the AWS
// SDK default chain (AWS_REGION, shared profile).
type SNSConfig struct {
	Region string `toml:"region"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns a Config with all defaults applied.
func Default() *Config {
	return &Config{
		Clean: CleanConfig{
			DefaultCountryCode: "+1",
			MobileLabels:       []string{"mobile", "cell", "móvil", "movil"},
			Channel:            "WhatsApp",
		},
		Prepare: PrepareConfig{
			GreetingFallback: "amig@",
			SMSCountries:     []string{"US", "MX"},
		},
		Send: SendConfig{
			Provider:         "log",
			DelayMS:          700, // avoids Twilio rate spikes
			SMSBody:          "Hi {name}! Can I send you the link? Reply STOP to opt out.",
			WhatsAppTemplate: "Hola {{name}}, ¿te puedo enviar el enlace?",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration with priority: defaults → dialsheet.toml → env
// vars → CLI flags. A local .env file is folded into the environment first,
// since credentials usually live there; a missing .env is fine. The flags
// parameter allows CLI flag overrides to be passed in.
func Load(configPath string, flags map[string]string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if configPath == "" {
		configPath = "dialsheet.toml"
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", configPath, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	applyFlags(cfg, flags)
	cfg.canonicalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// canonicalize fixes casing so downstream exact-match code sees canonical
// values: channel names as written on rows, country codes upper-cased.
func (c *Config) canonicalize() {
	c.Clean.Channel = canonChannel(c.Clean.Channel)
	c.Prepare.SMSCountries = upperTrim(c.Prepare.SMSCountries)
	c.Send.AllowedCountries = upperTrim(c.Send.AllowedCountries)
}

func canonChannel(s string) string {
	switch {
	case strings.EqualFold(s, "whatsapp"):
		return "WhatsApp"
	case strings.EqualFold(s, "sms"):
		return "SMS"
	}
	return s
}

func upperTrim(list []string) []string {
	var out []string
	for _, s := range list {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks the configuration for invalid values. Credential presence
// is checked by ValidateSend instead, so cleaning a list never demands a
// Twilio account.
func (c *Config) Validate() error {
	cc := strings.TrimPrefix(c.Clean.DefaultCountryCode, "+")
	if cc == "" || len(cc) > 3 {
		return fmt.Errorf("clean.default_country_code must be a calling code like \"+1\" or \"+52\", got %q", c.Clean.DefaultCountryCode)
	}
	for _, r := range cc {
		if r < '0' || r > '9' {
			return fmt.Errorf("clean.default_country_code must be a calling code like \"+1\" or \"+52\", got %q", c.Clean.DefaultCountryCode)
		}
	}
	switch {
	case c.Clean.Channel == "":
	case strings.EqualFold(c.Clean.Channel, "WhatsApp"):
	case strings.EqualFold(c.Clean.Channel, "SMS"):
	default:
		return fmt.Errorf("clean.channel must be \"WhatsApp\" or \"SMS\", got %q", c.Clean.Channel)
	}
	switch c.Send.Provider {
	case "", "log", "twilio", "sns", "capture":
	default:
		return fmt.Errorf("send.provider must be \"log\", \"twilio\", \"sns\", or \"capture\", got %q", c.Send.Provider)
	}
	if c.Send.DelayMS < 0 {
		return fmt.Errorf("send.delay_ms must be non-negative, got %d", c.Send.DelayMS)
	}
	if c.Logging.Level != "" {
		switch c.Logging.Level {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("logging.level must be one of: debug, info, warn, error; got %q", c.Logging.Level)
		}
	}
	return nil
}

// ValidateSend checks everything a real send on the given channel needs:
// a message body and, per provider, credentials and a sender address.
func (c *Config) ValidateSend(channel string) error {
	var whatsapp bool
	switch {
	case strings.EqualFold(channel, "sms"):
	case strings.EqualFold(channel, "whatsapp"):
		whatsapp = true
	default:
		return fmt.Errorf("channel must be \"sms\" or \"whatsapp\", got %q", channel)
	}
	if c.Send.Body(channel) == "" {
		if whatsapp {
			return fmt.Errorf("send.whatsapp_template is required for the whatsapp channel")
		}
		return fmt.Errorf("send.sms_body is required for the sms channel")
	}
	switch c.Send.Provider {
	case "", "log", "capture":
	case "twilio":
		t := c.Send.Twilio
		if t.AccountSID == "" {
			return fmt.Errorf("send.twilio.account_sid is required (or set TWILIO_ACCOUNT_SID)")
		}
		if t.AuthToken == "" {
			return fmt.Errorf("send.twilio.auth_token is required (or set TWILIO_AUTH_TOKEN)")
		}
		if t.From(channel) == "" {
			if whatsapp {
				return fmt.Errorf("send.twilio.whatsapp_from is required (or set TWILIO_WHATSAPP_FROM, e.g. whatsapp:+14155238886)")
			}
			return fmt.Errorf("send.twilio.sms_from is required (or set TWILIO_SMS_FROM, e.g. +12145550123)")
		}
	case "sns":
		if whatsapp {
			return fmt.Errorf("send.provider \"sns\" has no whatsapp transport; use twilio for whatsapp sends")
		}
	default:
		return fmt.Errorf("send.provider must be \"log\", \"twilio\", \"sns\", or \"capture\", got %q", c.Send.Provider)
	}
	return nil
}

// Body returns the message template for the channel: the WhatsApp template
// for whatsapp, the SMS body otherwise.
func (s SendConfig) Body(channel string) string {
	if strings.EqualFold(channel, "whatsapp") {
		return s.WhatsAppTemplate
	}
	return s.SMSBody
}

// Delay returns the pause between sends.
func (s SendConfig) Delay() time.Duration {
	return time.Duration(s.DelayMS) * time.Millisecond
}

// From returns the sender address for the channel. WhatsApp senders get the
// "whatsapp:" prefix Twilio expects when the config value lacks it.
func (t TwilioConfig) From(channel string) string {
	if strings.EqualFold(channel, "whatsapp") {
		from := t.WhatsAppFrom
		if from != "" && !strings.HasPrefix(from, "whatsapp:") {
			from = "whatsapp:" + from
		}
		return from
	}
	return t.SMSFrom
}

// GenerateDefault writes a commented default dialsheet.toml to the given path.
func GenerateDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(defaultTOML), 0o644)
}

// ToTOML returns the config serialized as TOML.
func (c *Config) ToTOML() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// envInt reads an integer from the named environment variable.
// Returns an error if the value is set but not a valid integer.
func envInt(name string, dest *int) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %q is not an integer", name, v)
	}
	*dest = n
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("DIALSHEET_CLEAN_DEFAULT_COUNTRY_CODE"); v != "" {
		cfg.Clean.DefaultCountryCode = v
	}
	if v := os.Getenv("DIALSHEET_CLEAN_MX_MOBILE_ONE"); v != "" {
		cfg.Clean.MXMobileOne = v == "true" || v == "1"
	}
	if v := os.Getenv("DIALSHEET_CLEAN_MOBILE_LABELS"); v != "" {
		cfg.Clean.MobileLabels = strings.Split(v, ",")
	}
	if v := os.Getenv("DIALSHEET_CLEAN_CHANNEL"); v != "" {
		cfg.Clean.Channel = v
	}
	if v := os.Getenv("DIALSHEET_PREPARE_GREETING_FALLBACK"); v != "" {
		cfg.Prepare.GreetingFallback = v
	}
	if v := os.Getenv("DIALSHEET_PREPARE_SMS_COUNTRIES"); v != "" {
		cfg.Prepare.SMSCountries = strings.Split(v, ",")
	}
	if v := os.Getenv("DIALSHEET_SEND_PROVIDER"); v != "" {
		cfg.Send.Provider = v
	}
	if err := envInt("DIALSHEET_SEND_DELAY_MS", &cfg.Send.DelayMS); err != nil {
		return err
	}
	if v := os.Getenv("DIALSHEET_SEND_VALIDATE"); v != "" {
		cfg.Send.Validate = v == "true" || v == "1"
	}
	if v := os.Getenv("DIALSHEET_SEND_ALLOWED_COUNTRIES"); v != "" {
		cfg.Send.AllowedCountries = strings.Split(v, ",")
	}
	if v := os.Getenv("DIALSHEET_SEND_SMS_BODY"); v != "" {
		cfg.Send.SMSBody = v
	}
	if v := os.Getenv("DIALSHEET_SEND_WHATSAPP_TEMPLATE"); v != "" {
		cfg.Send.WhatsAppTemplate = v
	}
	// Twilio keeps its classic variable names so an existing .env works as is.
	if v := os.Getenv("TWILIO_ACCOUNT_SID"); v != "" {
		cfg.Send.Twilio.AccountSID = v
	}
	if v := os.Getenv("TWILIO_AUTH_TOKEN"); v != "" {
		cfg.Send.Twilio.AuthToken = v
	}
	if v := os.Getenv("TWILIO_SMS_FROM"); v != "" {
		cfg.Send.Twilio.SMSFrom = v
	}
	if v := os.Getenv("TWILIO_WHATSAPP_FROM"); v != "" {
		cfg.Send.Twilio.WhatsAppFrom = v
	}
	if v := os.Getenv("DIALSHEET_SNS_REGION"); v != "" {
		cfg.Send.SNS.Region = v
	}
	if v := os.Getenv("DIALSHEET_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("DIALSHEET_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	return nil
}

func applyFlags(cfg *Config, flags map[string]string) {
	if flags == nil {
		return
	}
	if v, ok := flags["default-country"]; ok && v != "" {
		cfg.Clean.DefaultCountryCode = v
	}
	if v, ok := flags["mx-mobile-one"]; ok && v != "" {
		cfg.Clean.MXMobileOne = v == "true" || v == "1"
	}
	if v, ok := flags["channel"]; ok && v != "" {
		cfg.Clean.Channel = v
	}
	if v, ok := flags["provider"]; ok && v != "" {
		cfg.Send.Provider = v
	}
	if v, ok := flags["delay"]; ok && v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.Send.DelayMS = ms
		}
	}
	if v, ok := flags["validate"]; ok && v != "" {
		cfg.Send.Validate = v == "true" || v == "1"
	}
	if v, ok := flags["allow-country"]; ok && v != "" {
		cfg.Send.AllowedCountries = strings.Split(v, ",")
	}
	if v, ok := flags["body"]; ok && v != "" {
		cfg.Send.SMSBody = v
	}
	if v, ok := flags["template"]; ok && v != "" {
		cfg.Send.WhatsAppTemplate = v
	}
}

// validKeys is the complete set of dot-separated config keys.
var validKeys = map[string]bool{
	"clean.default_country_code": true, "clean.mx_mobile_one": true,
	"clean.mobile_labels": true, "clean.channel": true,
	"prepare.greeting_fallback": true, "prepare.sms_countries": true,
	"send.provider": true, "send.delay_ms": true, "send.validate": true,
	"send.allowed_countries": true, "send.sms_body": true, "send.whatsapp_template": true,
	"send.twilio.account_sid": true, "send.twilio.auth_token": true,
	"send.twilio.sms_from": true, "send.twilio.whatsapp_from": true,
	"send.twilio.base_url": true, "send.sns.region": true,
	"logging.level": true, "logging.format": true,
}

// IsValidKey returns true if the dotted key is a recognized config key.
func IsValidKey(key string) bool {
	return validKeys[key]
}

// GetValue returns the value for a dotted config key (e.g. "send.provider").
func GetValue(cfg *Config, key string) (any, error) {
	switch key {
	case "clean.default_country_code":
		return cfg.Clean.DefaultCountryCode, nil
	case "clean.mx_mobile_one":
		return cfg.Clean.MXMobileOne, nil
	case "clean.mobile_labels":
		return strings.Join(cfg.Clean.MobileLabels, ","), nil
	case "clean.channel":
		return cfg.Clean.Channel, nil
	case "prepare.greeting_fallback":
		return cfg.Prepare.GreetingFallback, nil
	case "prepare.sms_countries":
		return strings.Join(cfg.Prepare.SMSCountries, ","), nil
	case "send.provider":
		return cfg.Send.Provider, nil
	case "send.delay_ms":
		return cfg.Send.DelayMS, nil
	case "send.validate":
		return cfg.Send.Validate, nil
	case "send.allowed_countries":
		return strings.Join(cfg.Send.AllowedCountries, ","), nil
	case "send.sms_body":
		return cfg.Send.SMSBody, nil
	case "send.whatsapp_template":
		return cfg.Send.WhatsAppTemplate, nil
	case "send.twilio.account_sid":
		return cfg.Send.Twilio.AccountSID, nil
	case "send.twilio.auth_token":
		return cfg.Send.Twilio.AuthToken, nil
	case "send.twilio.sms_from":
		return cfg.Send.Twilio.SMSFrom, nil
	case "send.twilio.whatsapp_from":
		return cfg.Send.Twilio.WhatsAppFrom, nil
	case "send.twilio.base_url":
		return cfg.Send.Twilio.BaseURL, nil
	case "send.sns.region":
		return cfg.Send.SNS.Region, nil
	case "logging.level":
		return cfg.Logging.Level, nil
	case "logging.format":
		return cfg.Logging.Format, nil
	default:
		return nil, fmt.Errorf("unknown configuration key: %s", key)
	}
}

// SetValue reads the existing TOML file, updates a single key, and writes it
// back. Creates the file with just the key if it doesn't exist.
func SetValue(configPath, key, value string) error {
	// Read existing TOML as a generic map.
	var data map[string]any
	if raw, err := os.ReadFile(configPath); err == nil {
		if err := toml.Unmarshal(raw, &data); err != nil {
			return fmt.Errorf("parsing %s: %w", configPath, err)
		}
	}
	if data == nil {
		data = make(map[string]any)
	}

	// Walk the dotted key into nested tables, creating them as needed.
	// Twilio keys sit two tables deep (send.twilio.account_sid).
	parts := strings.Split(key, ".")
	if len(parts) < 2 {
		return fmt.Errorf("invalid key format: %s (expected section.field)", key)
	}
	m := data
	for _, section := range parts[:len(parts)-1] {
		child, ok := m[section].(map[string]any)
		if !ok {
			child = make(map[string]any)
			m[section] = child
		}
		m = child
	}
	m[parts[len(parts)-1]] = coerceValue(key, value)

	out, err := toml.Marshal(data)
	if err != nil {
		return fmt.Errorf("serializing config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	return os.WriteFile(configPath, out, 0o644)
}

// coerceValue converts a string value to the appropriate Go type for TOML
// serialization.
func coerceValue(key, value string) any {
	switch key {
	case "clean.mx_mobile_one", "send.validate":
		return value == "true" || value == "1"
	case "send.delay_ms":
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	case "clean.mobile_labels", "prepare.sms_countries", "send.allowed_countries":
		if value == "" {
			return []string{}
		}
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return value
}

const defaultTOML = `# Dialsheet configuration
#
# Credentials are read from the environment first. Put TWILIO_ACCOUNT_SID,
# TWILIO_AUTH_TOKEN, TWILIO_SMS_FROM and TWILIO_WHATSAPP_FROM in a local
# .env file and dialsheet picks them up.

[clean]
# Country code assumed for bare 10-digit numbers.
default_country_code = "+1"

# Insert the legacy '1' after Mexico's 52 country code when a number has
# exactly 10 national digits. Some WhatsApp carrier setups still want the
# 521 form.
mx_mobile_one = false

# Label keywords that mark a phone column as a mobile number.
mobile_labels = ["mobile", "cell", "móvil", "movil"]

# Channel stamped on cleaned rows that don't already carry one.
channel = "WhatsApp"

[prepare]
# Greeting for contacts whose name yields no usable first name.
greeting_fallback = "amig@"

# Countries kept in the SMS list.
sms_countries = ["US", "MX"]

[send]
# Message provider: "log" (default, prints instead of sending), "twilio",
# "sns", or "capture".
provider = "log"

# Milliseconds to pause between sends, to avoid rate spikes.
delay_ms = 700

# Re-check every number with full libphonenumber validation before sending.
validate = false

# Restrict sends to these countries, e.g. ["US", "MX"]. Empty allows all.
allowed_countries = []

# SMS body. {name} is replaced with the greeting name.
sms_body = "Hi {name}! Can I send you the link? Reply STOP to opt out."

# WhatsApp body. {{name}} is replaced with the greeting name. The first
# message to a contact must match your approved template wording exactly.
whatsapp_template = "Hola {{name}}, ¿te puedo enviar el enlace?"

# Twilio settings (provider = "twilio"). Usually set via env instead:
# TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN, TWILIO_SMS_FROM, TWILIO_WHATSAPP_FROM.
# [send.twilio]
# account_sid = ""
# auth_token = ""
# sms_from = "+12145550123"
# whatsapp_from = "whatsapp:+14155238886"

# AWS SNS settings (provider = "sns", SMS only). An empty region falls back
# to the AWS SDK default chain (AWS_REGION, shared profile).
# [send.sns]
# region = "us-east-1"

[logging]
# Log level: debug, info, warn, error.
level = "info"

# Log format: text or json.
format = "text"
`
