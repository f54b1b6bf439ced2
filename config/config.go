package config

import (
	"fmt"
	"time"
)

// Duration wraps time.Duration so TOML values like "8h" or "5m" parse into
// config fields.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the full application configuration. It is loaded once at boot
// and republished through a Provider so long-lived components always read
// the latest copy.
type Config struct {
	DBFile        string `toml:"db_file"`
	PublicBaseURL string `toml:"public_base_url"`

	Jwt        Jwt        `toml:"jwt"`
	Server     Server     `toml:"server"`
	Smtp       Smtp       `toml:"smtp"`
	Scheduler  Scheduler  `toml:"scheduler"`
	RateLimits RateLimits `toml:"rate_limits"`
	BlockIp    BlockIp    `toml:"block_ip"`
	Assets     Assets     `toml:"assets"`
	Endpoints  Endpoints  `toml:"endpoints"`
}

// Jwt holds the token and one-time code secrets. Access tokens carry
// identity claims, refresh tokens only the subject. The code secret keys
// the HMAC digests of emailed one-time codes.
type Jwt struct {
	AccessSecret         string   `toml:"access_secret"`
	AccessTokenDuration  Duration `toml:"access_token_duration"`
	RefreshSecret        string   `toml:"refresh_secret"`
	RefreshTokenDuration Duration `toml:"refresh_token_duration"`
	CodeSecret           string   `toml:"code_secret"`
	CodeDuration         Duration `toml:"code_duration"`
	// VerificationLinkDuration bounds the signed links sent after
	// registration. Links live longer than one-time codes.
	VerificationLinkDuration Duration `toml:"verification_link_duration"`
}

type Server struct {
	Addr                    string   `toml:"addr"`
	ShutdownGracefulTimeout Duration `toml:"shutdown_graceful_timeout"`
	ReadTimeout             Duration `toml:"read_timeout"`
	ReadHeaderTimeout       Duration `toml:"read_header_timeout"`
	WriteTimeout            Duration `toml:"write_timeout"`
	IdleTimeout             Duration `toml:"idle_timeout"`
	ClientIpProxyHeader     string   `toml:"client_ip_proxy_header"`
	EnableTLS               bool     `toml:"enable_tls"`
	CertData                string   `toml:"cert_data"`
	KeyData                 string   `toml:"key_data"`
}

type Smtp struct {
	Enabled     bool   `toml:"enabled"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	FromName    string `toml:"from_name"`
	FromAddress string `toml:"from_address"`
	LocalName   string `toml:"local_name"`
	AuthMethod  string `toml:"auth_method"`
	UseTLS      bool   `toml:"use_tls"`
	UseStartTLS bool   `toml:"use_start_tls"`
	Username    string `toml:"username"`
	Password    string `toml:"password"`
}

type Scheduler struct {
	Interval              Duration `toml:"interval"`
	MaxJobsPerTick        int      `toml:"max_jobs_per_tick"`
	ConcurrencyMultiplier int      `toml:"concurrency_multiplier"`
}

// RateLimits throttles the endpoints that send email. Cooldowns are
// enforced per user in an in-process cache.
type RateLimits struct {
	VerificationCodeCooldown   Duration `toml:"verification_code_cooldown"`
	ForgotPasswordCodeCooldown Duration `toml:"forgot_password_code_cooldown"`
}

type BlockIp struct {
	Enabled   bool `toml:"enabled"`
	Activated bool `toml:"activated"`
}

// Assets configures the S3 bucket avatars are uploaded to. With Enabled
// false profile updates keep whatever avatar URL the client sends.
type Assets struct {
	Enabled         bool   `toml:"enabled"`
	Bucket          string `toml:"bucket"`
	Region          string `toml:"region"`
	Endpoint        string `toml:"endpoint"`
	AccessKeyID     string `toml:"access_key_id"`
	SecretAccessKey string `toml:"secret_access_key"`
	PublicBaseURL   string `toml:"public_base_url"`
}

// Endpoints maps every operation to its "METHOD /path" route string.
type Endpoints struct {
	Register                 string `toml:"register"`
	Login                    string `toml:"login"`
	RefreshToken             string `toml:"refresh_token"`
	SignOut                  string `toml:"sign_out"`
	SendVerificationCode     string `toml:"send_verification_code"`
	VerifyVerificationCode   string `toml:"verify_verification_code"`
	VerifyEmailLink          string `toml:"verify_email_link"`
	ChangePassword           string `toml:"change_password"`
	SendForgotPasswordCode   string `toml:"send_forgot_password_code"`
	VerifyForgotPasswordCode string `toml:"verify_forgot_password_code"`
	UpdateProfile            string `toml:"update_profile"`
	UpdateRole               string `toml:"update_role"`
}
