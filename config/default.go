package config

import (
	"time"

	"github.com/albashop/alba/crypto"
)

// NewDefaultConfig creates a new Config with sensible defaults.
// All secret values are randomly generated.
func NewDefaultConfig() *Config {
	return &Config{
		DBFile:        "alba.db",
		PublicBaseURL: "http://localhost:8080",
		Jwt: Jwt{
			AccessSecret:             crypto.RandomString(32, crypto.AlphanumericAlphabet),
			AccessTokenDuration:      Duration{Duration: 8 * time.Hour},
			RefreshSecret:            crypto.RandomString(32, crypto.AlphanumericAlphabet),
			RefreshTokenDuration:     Duration{Duration: 7 * 24 * time.Hour},
			CodeSecret:               crypto.RandomString(32, crypto.AlphanumericAlphabet),
			CodeDuration:             Duration{Duration: 5 * time.Minute},
			VerificationLinkDuration: Duration{Duration: 24 * time.Hour},
		},
		Server: Server{
			Addr:                    ":8080",
			ShutdownGracefulTimeout: Duration{Duration: 15 * time.Second},
			ReadTimeout:             Duration{Duration: 2 * time.Second},
			ReadHeaderTimeout:       Duration{Duration: 2 * time.Second},
			WriteTimeout:            Duration{Duration: 3 * time.Second},
			IdleTimeout:             Duration{Duration: 1 * time.Minute},
			ClientIpProxyHeader:     "",
			EnableTLS:               false,
			CertData:                "",
			KeyData:                 "",
		},
		Smtp: Smtp{
			Enabled:     false,
			Host:        "localhost",
			Port:        587,
			FromName:    "Alba Shop",
			FromAddress: "",
			LocalName:   "",
			AuthMethod:  "plain",
			UseTLS:      false,
			UseStartTLS: true,
			Username:    "",
			Password:    "",
		},
		Scheduler: Scheduler{
			Interval:              Duration{Duration: 60 * time.Second},
			MaxJobsPerTick:        10,
			ConcurrencyMultiplier: 2,
		},
		RateLimits: RateLimits{
			VerificationCodeCooldown:   Duration{Duration: 1 * time.Minute},
			ForgotPasswordCodeCooldown: Duration{Duration: 1 * time.Minute},
		},
		BlockIp: BlockIp{
			Enabled:   true,
			Activated: true,
		},
		Assets: Assets{
			Enabled:         false,
			Bucket:          "",
			Region:          "us-east-1",
			Endpoint:        "",
			AccessKeyID:     "",
			SecretAccessKey: "",
			PublicBaseURL:   "",
		},
		Endpoints: Endpoints{
			Register:                 "POST /auth/register",
			Login:                    "POST /auth/login",
			RefreshToken:             "POST /auth/refresh-token",
			SignOut:                  "POST /auth/sign-out",
			SendVerificationCode:     "PATCH /auth/send-verification-code",
			VerifyVerificationCode:   "PATCH /auth/verify-verification-code",
			VerifyEmailLink:          "GET /auth/verify-email",
			ChangePassword:           "PATCH /auth/change-password",
			SendForgotPasswordCode:   "PATCH /auth/send-forgot-password-code",
			VerifyForgotPasswordCode: "PATCH /auth/verify-forgot-password-code",
			UpdateProfile:            "PATCH /auth/update-profile",
			UpdateRole:               "PATCH /auth/update-role",
		},
	}
}
