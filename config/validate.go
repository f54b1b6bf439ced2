package config

import (
	"fmt"
	"net"

	"github.com/albashop/alba/crypto"
)

func Validate(cfg *Config) error {
	if err := validateServer(&cfg.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}
	if err := validateJwt(&cfg.Jwt); err != nil {
		return fmt.Errorf("jwt config validation failed: %w", err)
	}
	if err := validateSmtp(&cfg.Smtp); err != nil {
		return fmt.Errorf("smtp config validation failed: %w", err)
	}
	if err := validateAssets(&cfg.Assets); err != nil {
		return fmt.Errorf("assets config validation failed: %w", err)
	}
	return nil
}

// validateServer checks the Server configuration section.
// It ensures the Addr field is not empty and contains a valid host:port or
// :port format. If only a port is provided (e.g., ":8080"), the host
// defaults to "localhost".
func validateServer(server *Server) error {
	if server.Addr == "" {
		return fmt.Errorf("server address (Addr) cannot be empty")
	}

	host, port, err := net.SplitHostPort(server.Addr)
	if err != nil {
		return fmt.Errorf("invalid server address format '%s': %w", server.Addr, err)
	}
	// SplitHostPort accepts ":8080" with an empty host.
	if host == "" {
		host = "localhost"
	}

	if port == "" {
		return fmt.Errorf("server address '%s' must include a port", server.Addr)
	}

	server.Addr = net.JoinHostPort(host, port)

	if _, err := net.LookupPort("tcp", port); err != nil {
		return fmt.Errorf("invalid port '%s' in server address '%s': %w", port, server.Addr, err)
	}

	if server.EnableTLS && (server.CertData == "" || server.KeyData == "") {
		return fmt.Errorf("TLS is enabled but cert or key data is missing")
	}

	return nil
}

func validateJwt(jwt *Jwt) error {
	secrets := map[string]string{
		"access_secret":  jwt.AccessSecret,
		"refresh_secret": jwt.RefreshSecret,
		"code_secret":    jwt.CodeSecret,
	}
	for name, secret := range secrets {
		if len(secret) < crypto.MinSecretLength {
			return fmt.Errorf("%s must be at least %d characters", name, crypto.MinSecretLength)
		}
	}
	if jwt.AccessTokenDuration.Duration <= 0 {
		return fmt.Errorf("access_token_duration must be positive")
	}
	if jwt.RefreshTokenDuration.Duration <= 0 {
		return fmt.Errorf("refresh_token_duration must be positive")
	}
	if jwt.CodeDuration.Duration <= 0 {
		return fmt.Errorf("code_duration must be positive")
	}
	return nil
}

func validateSmtp(smtp *Smtp) error {
	if !smtp.Enabled {
		return nil
	}
	if smtp.Host == "" {
		return fmt.Errorf("smtp host cannot be empty when smtp is enabled")
	}
	if smtp.Port <= 0 || smtp.Port > 65535 {
		return fmt.Errorf("invalid smtp port %d", smtp.Port)
	}
	if smtp.FromAddress == "" {
		return fmt.Errorf("smtp from_address cannot be empty when smtp is enabled")
	}
	return nil
}

func validateAssets(assets *Assets) error {
	if !assets.Enabled {
		return nil
	}
	if assets.Bucket == "" {
		return fmt.Errorf("assets bucket cannot be empty when assets are enabled")
	}
	if assets.Region == "" {
		return fmt.Errorf("assets region cannot be empty when assets are enabled")
	}
	return nil
}
