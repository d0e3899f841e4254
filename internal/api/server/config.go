package server

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/DjordjeVuckovic/storefront/pkg/stringsutil"
)

type Config struct {
	Port        string
	UseHttp2    bool
	CorsOrigins []string
}

// LoadConfig reads server settings from the environment; the .env file is
// loaded by the caller.
func LoadConfig() (*Config, error) {
	useHttp2Str := os.Getenv("USE_HTTP2")
	useHttp2 := useHttp2Str == "true"

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := validatePort(port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	origins := stringsutil.SplitAndTrim(os.Getenv("CORS_ORIGINS"), ",")
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return &Config{
		Port:        port,
		UseHttp2:    useHttp2,
		CorsOrigins: origins,
	}, nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)

	if err != nil {
		return errors.New("port must be a number")
	}

	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}
