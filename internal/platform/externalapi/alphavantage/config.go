// Package alphavantage provides a client for the Alpha Vantage GLOBAL_QUOTE endpoint.
package alphavantage

import (
	"os"
	"time"
)

const (
	// DefaultBaseURL is the Alpha Vantage query endpoint.
	DefaultBaseURL = "https://www.alphavantage.co/query"
	// FunctionGlobalQuote is the API function returning the latest price of one symbol.
	FunctionGlobalQuote = "GLOBAL_QUOTE"
	// DefaultTimeout bounds a single quote request.
	DefaultTimeout = 15 * time.Second
)

// Config holds configuration for the Alpha Vantage API client.
type Config struct {
	APIKey  string        // API key for authentication; empty means not configured
	BaseURL string        // Query endpoint (e.g., "https://www.alphavantage.co/query")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Alpha Vantage configuration from environment variables.
func LoadConfig() Config {
	baseURL := os.Getenv("ALPHAVANTAGE_BASE_URL")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Config{
		APIKey:  os.Getenv("ALPHAVANTAGE_API_KEY"),
		BaseURL: baseURL,
		Timeout: DefaultTimeout,
	}
}
