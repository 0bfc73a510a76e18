package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port         int
	BackendURL   string
	DatabaseURL  string
	DatabaseType string
	StateFile    string
	Passcode     string
	TurnHours    int
}

// Embedded reports whether the server runs its own game backend instead of
// calling a remote one.
func (c Config) Embedded() bool {
	return c.BackendURL == ""
}

// ParseFlags validates flags and sets defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("mapso", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.BackendURL, "b", "", "Remote backend URL (empty runs the embedded backend)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (embedded backend)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.StateFile, "s", "", "World state document path")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.Passcode, "passcode", "", "Game passcode (prefer env)")
	fs.IntVar(&cfg.TurnHours, "turn-hours", 0, "Hours a new turn stays open")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3414 // default
		}
	}

	if cfg.BackendURL == "" {
		cfg.BackendURL = os.Getenv("BACKEND_URL")
	}

	if cfg.StateFile == "" {
		cfg.StateFile = os.Getenv("STATE_FILE")
	}
	if cfg.StateFile == "" {
		return Config{}, errors.New("world state file required (use -s or STATE_FILE env)")
	}

	if cfg.TurnHours == 0 {
		if hoursStr := os.Getenv("TURN_HOURS"); hoursStr != "" {
			hours, err := strconv.Atoi(hoursStr)
			if err != nil {
				return Config{}, errors.New("invalid TURN_HOURS env variable")
			}
			cfg.TurnHours = hours
		} else {
			cfg.TurnHours = 72
		}
	}
	if cfg.TurnHours < 0 {
		return Config{}, errors.New("TURN_HOURS must be positive")
	}

	// Embedded backend needs storage and the shared passcode
	if cfg.Embedded() {
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		}
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}

		if cfg.DatabaseType == "" {
			cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
			if cfg.DatabaseType == "" {
				cfg.DatabaseType = "sqlite"
			}
		}

		if cfg.Passcode == "" {
			cfg.Passcode = os.Getenv("GAME_PASSCODE")
		}
		if cfg.Passcode == "" {
			return Config{}, errors.New("GAME_PASSCODE required")
		}
	}

	return cfg, nil
}
