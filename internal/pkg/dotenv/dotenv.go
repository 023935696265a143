package dotenv

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const defaultFile = ".env"

// Override - флаг командной строки, который перекрывает переменную окружения.
type Override struct {
	Flag  string
	Env   string
	Usage string
}

// PortOverride - флаг -port для HTTP сервиса.
var PortOverride = Override{
	Flag:  "port",
	Env:   "PORT",
	Usage: "Server port (overrides PORT environment variable)",
}

// HealthcheckPortOverride - флаг -healthcheck-port для воркера.
var HealthcheckPortOverride = Override{
	Flag:  "healthcheck-port",
	Env:   "WORKER_HTTP_HEALTHCHECK_PORT",
	Usage: "Worker healthcheck port (overrides WORKER_HTTP_HEALTHCHECK_PORT environment variable)",
}

// Load подмешивает .env в окружение процесса и применяет флаги.
// Уже заданные переменные окружения .env не перетирает, флаги перетирают всё.
func Load(overrides ...Override) error {
	return load(defaultFile, os.Args[1:], overrides)
}

func load(path string, args []string, overrides []Override) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("pickup", flag.ContinueOnError)
	values := make([]*string, len(overrides))
	for i, o := range overrides {
		values[i] = fs.String(o.Flag, "", o.Usage)
	}
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	for i, o := range overrides {
		if *values[i] == "" {
			continue
		}
		if err := os.Setenv(o.Env, *values[i]); err != nil {
			return fmt.Errorf("failed to set %s environment variable: %w", o.Env, err)
		}
	}
	return nil
}
