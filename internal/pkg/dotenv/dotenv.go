package dotenv

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// overrides флаг командной строки -> переменная окружения, которую он перекрывает.
var overrides = []struct {
	flag  string
	env   string
	usage string
}{
	{flag: "port", env: "PORT", usage: "HTTP port of the API"},
	{flag: "grpc-port", env: "GRPC_PORT", usage: "gRPC health port of the API"},
	{flag: "health-port", env: "KAFKA_HTTP_HEALTHCHECK_PORT", usage: "healthcheck port of the history worker"},
	{flag: "group", env: "WATCHER_GROUP", usage: "status group watched by the watcher"},
}

// Load подгружает files (по умолчанию .env), если они есть. Отсутствие файла
// не ошибка: в контейнере переменные приходят из окружения.
// Возвращает файлы, которые реально были прочитаны.
func Load(files ...string) ([]string, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	loaded := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return loaded, fmt.Errorf("load %s: %w", file, err)
		}
		loaded = append(loaded, file)
	}
	return loaded, nil
}

// ApplyFlags разбирает args и перекрывает окружение непустыми флагами.
func ApplyFlags(args []string) error {
	fs := flag.NewFlagSet("dispatch", flag.ContinueOnError)

	values := make([]*string, len(overrides))
	for i, o := range overrides {
		values[i] = fs.String(o.flag, "", fmt.Sprintf("%s (overrides %s)", o.usage, o.env))
	}

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	for i, o := range overrides {
		if *values[i] == "" {
			continue
		}
		if err := os.Setenv(o.env, *values[i]); err != nil {
			return fmt.Errorf("failed to set %s environment variable: %w", o.env, err)
		}
	}
	return nil
}
