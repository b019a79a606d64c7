// Package logging настраивает глобальный zerolog-логгер приложения.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// FileName - имя файла журнала рядом с бинарником.
const FileName = "ime-indicator.log"

const timeFormat = "15:04:05"

// Setup направляет глобальный логгер в консоль и, если file не nil, в файл.
// Сборка с -H=windowsgui не имеет консоли, поэтому журнал в файле нужен всегда.
func Setup(level string, console io.Writer, file io.Writer) {
	zerolog.SetGlobalLevel(ParseLevel(level))

	var writers []io.Writer
	if console != nil {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        console,
			TimeFormat: timeFormat,
		})
	}
	if file != nil {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        file,
			TimeFormat: timeFormat,
			NoColor:    true,
		})
	}

	var out io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		out = writers[0]
	default:
		out = zerolog.MultiLevelWriter(writers...)
	}

	log.Logger = zerolog.New(out).
		With().
		Timestamp().
		Caller().
		Logger()
}

// OpenFile открывает (дописывает) журнал в каталоге dir.
func OpenFile(dir string) (*os.File, error) {
	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// ParseLevel разбирает уровень журнала; неизвестное значение даёт info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
