package logger

import (
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// New создает slog-логгер с цветным выводом tint
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
		NoColor:    w != os.Stdout && w != os.Stderr,
	}))
}

// Setup устанавливает логгер по умолчанию. Вызовы log.Printf после этого
// проходят через тот же обработчик.
func Setup(debug bool) *slog.Logger {
	l := New(os.Stdout, debug)
	slog.SetDefault(l)
	log.SetFlags(0)
	return l
}
