package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Logger пишет сообщения трёх уровней в файлы каталога и в stdout/stderr.
type Logger struct {
	infoLog    *log.Logger
	warningLog *log.Logger
	errorLog   *log.Logger
	files      []*os.File
	mu         sync.Mutex
}

// New создаёт каталог логов и открывает info.log, warning.log, error.log на дозапись.
func New(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory %s: %w", dir, err)
	}

	l := &Logger{}
	writers := make([]io.Writer, 0, 3)
	for _, name := range []string{"info.log", "warning.log", "error.log"} {
		f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			_ = l.Close()
			return nil, fmt.Errorf("open log file %s: %w", name, err)
		}
		l.files = append(l.files, f)
		writers = append(writers, f)
	}

	l.infoLog = log.New(io.MultiWriter(os.Stdout, writers[0]), "INFO    ", log.Ldate|log.Ltime|log.Lshortfile)
	l.warningLog = log.New(io.MultiWriter(os.Stdout, writers[1]), "WARNING ", log.Ldate|log.Ltime|log.Lshortfile)
	l.errorLog = log.New(io.MultiWriter(os.Stderr, writers[2]), "ERROR   ", log.Ldate|log.Ltime|log.Lshortfile)
	return l, nil
}

// Discard возвращает логгер без вывода, для тестов и CLI.
func Discard() *Logger {
	return &Logger{
		infoLog:    log.New(io.Discard, "", 0),
		warningLog: log.New(io.Discard, "", 0),
		errorLog:   log.New(io.Discard, "", 0),
	}
}

func (l *Logger) Info(format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.infoLog.Output(2, fmt.Sprintf(format, v...))
}

func (l *Logger) Warning(format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.warningLog.Output(2, fmt.Sprintf(format, v...))
}

func (l *Logger) Error(format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.errorLog.Output(2, fmt.Sprintf(format, v...))
}

// Close закрывает файлы логов.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var firstErr error
	for _, f := range l.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	l.files = nil
	return firstErr
}
