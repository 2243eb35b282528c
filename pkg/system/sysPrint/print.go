package sysPrint

import (
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	SYSTEM = "[SYSTEM]:"
	ERROR  = "[ERROR]:"
	FATAL  = "[FATAL]"
)

var (
	ErrUnknownCommand     = ErrorMsg("Unknown command error.")
	ErrWrongNumberArgs    = ErrorMsg("wrong number of arguments")
	ErrInvalidDictionary  = ErrorMsg("Dictionary word invalid, words must only contain lowercase letters a-z.")
	ErrInvalidQueryBuffer = ErrorMsg("Query buffer size must be positive.")
	ErrQueryTooLong       = ErrorMsg("query exceeds query-buffer-size, command discarded")
)

const (
	timeFormat   = "2006-01-02 15:04:05.000"
	defaultLevel = zerolog.InfoLevel
)

var (
	mu      sync.Mutex
	logFile *os.File
	console = newConsole(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: timeFormat})
	fileLog = zerolog.Nop()
)

// newConsole Init 之前使用 info 级别，debug 信息不输出
func newConsole(w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(defaultLevel).With().Timestamp().Logger()
}

// Init 打开日志文件（追加模式），path 为空时只输出到控制台
func Init(path string, level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = defaultLevel
	}
	mu.Lock()
	defer mu.Unlock()
	console = console.Level(lvl)
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return errors.Wrap(err, "open log file")
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	fileLog = zerolog.New(f).Level(lvl).With().Timestamp().Logger()
	return nil
}

// SetOutput 替换控制台输出，主要用于测试
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	console = console.Output(zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: timeFormat})
}

func ErrorMsg(msg string) error {
	return errors.New(ERROR + msg)
}

func PrintlnErrorMsg(msg string) {
	mu.Lock()
	defer mu.Unlock()
	console.Error().Msg(ERROR + msg)
}

func PrintlnAndLogWriteErrorMsg(msg string) {
	mu.Lock()
	defer mu.Unlock()
	console.Error().Msg(ERROR + msg)
	fileLog.Error().Msg(ERROR + msg)
}

func LogWriteErrorMsg(msg string) {
	mu.Lock()
	defer mu.Unlock()
	fileLog.Error().Msg(ERROR + msg)
}

func SystemMsg(msg string) string {
	return SYSTEM + msg
}

func PrintlnSystemMsg(msg string) {
	mu.Lock()
	defer mu.Unlock()
	console.Info().Msg(SYSTEM + msg)
}

func PrintlnAndLogWriteSystemMsg(msg string) {
	mu.Lock()
	defer mu.Unlock()
	console.Info().Msg(SYSTEM + msg)
	fileLog.Info().Msg(SYSTEM + msg)
}

func LogWriteSystemMsg(msg string) {
	mu.Lock()
	defer mu.Unlock()
	fileLog.Info().Msg(SYSTEM + msg)
}

// PrintlnDebugMsg 调试信息，只有 log-level 为 debug 时输出
func PrintlnDebugMsg(msg string) {
	mu.Lock()
	defer mu.Unlock()
	console.Debug().Msg(SYSTEM + msg)
	fileLog.Debug().Msg(SYSTEM + msg)
}

func FatalMsg(msg string) string {
	return FATAL + msg
}

// PrintlnAndLogWriteFatalMsg 输出并写入日志后退出进程
func PrintlnAndLogWriteFatalMsg(msg string) {
	mu.Lock()
	fileLog.WithLevel(zerolog.FatalLevel).Msg(FATAL + msg)
	console.WithLevel(zerolog.FatalLevel).Msg(FATAL + msg)
	if logFile != nil {
		logFile.Sync()
	}
	mu.Unlock()
	os.Exit(1)
}

func LogClose() {
	LogWriteSystemMsg("log close...")
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	fileLog = zerolog.Nop()
}
