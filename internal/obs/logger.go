package obs

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"time"
)

// Logger writes one JSON object per line to stdout.
type Logger struct {
	l *log.Logger
}

func NewLogger() *Logger {
	return NewLoggerWithWriter(os.Stdout)
}

// NewLoggerWithWriter directs output to w instead of stdout.
func NewLoggerWithWriter(w io.Writer) *Logger {
	return &Logger{
		l: log.New(w, "", 0),
	}
}

func (lg *Logger) Info(msg string, fields map[string]any) {
	lg.write("info", msg, fields)
}

func (lg *Logger) Warn(msg string, fields map[string]any) {
	lg.write("warn", msg, fields)
}

func (lg *Logger) Error(msg string, fields map[string]any) {
	lg.write("error", msg, fields)
}

func (lg *Logger) write(level, msg string, fields map[string]any) {
	if fields == nil {
		fields = make(map[string]any, 3)
	}
	fields["level"] = level
	fields["msg"] = msg
	fields["ts"] = time.Now().UTC().Format(time.RFC3339Nano)

	b, _ := json.Marshal(fields)
	lg.l.Println(string(b))
}
