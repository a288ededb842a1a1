package logger

import (
	"encoding/json"
	"io"
	"os"

	logging "github.com/op/go-logging"
)

// Logger define a interface para logging estruturado.
// A aplicação (Handler, Service, Repository) deve depender apenas desta interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error)
	Fatal(msg string, err error)
}

const module = "bistroboss"

var format = logging.MustStringFormatter(
	`%{time:2006-01-02T15:04:05.000Z07:00} [%{level:.4s}] %{shortfile} %{message}`,
)

// LevelLogger implementa Logger sobre o backend nivelado do go-logging.
type LevelLogger struct {
	log *logging.Logger
}

// NewLogger cria um Logger que escreve no stderr.
// Níveis aceitos: debug, info, notice, warning, error, critical (padrão: info).
func NewLogger(level string) Logger {
	return NewLoggerTo(os.Stderr, level)
}

// NewLoggerTo cria um Logger que escreve no writer informado.
func NewLoggerTo(w io.Writer, level string) Logger {
	backend := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)

	lvl, err := logging.LogLevel(level)
	if err != nil {
		lvl = logging.INFO
	}
	leveled.SetLevel(lvl, module)

	l := logging.MustGetLogger(module)
	l.SetBackend(leveled)
	// Um frame extra por causa dos métodos wrapper abaixo (para o %{shortfile}).
	l.ExtraCalldepth = 1

	return &LevelLogger{log: l}
}

// withFields concatena os campos como objeto JSON após a mensagem.
func withFields(msg string, fields map[string]interface{}) string {
	if len(fields) == 0 {
		return msg
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return msg
	}
	return msg + " " + string(b)
}

func (l *LevelLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug(withFields(msg, fields))
}

func (l *LevelLogger) Info(msg string, fields map[string]interface{}) {
	l.log.Info(withFields(msg, fields))
}

func (l *LevelLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warning(withFields(msg, fields))
}

func (l *LevelLogger) Error(msg string, err error) {
	if err != nil {
		l.log.Error(withFields(msg, map[string]interface{}{"error": err.Error()}))
		return
	}
	l.log.Error(msg)
}

// Fatal registra o erro e encerra o processo.
func (l *LevelLogger) Fatal(msg string, err error) {
	if err != nil {
		msg = withFields(msg, map[string]interface{}{"error": err.Error()})
	}
	l.log.Critical(msg)
	os.Exit(1)
}
