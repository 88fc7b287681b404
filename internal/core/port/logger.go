package port

// Fields - структурированные данные для записи в лог.
type Fields map[string]interface{}

// LoggerPort - контракт логирования, ядро не знает о конкретной реализации.
type LoggerPort interface {
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	// Error записывает ошибку вместе с объектом error (может быть nil).
	Error(msg string, err error, fields Fields)
	Debug(msg string, fields Fields)

	// WithFields возвращает логгер с добавленными полями (trace_id, component и т.п.).
	WithFields(fields Fields) LoggerPort
}
