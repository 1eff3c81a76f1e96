package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldUser       = "user"
	FieldCollection = "collection"
	FieldKey        = "key"
	FieldBytes      = "bytes"
	FieldCount      = "count"
	FieldError      = "error"
	FieldErrorType  = "error_type"
	FieldOperation  = "operation"
	FieldBackend    = "backend"
	FieldRecordID   = "record_id"
	FieldYear       = "year"
	FieldMonth      = "month"
	FieldDuration   = "duration_ms"
	FieldCommand    = "command"
	FieldCommandID  = "command_id"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentStorage  = "storage"
	ComponentGateway  = "gateway"
	ComponentAuth     = "auth"
	ComponentSession  = "session"
	ComponentBackend  = "backend"
	ComponentCache    = "cache"
	ComponentCalendar = "calendar"
	ComponentCLI      = "cli"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpLoad     = "load"
	OpSave     = "save"
	OpEncode   = "encode"
	OpDecode   = "decode"
	OpLogin    = "login"
	OpLogout   = "logout"
	OpSwitch   = "switch"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation    = "validation_error"
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypePersistence   = "persistence_error"
	ErrorTypeSerialization = "serialization_error"
	ErrorTypeAuth          = "auth_error"
	ErrorTypeNotFound      = "not_found_error"
	ErrorTypeConflict      = "conflict_error"
	ErrorTypeInternal      = "internal_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithUser adds user field
func (f LogFields) WithUser(username string) LogFields {
	f[FieldUser] = username
	return f
}

// WithKey adds the storage key field
func (f LogFields) WithKey(key string) LogFields {
	f[FieldKey] = key
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithErrorType adds the error category field
func (f LogFields) WithErrorType(errorType string) LogFields {
	f[FieldErrorType] = errorType
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
