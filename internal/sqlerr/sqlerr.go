// Package sqlerr classifies PostgreSQL driver errors.
//
// It maps SQLSTATE codes onto a small set of categories used for logging,
// for deciding whether a failure means the connection is gone, and for the
// fallback translation of unexpected driver errors into API errors.
package sqlerr

import "github.com/jackc/pgx/v5/pgconn"

// Code is a database-agnostic error category.
type Code string

const (
	Other                Code = "other"
	NotNullViolation     Code = "not_null_violation"
	ForeignKeyViolation  Code = "foreign_key_violation"
	UniqueViolation      Code = "unique_violation"
	CheckViolation       Code = "check_violation"
	ExclusionViolation   Code = "exclusion_violation"
	InvalidTextValue     Code = "invalid_text_representation"
	NumericOutOfRange    Code = "numeric_value_out_of_range"
	StringTooLong        Code = "string_data_right_truncation"
	UndefinedTable       Code = "undefined_table"
	UndefinedColumn      Code = "undefined_column"
	ConnectionException  Code = "connection_exception"
	AdminShutdown        Code = "admin_shutdown"
	QueryCanceled        Code = "query_canceled"
	SerializationFailure Code = "serialization_failure"
	DeadlockDetected     Code = "deadlock_detected"
)

// Severity mirrors the PostgreSQL message severity.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Error is a normalized driver error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	return string(e.Severity) + ": " + e.Message + " (SQLSTATE " + e.DatabaseCode + ")"
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a SQLSTATE onto a Code. Whole classes are matched where the
// individual condition does not matter to callers.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "23P01":
		return ExclusionViolation
	case "22P02":
		return InvalidTextValue
	case "22003":
		return NumericOutOfRange
	case "22001":
		return StringTooLong
	case "42P01":
		return UndefinedTable
	case "42703":
		return UndefinedColumn
	case "57P01", "57P02", "57P03":
		return AdminShutdown
	case "57014":
		return QueryCanceled
	case "40001":
		return SerializationFailure
	case "40P01":
		return DeadlockDetected
	}
	if len(sqlState) == 5 && sqlState[:2] == "08" {
		return ConnectionException
	}
	return Other
}

func MapSeverity(severity string) Severity {
	switch severity {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	case "WARNING":
		return SeverityWarning
	case "NOTICE":
		return SeverityNotice
	case "DEBUG":
		return SeverityDebug
	case "INFO":
		return SeverityInfo
	case "LOG":
		return SeverityLog
	default:
		return SeverityError
	}
}

// ConvertPgError converts a raw Postgres error into an Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}
