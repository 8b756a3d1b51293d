// export_test.go exposes the error formatting internals for white-box tests.
package logger

var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)
