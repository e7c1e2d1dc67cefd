/*
Package datasource contains the data sources sqltask tasks run against.
A datasource owns driver configuration and hands out connections; tasks never hold on to one
beyond a single call.
*/
package datasource

// Logger is the logging surface datasources write statement logs and failures to.
type Logger interface {
	Debug(args ...any)
	Debugf(format string, args ...any)
	Info(args ...any)
	Infof(format string, args ...any)
	Logf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
	Warnf(format string, args ...any)
}
