package i

// Logger is the leveled logger components report through.
type Logger interface {
	Info(string)
	Warning(string)
	Error(string)
}
