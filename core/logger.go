package core

// Logger is any service that can log app messages.
// args may contain errors, maps of extra data or the User the message relates to.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Person identifies the user a log message relates to.
type Person struct {
	ID    string
	Name  string
	Email string
}
