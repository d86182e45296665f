package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)
}

// Get returns the shared application logger.
func Get() *logrus.Logger {
	return log
}

// Configure sets the formatter and level from the application environment.
// Production logs JSON; everything else keeps the readable text formatter.
func Configure(env, level string) {
	if env == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if parsed, err := logrus.ParseLevel(level); err == nil {
		log.SetLevel(parsed)
	}
}

// WithModule returns an entry tagged with the originating module, so service
// errors can be traced back without grepping messages.
func WithModule(module string) *logrus.Entry {
	return log.WithField("module", module)
}
