package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Init configures the global logrus logger. Output is JSON so log
// collectors can index the structured fields handlers attach.
func Init(env string) {
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	if env == "development" {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
	logrus.Info("Logger initialized")
}
