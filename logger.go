package main

import (
	"io"

	"github.com/sirupsen/logrus"
)

func newLogger(out io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.Out = out
	log.Formatter = &logrus.TextFormatter{
		FullTimestamp: true,
	}
	if verbose {
		log.Level = logrus.DebugLevel
	}
	return log
}
