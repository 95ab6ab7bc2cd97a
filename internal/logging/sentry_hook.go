package logging

import (
	"github.com/getsentry/sentry-go"
	sentrylogrus "github.com/getsentry/sentry-go/logrus"
	"github.com/sirupsen/logrus"
)

var sentryLevels = []logrus.Level{
	logrus.PanicLevel,
	logrus.FatalLevel,
	logrus.ErrorLevel,
}

// newSentryHook forwards error and worse entries to Sentry. Entry fields end
// up as event extras, a logged error as the event exception.
func newSentryHook(client *sentry.Client) *sentrylogrus.Hook {
	return sentrylogrus.NewFromClient(sentryLevels, client)
}
