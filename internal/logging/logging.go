package logging

import (
	"sync"

	"github.com/citygarden/community-task-api/internal/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger = logrus.New()
var once sync.Once

// Init configures the shared logger. Output goes to stdout unless LOG_FILE is
// set, in which case it is rotated with lumberjack.
func Init(cfg *config.Config) {
	once.Do(func() {
		Logger.SetFormatter(&logrus.JSONFormatter{})

		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			level = logrus.InfoLevel
		}
		Logger.SetLevel(level)

		if cfg.LogFile != "" {
			Logger.SetOutput(&lumberjack.Logger{
				Filename:   cfg.LogFile,
				MaxSize:    10, // megabytes
				MaxBackups: 3,
				MaxAge:     28, // days
				Compress:   true,
			})
		}
	})
}
