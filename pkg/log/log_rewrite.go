package log

// Package-level helpers over the global sugared logger.

func Info(args ...any) {
	sugar.Info(args...)
}

func Infof(format string, args ...any) {
	sugar.Infof(format, args...)
}

func Infow(msg string, keysAndValues ...any) {
	sugar.Infow(msg, keysAndValues...)
}

func Debug(args ...any) {
	sugar.Debug(args...)
}

func Debugf(format string, args ...any) {
	sugar.Debugf(format, args...)
}

func Debugw(msg string, keysAndValues ...any) {
	sugar.Debugw(msg, keysAndValues...)
}

func Warn(args ...any) {
	sugar.Warn(args...)
}

func Warnf(format string, args ...any) {
	sugar.Warnf(format, args...)
}

func Warnw(msg string, keysAndValues ...any) {
	sugar.Warnw(msg, keysAndValues...)
}

func Error(args ...any) {
	sugar.Error(args...)
}

func Errorf(format string, args ...any) {
	sugar.Errorf(format, args...)
}

func Errorw(msg string, keysAndValues ...any) {
	sugar.Errorw(msg, keysAndValues...)
}

func Fatal(args ...any) {
	sugar.Fatal(args...)
}

func Fatalf(format string, args ...any) {
	sugar.Fatalf(format, args...)
}
