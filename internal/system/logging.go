package system

// Logger matches the component-tagged logger used across the app.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

func SetGraphicsModeWithLog(l Logger) error {
	return withLog(l, SetGraphicsMode(), "KD_GRAPHICS set", "KD_GRAPHICS failed")
}

func RestoreTextModeWithLog(l Logger) error {
	return withLog(l, RestoreTextMode(), "KD_TEXT set", "KD_TEXT failed")
}

func HideCursorWithLog(l Logger) error {
	return withLog(l, HideCursor(), "cursor hidden", "hide cursor failed")
}

func ShowCursorWithLog(l Logger) error {
	return withLog(l, ShowCursor(), "cursor shown", "show cursor failed")
}

func withLog(l Logger, err error, ok, failed string) error {
	if l == nil {
		return err
	}
	if err != nil {
		l.Errorf("tty", "%s: %v", failed, err)
	} else {
		l.Infof("tty", "%s", ok)
	}
	return err
}
