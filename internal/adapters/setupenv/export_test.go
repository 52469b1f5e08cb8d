package setupenv

// SetBaseEnv replaces the environment the interpreter starts from.
func (l *Loader) SetBaseEnv(env []string) {
	l.base = func() []string { return env }
}
