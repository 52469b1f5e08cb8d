package domain

import "strings"

// Command is an external process invocation.
type Command struct {
	// Name is the executable, resolved against PATH of Env when relative.
	Name string

	// Args are the arguments passed to the executable.
	Args []string

	// Env holds "KEY=VALUE" entries layered over the process environment.
	Env []string

	// Dir is the working directory. Empty means the current directory.
	Dir string
}

// String renders the command line for logs.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}
