// Package hooks runs a dependency's pre-install or pre-remove command list.
//
// Commands run one at a time through the configured shell. A command of the
// form "cd <dir>" is not passed to the shell; it moves the working directory
// used for the remaining commands of the list. The subboot process itself
// never changes directory. The first failing command aborts the list.
package hooks
