package command

const (
	exitCodeSuccess      = 0
	exitCodeError        = 1
	exitCodeConfigError  = 2
	exitCodeAlreadyExist = 3
	exitCodeNotExist     = 4
	exitCodeInterrupted  = 130
)
