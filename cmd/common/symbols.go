// Package common holds helpers shared by the cuda-archs subcommands.
package common

const (
	CheckMark   = "\033[32m✔\033[0m"
	WarningSign = "\033[31m✘\033[0m"
)
