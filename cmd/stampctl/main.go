package main

import (
	"github.com/donutnomad/stampkit/internal/command"
)

func main() {
	command.Main("stampctl", "Manage timestamped notes", command.Commands()...)
}
