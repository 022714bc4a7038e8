package main

import (
	"os"

	"github.com/Deepakpottavatri06/CourseGen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
