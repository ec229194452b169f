package main

import (
	"os"

	"github.com/QuickFix-Booking/QuickFix-Booking/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
