package main

import (
	"os"

	"nodeBoard/cmd/app"
)

func main() {
	os.Exit(app.Execute())
}
