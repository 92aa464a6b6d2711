// cmd/pnator/main.go
package main

import (
	"pnator/internal/app"
	"pnator/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
