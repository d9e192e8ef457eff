// cmd/coilscan/main.go
package main

import (
	"coilscan/internal/app"
	"coilscan/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
