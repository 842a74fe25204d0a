package main

import "scorch/internal/app"

func main() {
	app.Run()
}
