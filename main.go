package main

import (
	"flag"

	"innovision/internal/server"
)

func main() {
	flag.Parse()

	server.Start()
}
