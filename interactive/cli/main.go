package main

import (
	"log"
	"os"

	"github.com/Trinoooo/teledir/logs"
)

func main() {
	wrapper := NewWrapper()
	err := wrapper.Run(os.Args)
	_ = logs.Logger.Sync()
	if err != nil {
		log.Fatal(err)
	}
}
