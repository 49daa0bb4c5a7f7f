package main

import (
	"flag"
	"log"

	"github.com/sleepstars/modelkit/internal/mockapi"
)

func main() {
	port := flag.String("port", "8001", "Port to run the server on")
	apiKey := flag.String("api-key", "", "Bearer token required from clients (empty disables auth)")
	flag.Parse()

	r := mockapi.NewRouter(*apiKey)
	if err := r.Run(":" + *port); err != nil {
		log.Fatal(err)
	}
}
