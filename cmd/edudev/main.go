package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"eduproject/internal/devserver"
)

func main() {
	addr := flag.String("addr", ":5000", "listen address")
	secret := flag.String("secret", "dev-secret", "jwt signing secret")
	flag.Parse()

	srv := devserver.New(*secret)

	fmt.Printf("eduproject dev backend on %s\n", *addr)
	fmt.Println("fixture accounts:")
	fmt.Println("  guide@edu.test / guide123")
	fmt.Println("  asha@edu.test  / student123")
	fmt.Println("  ravi@edu.test  / student123")
	fmt.Println("point the client at it with EDU_BASE_URL=http://localhost:5000")

	log.Fatal(http.ListenAndServe(*addr, srv.Router()))
}
