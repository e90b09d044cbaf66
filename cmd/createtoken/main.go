package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"tempora.com/tempora/security"
)

func main() {
	employeeID := flag.Int("employee", 0, "employee id to mint a token for")
	code := flag.String("code", "", "employee code")
	expires := flag.Int64("expires", 3600, "token lifetime in seconds")
	flag.Parse()

	if *employeeID <= 0 {
		log.Fatal("-employee is required")
	}

	secret := os.Getenv("TEMPORA_SIGNING_SECRET")
	if secret == "" {
		log.Fatal("TEMPORA_SIGNING_SECRET is not set")
	}

	token, err := security.CreateIdentityToken(&security.Identity{
		EmployeeID: int32(*employeeID),
		Code:       *code,
	}, secret, *expires)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(token)
}
