// Command token signs a bearer token for local development. Tokens are never
// issued over the API.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"jobly/internal/security"
)

func main() {
	_ = godotenv.Load()

	username := flag.StringP("username", "u", "", "username placed in the token subject")
	admin := flag.BoolP("admin", "a", false, "grant administrator rights")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime, 0 for no expiry")
	secret := flag.String("secret", os.Getenv("JWT_SECRET"), "signing secret (defaults to $JWT_SECRET)")
	flag.Parse()

	if *username == "" {
		fmt.Fprintln(os.Stderr, "token: --username is required")
		flag.Usage()
		os.Exit(2)
	}
	if *secret == "" {
		fmt.Fprintln(os.Stderr, "token: --secret or JWT_SECRET is required")
		os.Exit(2)
	}

	token, err := security.NewJWTProvider(*secret).Generate(*username, *admin, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
