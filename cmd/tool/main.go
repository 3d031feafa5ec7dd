// Command tool prints bcrypt hashes and signed session tokens for local testing.
//
//	tool hash <password>
//	tool token <email> <role> [user-id]
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/baechuer/edusphere/internal/domain"
	"github.com/baechuer/edusphere/internal/infrastructure/security"
)

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Getenv, os.Stdout, os.Stderr))
}

func run(args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	switch args[0] {
	case "hash":
		if len(args) != 2 {
			usage(stderr)
			return 2
		}
		cost := 10
		if v := getenv("BCRYPT_COST"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				fmt.Fprintf(stderr, "invalid BCRYPT_COST: %v\n", err)
				return 1
			}
			cost = n
		}
		hash, err := security.NewBcryptHasher(cost).Hash(args[1])
		if err != nil {
			fmt.Fprintf(stderr, "hash: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, hash)
		return 0

	case "token":
		if len(args) < 3 || len(args) > 4 {
			usage(stderr)
			return 2
		}
		secret := getenv("JWT_SECRET")
		if secret == "" {
			fmt.Fprintln(stderr, "JWT_SECRET is not set")
			return 1
		}
		issuer := getenv("JWT_ISSUER")
		if issuer == "" {
			issuer = "edusphere"
		}

		email := strings.ToLower(strings.TrimSpace(args[1]))
		role := strings.ToUpper(args[2])
		if !domain.IsValidRole(role) {
			fmt.Fprintf(stderr, "unknown role %q\n", args[2])
			return 1
		}
		id := uuid.NewString()
		if len(args) == 4 {
			id = args[3]
		}

		tok, err := security.NewJWTSigner(secret, issuer).SignSessionToken(id, email, role, time.Hour)
		if err != nil {
			fmt.Fprintf(stderr, "sign: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, tok)
		return 0
	}

	usage(stderr)
	return 2
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: tool hash <password> | tool token <email> <role> [user-id]")
}
