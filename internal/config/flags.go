package config

import (
	"flag"
	"os"
	"time"

	"github.com/ebogdanov/userstore/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-f string   users record store file (e.g., "users.json")
//	-s string   session token file (e.g., "session.dat")
//	-k string   session token HMAC secret key
//	-t int      session token validity, hours (0 = never expires)
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-f", "-s", "-k", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.UsersFile, "f", config.UsersFile, "users record store file")
	fs.StringVar(&config.SessionFile, "s", config.SessionFile, "session token file")
	fs.StringVar(&config.SecretKey, "k", config.SecretKey, "session token secret key")

	sessionValidity := fs.Int("t", int(config.SessionValidity.Hours()), "session_validity (in hours, 0 = never expires)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionValidity = time.Duration(*sessionValidity) * time.Hour
}
