package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/cache"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/config"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/pkg/authclient"
)

const usage = `usage: resortctl [flags] <command>

commands:
  register  create an account and sign in
  login     sign in with email and password
  logout    forget the stored session
  whoami    print the stored session

flags:
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	home, _ := os.UserHomeDir()

	fs := pflag.NewFlagSet("resortctl", pflag.ContinueOnError)
	apiURL := fs.String("api", envOr("RESORT_API_URL", "http://localhost:8080"), "API base URL")
	sessionPath := fs.String("session", filepath.Join(home, ".resortctl", "session.json"), "session file")
	redisAddr := fs.String("redis", envOr("RESORTCTL_REDIS_ADDR", ""), "keep the session in this redis instead of the session file")
	namespace := fs.String("namespace", "resortctl", "redis key prefix for the session (with --redis)")
	verbose := fs.BoolP("verbose", "v", false, "log client activity")
	username := fs.StringP("username", "u", "", "username (register)")
	email := fs.StringP("email", "e", "", "email (register, login)")
	password := fs.StringP("password", "p", "", "password (register, login)")
	role := fs.StringP("role", "r", authclient.RoleCustomer, "ADMIN or CUSTOMER (register)")
	mobile := fs.StringP("mobile", "m", "", "mobile number (register)")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected exactly one command")
	}

	log := zap.NewNop()
	if *verbose {
		var err error
		if log, err = zap.NewDevelopment(); err != nil {
			return fmt.Errorf("zap.NewDevelopment -> %w", err)
		}
		defer func() { _ = log.Sync() }()
	}

	storage, closeStorage := newStorage(*redisAddr, *namespace, *sessionPath)
	defer closeStorage()

	client := authclient.New(*apiURL, storage, authclient.WithLogger(log))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cmd := fs.Arg(0); cmd {
	case "register":
		session, err := client.Register(ctx, authclient.RegisterRequest{
			Username:     *username,
			Password:     *password,
			UserRole:     *role,
			Email:        *email,
			MobileNumber: *mobile,
		})
		if err != nil {
			return err
		}
		fmt.Printf("registered %s as %s\n", *email, session.Role)

	case "login":
		session, err := client.Login(ctx, *email, *password)
		if err != nil {
			return err
		}
		fmt.Printf("logged in as %s\n", session.Role)

	case "logout":
		client.Logout()
		fmt.Println("logged out")

	case "whoami":
		if !client.IsAuthenticated() {
			fmt.Println("not logged in")
			return nil
		}

		claimed := "unknown"
		switch {
		case client.IsAdmin():
			claimed = authclient.RoleAdmin
		case client.IsCustomer():
			claimed = authclient.RoleCustomer
		}

		user := "?"
		if id := client.State().CurrentUser(); id != nil {
			user = *id
		}
		fmt.Printf("user %s (%s) role %s\n", user, client.CustomerName(), claimed)

	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}

	return nil
}

// newStorage picks redis when an address is given and the session file
// otherwise. The returned func releases the redis connection.
func newStorage(redisAddr, namespace, sessionPath string) (authclient.Storage, func()) {
	if redisAddr == "" {
		return authclient.NewFileStorage(sessionPath), func() {}
	}

	rdb := cache.NewRedisClient(&config.RedisConfig{Addr: redisAddr})

	return authclient.NewRedisStorage(rdb, namespace), func() { _ = rdb.Close() }
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
