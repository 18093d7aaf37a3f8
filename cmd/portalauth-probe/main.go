// portalauth-probe performs a single login or password-reset round trip
// against a portal backend and prints the resulting classification, stored
// session, and engine metrics. It exists to diagnose backend connectivity and
// response-shape drift without a browser in the loop.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/alicebob/miniredis/v2"
	"github.com/joho/godotenv"
	"github.com/placement-sarthi/portalauth"
	"github.com/redis/go-redis/v9"
)

type printRenderer struct {
	verbose bool
}

func (r *printRenderer) RenderText(slot portalauth.Slot, text string) {
	if r.verbose {
		fmt.Printf("render %-16s %s\n", slot, text)
	}
}

func (r *printRenderer) SetFieldRequired(field string, required bool) {
	if r.verbose {
		fmt.Printf("field  %-16s required=%v\n", field, required)
	}
}

func (r *printRenderer) ClearForm() {
	if r.verbose {
		fmt.Println("form   cleared")
	}
}

func (r *printRenderer) ShowMessage(kind portalauth.MessageKind, text string) {
	label := "ERROR"
	if kind == portalauth.MessageSuccess {
		label = "OK"
	}
	fmt.Printf("%s: %s\n", label, text)
}

func (r *printRenderer) HideMessage() {}

func main() {
	_ = godotenv.Load()

	var (
		baseURL   = flag.String("base-url", "", "portal backend base URL; PORTAL_BASE_URL used if empty")
		roleStr   = flag.String("role", "student", "role to authenticate as (student|admin|company)")
		userID    = flag.String("user", "", "user ID to submit")
		password  = flag.String("password", "", "password to submit")
		reset     = flag.Bool("reset", false, "request a password reset instead of logging in")
		redisAddr = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		verbose   = flag.Bool("v", false, "print every render call")
	)
	flag.Parse()

	base := *baseURL
	if base == "" {
		base = os.Getenv("PORTAL_BASE_URL")
	}
	if base == "" {
		fmt.Fprintln(os.Stderr, "base URL required (-base-url or PORTAL_BASE_URL)")
		os.Exit(2)
	}

	role := portalauth.Role(*roleStr)
	if !role.Valid() {
		fmt.Fprintf(os.Stderr, "unknown role %q\n", *roleStr)
		os.Exit(2)
	}

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		defer mr.Close()
		addr = mr.Addr()
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	sink := portalauth.NewJSONWriterSink(os.Stdout)
	engine, err := portalauth.New().
		WithBaseURL(base).
		WithRedis(rdb).
		WithRenderer(&printRenderer{verbose: *verbose}).
		WithEventSink(sink).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build failed: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	ctx := context.Background()
	engine.SelectRole(role)

	exit := 0
	if *reset {
		if err := engine.RequestPasswordReset(ctx, role, *userID); err != nil {
			exit = 1
		}
	} else {
		identity, err := engine.Login(ctx, role, portalauth.Credentials{
			UserID:   *userID,
			Password: *password,
		})
		if err != nil {
			exit = 1
		} else {
			fmt.Printf("identity: id=%s name=%q role=%s email=%s\n",
				identity.ID, identity.Name, identity.Role, identity.Email)
			fmt.Printf("dashboard: %s\n", portalauth.DashboardRoute(identity.Role))

			refreshed := engine.RefreshProfile(ctx, identity)
			fmt.Printf("profile sync: role data refreshed=%v\n", refreshed.Data != identity.Data)
		}
	}

	snap := engine.MetricsSnapshot()
	fmt.Printf("metrics: login ok=%d fail=%d sync ok=%d fallback=%d\n",
		snap.Counters[portalauth.MetricLoginSuccess],
		snap.Counters[portalauth.MetricLoginFailure],
		snap.Counters[portalauth.MetricProfileSyncSuccess],
		snap.Counters[portalauth.MetricProfileSyncFallback])

	os.Exit(exit)
}
