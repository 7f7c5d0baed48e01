package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"google.golang.org/grpc"

	"psi-agenda-api/internal/auth"
	gweb "psi-agenda-api/internal/grpcweb"
	"psi-agenda-api/internal/handler"
	"psi-agenda-api/internal/ics"
	"psi-agenda-api/internal/insight"
	"psi-agenda-api/internal/middleware"
	"psi-agenda-api/internal/rpc"
	"psi-agenda-api/internal/schedule"
	"psi-agenda-api/internal/store"
)

// repository is what the backends must provide: the scheduling store plus
// refresh-token persistence for the auth handlers.
type repository interface {
	schedule.Repository
	handler.TokenStore
}

func main() {
	_ = godotenv.Load()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	grpcPort := env("PORT", "50051")
	webPort := env("WEB_PORT", "8080")

	prac, err := practitionerFromEnv()
	if err != nil {
		log.Fatalf("practitioner: %v", err)
	}

	repo, cleanup := openStore()
	defer cleanup()

	svc := schedule.New(repo)
	ai := insight.New(os.Getenv("GEMINI_API_KEY"))
	h := handler.New(svc, repo, ai, prac, secret)

	// grpc server
	rl := middleware.NewRateLimiter(5, 10)
	srv := grpc.NewServer(
		grpc.ForceServerCodec(rpc.Codec{}),
		grpc.ChainUnaryInterceptor(
			middleware.RateLimit(rl),
			middleware.Auth(secret),
		),
	)
	rpc.RegisterAgendaServer(srv, h)

	// start grpc on TCP
	lis, err := net.Listen("tcp", ":"+grpcPort)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	go func() {
		log.Printf("grpc on :%s", grpcPort)
		if err := srv.Serve(lis); err != nil {
			log.Printf("grpc: %v", err)
		}
	}()

	// grpc-web bridge for the browser client, plus the calendar feed
	bridge := gweb.New(h, secret)
	mux := http.NewServeMux()
	mux.Handle("/calendar.ics", ics.Handler(svc))
	mux.Handle("/", bridge.Handler())

	httpSrv := &http.Server{
		Addr:    ":" + webPort,
		Handler: mux,
	}
	go func() {
		log.Printf("grpc-web on :%s", webPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http: %v", err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	log.Println("shutting down")
	srv.GracefulStop()
	httpSrv.Close()
}

// openStore connects to postgres when DATABASE_URL is set and falls back to
// the in-memory store otherwise.
func openStore() (repository, func()) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Println("DATABASE_URL not set, using in-memory store")
		return store.NewMemory(), func() {}
	}

	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	log.Println("connected to postgres")

	// run migrations
	if migration, err := os.ReadFile("db/migrations/001_init.sql"); err != nil {
		log.Printf("migration file not found, skipping: %v", err)
	} else if _, err := pool.Exec(context.Background(), string(migration)); err != nil {
		log.Printf("migration warning: %v", err)
	} else {
		log.Println("migration applied")
	}

	return store.New(pool), pool.Close
}

// practitionerFromEnv builds the single account the API serves. Either
// PRACTITIONER_PASSWORD_HASH (bcrypt) or PRACTITIONER_PASSWORD must be set.
func practitionerFromEnv() (auth.Practitioner, error) {
	p := auth.Practitioner{
		ID:           env("PRACTITIONER_ID", uuid.NewString()),
		Email:        env("PRACTITIONER_EMAIL", "admin@example.com"),
		Name:         env("PRACTITIONER_NAME", "Practitioner"),
		PasswordHash: os.Getenv("PRACTITIONER_PASSWORD_HASH"),
	}
	if p.PasswordHash == "" {
		pw := env("PRACTITIONER_PASSWORD", "admin")
		hash, err := auth.HashPassword(pw)
		if err != nil {
			return auth.Practitioner{}, err
		}
		p.PasswordHash = hash
	}
	return p, nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
