package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-crm/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/infra/integration/rowstore"
	"github.com/xavierca1/ligue-crm/internal/infra/mail"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
	"github.com/xavierca1/ligue-crm/internal/infra/session"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

func main() {
	godotenv.Load()

	rowstoreURL := os.Getenv("ROWSTORE_URL")
	if rowstoreURL == "" {
		log.Fatal("ROWSTORE_URL é obrigatória (URL do web-app da planilha)")
	}

	// 1. Gateway do row-store (única porta de saída para a planilha)
	gateway := rowstore.NewClient(rowstoreURL)

	// 2. Sessões: Postgres quando tem DATABASE_URL, senão memória
	var db *sql.DB
	var sessions usecase.SessionStoreInterface
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		var err error
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		sessions = session.NewPostgresStore(db)
	} else {
		log.Println("⚠️ DATABASE_URL ausente, sessões ficam em memória")
		sessions = session.NewMemoryStore()
	}

	// 3. Fila + notificações (opcionais: sem RabbitMQ o CRM segue funcionando)
	var rabbitMQ *queue.RabbitMQ
	var producer usecase.QueueProducerInterface
	if host := os.Getenv("RABBITMQ_HOST"); host != "" {
		var err error
		rabbitMQ, err = queue.NewRabbitMQ(
			os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"), host, os.Getenv("RABBITMQ_PORT"),
		)
		if err != nil {
			log.Fatal(err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

		mailSender := mail.NewEmailSender(
			os.Getenv("MAIL_HOST"), 587, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		)

		// Worker consome a fila e manda o email de atribuição
		worker := queue.NewWorker(rabbitMQ.Ch, mailSender)
		go worker.Start(queue.QueueName)
	} else {
		log.Println("⚠️ RABBITMQ_HOST ausente, notificações de atribuição desligadas")
	}

	// 4. UseCases
	userUC := usecase.NewUserUseCase(gateway)
	leadUC := usecase.NewLeadUseCase(gateway, userUC, producer)
	authUC := usecase.NewAuthUseCase(userUC, sessions)

	// 5. Handlers
	authHandler := handlers.NewAuthHandler(authUC)
	userHandler := handlers.NewUserHandler(userUC)
	leadHandler := handlers.NewLeadHandler(leadUC)
	var rabbitConn *amqp091.Connection
	if rabbitMQ != nil {
		rabbitConn = rabbitMQ.Conn
	}
	healthHandler := handlers.NewHealthHandler(db, rabbitConn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		// Sem wildcard: com AllowCredentials o navegador rejeita
		// Access-Control-Allow-Origin: * e o cookie de sessão não anda.
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowCredentials: true,
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/auth/login", authHandler.Login)
	r.Post("/auth/logout", authHandler.Logout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(authUC))

		r.Get("/auth/me", authHandler.Me)

		r.Get("/leads", leadHandler.List)
		r.Post("/leads", leadHandler.Add)
		r.Put("/leads/{id}", leadHandler.Update)
		r.Delete("/leads/{id}", leadHandler.Remove)

		// Gestão de usuários é tela de admin
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole("admin"))

			r.Get("/users", userHandler.List)
			r.Get("/users/{id}", userHandler.GetByID)
			r.Post("/users", userHandler.Add)
			r.Put("/users/{id}", userHandler.Update)
			r.Delete("/users/{id}", userHandler.Remove)
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🔥 Ligue CRM API rodando na porta :%s", port)
	http.ListenAndServe(":"+port, r)
}
