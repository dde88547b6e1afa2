package http

import (
	"log/slog"
	"os"

	"github.com/gajihub/payroll-backend-go/internal/handler/http/middleware"
	"github.com/gajihub/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(JWTService jwt.Service, payrollHandler PayrollHandler, env string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "gajihub-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/generate", payrollHandler.GenerateDraft)
				r.Post("/generate-all", payrollHandler.GenerateAll)

				r.Route("/records", func(r chi.Router) {
					r.Get("/", payrollHandler.ListRecords)

					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", payrollHandler.GetRecord)
						r.Patch("/status", payrollHandler.SetStatus)
						r.Post("/lines", payrollHandler.AddLine)
						r.Delete("/penalties", payrollHandler.DeletePenaltyLines)
					})
				})

				r.Route("/lines/{id}", func(r chi.Router) {
					r.Patch("/", payrollHandler.UpdateLine)
					r.Delete("/", payrollHandler.DeleteLine)
				})

				r.Get("/users/{userID}/components", payrollHandler.ListUserComponents)
			})
		})
	})
	return r
}
