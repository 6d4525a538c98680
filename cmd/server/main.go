package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"vetclinic/internal/api"
	"vetclinic/internal/auth"
	"vetclinic/internal/repository"
	"vetclinic/internal/service"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	loc := time.UTC
	if tz := os.Getenv("CLINIC_TZ"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			log.Fatalf("Invalid CLINIC_TZ %q: %v", tz, err)
		}
		loc = l
	}

	apptRepo := repository.NewAppointmentRepository(db)
	mobileRepo := repository.NewMobileServiceRepository(db)
	petRepo := repository.NewPetRepository(db)
	ownerRepo := repository.NewOwnerRepository(db)
	medicineRepo := repository.NewMedicineRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	jobRepo := repository.NewJobRepository(db)

	sender := service.NewSenderService(loc)
	apptSvc := service.NewAppointmentService(apptRepo, petRepo, ownerRepo, sender, loc)
	mobileSvc := service.NewMobileServiceService(mobileRepo, petRepo, loc)
	petSvc := service.NewPetService(petRepo)
	medicineSvc := service.NewMedicineService(medicineRepo)
	notificationSvc := service.NewNotificationService(notificationRepo, petRepo, sender)
	authSvc := service.NewAuthService(ownerRepo)
	jobSvc := service.NewJobService(jobRepo, loc)

	apptHandler := api.NewAppointmentHandler(apptSvc)
	mobileHandler := api.NewMobileServiceHandler(mobileSvc)
	petHandler := api.NewPetHandler(petSvc)
	authHandler := api.NewAuthHandler(authSvc)
	adminHandler := api.NewAdminHandler(apptSvc, medicineSvc, notificationSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/appointments/availability", apptHandler.CheckAvailability).Methods("GET")

	// Owner endpoints (JWT protected)
	owner := r.PathPrefix("/api").Subrouter()
	owner.Use(auth.OwnerAuthMiddleware)
	owner.HandleFunc("/appointments", apptHandler.CreateAppointment).Methods("POST")
	owner.HandleFunc("/appointments", apptHandler.ListMyAppointments).Methods("GET")
	owner.HandleFunc("/appointments/{id}/cancel", apptHandler.CancelAppointment).Methods("POST")
	owner.HandleFunc("/mobile-services", mobileHandler.CreateRequest).Methods("POST")
	owner.HandleFunc("/mobile-services", mobileHandler.ListMyRequests).Methods("GET")
	owner.HandleFunc("/mobile-services/{id}/cancel", mobileHandler.CancelRequest).Methods("POST")
	owner.HandleFunc("/pets", petHandler.CreatePet).Methods("POST")
	owner.HandleFunc("/pets", petHandler.ListPets).Methods("GET")
	owner.HandleFunc("/pets/{id}", petHandler.GetPet).Methods("GET")
	owner.HandleFunc("/pets/{id}", petHandler.UpdatePet).Methods("PUT")
	owner.HandleFunc("/pets/{id}", petHandler.DeletePet).Methods("DELETE")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware)
	admin.HandleFunc("/appointments", adminHandler.ListAppointments).Methods("GET")
	admin.HandleFunc("/medicines", adminHandler.ListMedicines).Methods("GET")
	admin.HandleFunc("/medicines", adminHandler.CreateMedicine).Methods("POST")
	admin.HandleFunc("/medicines/{id}", adminHandler.UpdateMedicine).Methods("PUT")
	admin.HandleFunc("/medicines/{id}", adminHandler.DeleteMedicine).Methods("DELETE")
	admin.HandleFunc("/notifications/run", adminHandler.RunNotifications).Methods("POST")

	// Nightly maintenance: complete past appointments, then send reminders.
	c := cron.New()
	c.AddFunc("5 0 * * *", func() {
		if err := jobSvc.CompletePastAppointments(context.Background()); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	})
	c.AddFunc("0 8 * * *", func() {
		if _, err := notificationSvc.RunReminderBatch(context.Background()); err != nil {
			log.Printf("Reminder batch error: %v", err)
		}
	})
	c.Start()
	defer c.Stop()

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{os.Getenv("CORS_ORIGIN")}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
