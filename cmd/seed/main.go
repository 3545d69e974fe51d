package main

import (
	"context"
	"fmt"
	"os"

	"hotelbooking/internal/config"
	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/modules/auth"
	"hotelbooking/internal/pkg/logger"
	"hotelbooking/internal/repository"

	"github.com/joho/godotenv"
)

type seedRoom struct {
	title       string
	price       int64
	size        int
	capacity    int
	description string
	services    []string
}

var rooms = []seedRoom{
	{"Single Garden Room", 1_200_000, 18, 1, "Quiet single room facing the garden.", []string{"Breakfast", "Wi-Fi"}},
	{"Double Sea View", 2_500_000, 32, 2, "Double room with a balcony over the sea.", []string{"Breakfast", "Wi-Fi", "Parking"}},
	{"Family Suite", 4_200_000, 55, 4, "Two bedrooms and a lounge for families.", []string{"Breakfast", "Wi-Fi", "Parking", "Airport shuttle"}},
	{"Royal Suite", 7_800_000, 80, 3, "Top floor suite with a private terrace.", []string{"Breakfast", "Wi-Fi", "Parking", "Airport shuttle", "Spa"}},
}

func main() {
	_ = godotenv.Load()
	log := logger.New("info", "dev")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("DB connection failed")
	}
	log.Info("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("AutoMigrate failed")
	}

	log.Info("Cleaning old data...")
	for _, table := range []string{"reviews", "transactions", "guests", "bookings", "room_services", "room_images", "rooms", "services", "contact_messages", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.WithError(err).WithField("table", table).Fatal("cleanup failed")
		}
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	reviews := repository.NewReviewRepository(db)

	// ================== USERS ==================
	adminPhone := getEnv("ADMIN_PHONE", "09120000000")
	adminPassword := getEnv("ADMIN_PASSWORD", "admin123")
	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		log.WithError(err).Fatal("hash admin password")
	}
	admin := &domain.User{Phone: adminPhone, FullName: "Administrator", IsAdmin: true, IsActive: true, PasswordHash: hash}
	if err := users.Create(ctx, admin); err != nil {
		log.WithError(err).Fatal("create admin")
	}
	log.Infof("Admin created: %s / %s", adminPhone, adminPassword)

	guests := make([]*domain.User, 0, 3)
	for i, name := range []string{"Sara Ahmadi", "Reza Karimi", "Mina Rahimi"} {
		u := &domain.User{Phone: fmt.Sprintf("0912111110%d", i+1), FullName: name, IsActive: true}
		if err := users.Create(ctx, u); err != nil {
			log.WithError(err).Fatal("create guest")
		}
		guests = append(guests, u)
	}

	// ================== ROOMS ==================
	services := map[string]domain.Service{}
	for _, r := range rooms {
		for _, name := range r.services {
			if _, ok := services[name]; ok {
				continue
			}
			s := domain.Service{Name: name}
			if err := roomRepo.CreateService(ctx, &s); err != nil {
				log.WithError(err).Fatal("create service")
			}
			services[name] = s
		}
	}

	created := make([]*domain.Room, 0, len(rooms))
	for _, r := range rooms {
		room := &domain.Room{
			Title:       r.title,
			Price:       r.price,
			Size:        r.size,
			Capacity:    r.capacity,
			Description: r.description,
			Existing:    true,
		}
		for _, name := range r.services {
			room.Services = append(room.Services, services[name])
		}
		slug := domain.Slugify(r.title)
		room.Images = []domain.RoomImage{
			{URL: fmt.Sprintf("/media/rooms/%s-1.jpg", slug), AltText: r.title, IsPrimary: true},
			{URL: fmt.Sprintf("/media/rooms/%s-2.jpg", slug), AltText: r.title},
		}
		if err := roomRepo.Create(ctx, room); err != nil {
			log.WithError(err).Fatal("create room")
		}
		created = append(created, room)
	}
	log.Infof("Created %d rooms and %d services", len(created), len(services))

	// ================== REVIEWS ==================
	comments := []string{"Clean and quiet, great staff.", "Breakfast could be better.", "Amazing view, will come back!"}
	count := 0
	for i, room := range created {
		for j, g := range guests {
			rv := &domain.Review{
				RoomID:     room.ID,
				UserID:     g.ID,
				Rating:     5 - (i+j)%3,
				Comment:    comments[(i+j)%len(comments)],
				IsFeatured: (i+j)%2 == 0,
			}
			if err := reviews.Create(ctx, rv); err != nil {
				log.WithError(err).Fatal("create review")
			}
			count++
		}
	}
	log.Infof("Created %d reviews", count)
	log.Info("Seed completed")
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
