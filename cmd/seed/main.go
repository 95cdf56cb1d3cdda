package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"jobalert-web/internal/infrastructure/portalapi"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	baseURL := flag.String("api", os.Getenv("PORTAL_API_BASE_URL"), "portal API base URL")
	email := flag.String("email", os.Getenv("SEED_ADMIN_EMAIL"), "admin email")
	password := flag.String("password", os.Getenv("SEED_ADMIN_PASSWORD"), "admin password")
	list := flag.Bool("list", false, "list jobs after seeding")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	client := portalapi.NewClient(*baseURL, *timeout, log.Default())
	if client == nil {
		log.Fatalf("PORTAL_API_BASE_URL is not configured")
	}
	if strings.TrimSpace(*email) == "" || *password == "" {
		log.Fatalf("provide -email and -password for an admin account")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	token, err := client.Login(ctx, strings.TrimSpace(*email), *password)
	if err != nil {
		log.Fatalf("login failed: %s", portalapi.MessageOr(err, err.Error()))
	}

	msg, err := client.SeedData(ctx, token)
	if err != nil {
		log.Fatalf("seed failed: %s", portalapi.MessageOr(err, err.Error()))
	}
	log.Printf("seed: %s", msg)

	if !*list {
		return
	}
	jobs, err := client.ListJobs(ctx, nil)
	if err != nil {
		log.Fatalf("list jobs failed: %v", err)
	}
	for _, j := range jobs {
		log.Printf("%s\t%s\t%s\t%s", j.ID, j.Category, j.Organization, j.Title)
	}
	log.Printf("%d jobs", len(jobs))
}
