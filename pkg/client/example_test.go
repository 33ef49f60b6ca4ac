package client_test

import (
	"context"
	"fmt"
	"log"

	"github.com/gymstack/gymctl/pkg/client"
)

// Example demonstrates basic usage of the GymStack client
func Example() {
	// Create a new client
	c := client.NewClient(client.Config{
		BaseURL: "https://api.gymstack.io",
	})

	ctx := context.Background()

	// Login
	loginResp, err := c.Login(ctx, "user@example.com", "password")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Logged in as: %s\n", loginResp.User.Email)

	// List activities
	activities, err := c.Activities().List(ctx, nil)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Found %d activities\n", len(activities))
}

// ExampleClient_Login demonstrates user authentication
func ExampleClient_Login() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.gymstack.io",
	})

	loginResp, err := c.Login(context.Background(), "user@example.com", "password")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Token: %s\n", loginResp.Token)
}

// ExampleActivitiesService_List demonstrates server-side filtering
func ExampleActivitiesService_List() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.gymstack.io",
		Token:   "your-token",
	})

	activities, err := c.Activities().List(context.Background(), &client.ActivityListOptions{
		Category:   "yoga",
		Difficulty: "beginner",
	})
	if err != nil {
		log.Fatal(err)
	}

	for _, a := range activities {
		fmt.Printf("%s (%d min, capacity %d)\n", a.Name, a.DurationMinutes, a.Capacity)
	}
}

// ExampleBookingsService_Create demonstrates booking a class
func ExampleBookingsService_Create() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.gymstack.io",
		Token:   "your-token",
	})

	booking, err := c.Bookings().Create(context.Background(), client.CreateBookingRequest{
		ActivityID: 42,
		Date:       "2026-09-15",
		Time:       "18:00",
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Booked %s on %s\n", booking.ActivityName, booking.Date)
}
