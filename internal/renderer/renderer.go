// Package renderer is a plain-text itinerary consumer for the CLI. The
// pipeline's obligation ends at the structured RouteResult; everything here
// is presentation.
package renderer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/FACorreiaa/go-lazy-traveler/internal/api/intent"
	"github.com/FACorreiaa/go-lazy-traveler/internal/types"
)

// Query is one CLI invocation.
type Query struct {
	Text      string
	Username  string
	Latitude  *float64
	Longitude *float64
}

type CLI struct {
	router intent.Service
	out    io.Writer
}

func New(router intent.Service, out io.Writer) *CLI {
	return &CLI{router: router, out: out}
}

// Run routes one query and prints the structured result.
func (c *CLI) Run(ctx context.Context, q Query) error {
	result, err := c.router.Route(ctx, intent.Request{
		Query:     q.Text,
		Username:  q.Username,
		Latitude:  q.Latitude,
		Longitude: q.Longitude,
		Now:       time.Now(),
	})
	if err != nil {
		return err
	}

	switch {
	case result.Answer != "":
		fmt.Fprintln(c.out, result.Answer)
	case result.Itinerary != nil:
		c.printItinerary(result.Itinerary)
	case len(result.Places) > 0:
		c.printPlaces(result.Places)
	default:
		fmt.Fprintln(c.out, result.Message)
	}
	return nil
}

func (c *CLI) printItinerary(it *types.Itinerary) {
	fmt.Fprintf(c.out, "Your %s itinerary:\n", it.Template)
	for _, slot := range it.Slots {
		fmt.Fprintf(c.out, "  %s  %s (%s)\n", slot.TimeLabel, slot.Name, slot.Category)
		fmt.Fprintf(c.out, "        %s (%.2f km away)\n", slot.Address, slot.DistanceKm)
		if slot.OpeningHours != "" {
			fmt.Fprintf(c.out, "        open: %s\n", slot.OpeningHours)
		}
	}
	if len(it.Slots) == 0 {
		fmt.Fprintln(c.out, "  (no open places found for this time window)")
	}
}

func (c *CLI) printPlaces(found []types.PlaceCandidate) {
	fmt.Fprintln(c.out, "Recommended places:")
	for _, p := range found {
		distance := ""
		if p.DistanceKm != nil {
			distance = fmt.Sprintf(", %.2f km away", *p.DistanceKm)
		}
		fmt.Fprintf(c.out, "  %s (%s)%s\n", p.Name, p.Category, distance)
		if p.Address != "" {
			fmt.Fprintf(c.out, "        %s\n", p.Address)
		}
	}
}
