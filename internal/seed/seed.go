// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"shareit/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumItems    int
	ShouldClean bool
}

var itemTemplates = []struct {
	Name        string
	Description string
}{
	{"Cordless drill", "18V drill with two batteries and a charger"},
	{"Pressure washer", "Electric pressure washer, 1800 PSI, with patio attachment"},
	{"Camping tent", "Three person dome tent, waterproof, easy setup"},
	{"Projector", "Full HD projector with HDMI cable and tripod screen"},
	{"Road bike", "Aluminium frame road bike, 54cm, recently serviced"},
	{"Stand mixer", "Kitchen stand mixer with dough hook and whisk"},
	{"Ladder", "Telescopic ladder, extends to 3.8 meters"},
	{"Snowboard", "155cm all-mountain snowboard with bindings"},
	{"Party speaker", "Battery powered speaker with two microphones"},
	{"Sewing machine", "Mechanical sewing machine with accessory kit"},
}

// Seeder builds and persists sample domain entities.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data in dependency order.
func (s *Seeder) ClearAll() error {
	for _, model := range []interface{}{
		&models.Comment{},
		&models.Booking{},
		&models.Item{},
		&models.ItemRequest{},
		&models.User{},
	} {
		if err := s.db.Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clear data: %w", err)
		}
	}
	return nil
}

// SeedUsers creates n users with generated names and unique emails.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			Name:  gofakeit.Name(),
			Email: fmt.Sprintf("%d.%s", i, gofakeit.Email()),
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("✓ %d users created", len(users))
	return users, nil
}

// SeedItems creates n items spread over the given owners. Roughly one item
// in ten is listed as unavailable.
func (s *Seeder) SeedItems(owners []*models.User, n int) ([]*models.Item, error) {
	if len(owners) == 0 {
		return nil, fmt.Errorf("no owners to seed items for")
	}
	items := make([]*models.Item, 0, n)
	for i := 0; i < n; i++ {
		tpl := itemTemplates[s.rng.Intn(len(itemTemplates))]
		item := &models.Item{
			Name:        tpl.Name,
			Description: tpl.Description,
			Available:   s.rng.Intn(10) != 0,
			OwnerID:     owners[s.rng.Intn(len(owners))].ID,
		}
		if err := s.db.Create(item).Error; err != nil {
			return nil, fmt.Errorf("create item: %w", err)
		}
		items = append(items, item)
	}
	log.Printf("✓ %d items created", len(items))
	return items, nil
}

// SeedBookings creates a mixed history of bookings: some finished, some
// running, some upcoming, in all three statuses. Bookers never book their
// own items.
func (s *Seeder) SeedBookings(users []*models.User, items []*models.Item) ([]*models.Booking, error) {
	statuses := []models.BookingStatus{models.StatusWaiting, models.StatusApproved, models.StatusRejected}
	now := time.Now()

	var bookings []*models.Booking
	for _, item := range items {
		if !item.Available {
			continue
		}
		for n := s.rng.Intn(3); n > 0; n-- {
			booker := users[s.rng.Intn(len(users))]
			if booker.ID == item.OwnerID {
				continue
			}
			// windows from 30 days back to 30 days ahead, 1-3 days long
			offset := time.Duration(s.rng.Intn(60*24)-30*24) * time.Hour
			start := now.Add(offset)
			end := start.Add(time.Duration(s.rng.Intn(48)+24) * time.Hour)

			booking := &models.Booking{
				Start:    start,
				End:      end,
				ItemID:   item.ID,
				BookerID: booker.ID,
				Status:   statuses[s.rng.Intn(len(statuses))],
			}
			if err := s.db.Create(booking).Error; err != nil {
				return nil, fmt.Errorf("create booking: %w", err)
			}
			bookings = append(bookings, booking)
		}
	}
	log.Printf("✓ %d bookings created", len(bookings))
	return bookings, nil
}

// SeedComments creates a comment for every finished APPROVED booking, so the
// data respects the same eligibility rule the service enforces.
func (s *Seeder) SeedComments(users []*models.User, bookings []*models.Booking) error {
	now := time.Now()
	count := 0
	byID := make(map[uint]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	for _, b := range bookings {
		if b.Status != models.StatusApproved || !b.End.Before(now) {
			continue
		}
		author := byID[b.BookerID]
		if author == nil {
			continue
		}
		comment := &models.Comment{
			Text:       gofakeit.Sentence(8),
			ItemID:     b.ItemID,
			AuthorID:   author.ID,
			AuthorName: author.Name,
			Created:    b.End.Add(time.Duration(s.rng.Intn(72)) * time.Hour),
		}
		if err := s.db.Create(comment).Error; err != nil {
			return fmt.Errorf("create comment: %w", err)
		}
		count++
	}
	log.Printf("✓ %d comments created", count)
	return nil
}

// SeedRequests creates an item request per third user and fulfills about
// half of them with a fresh item from another user.
func (s *Seeder) SeedRequests(users []*models.User) error {
	count := 0
	for i, user := range users {
		if i%3 != 0 {
			continue
		}
		request := &models.ItemRequest{
			Description: "Looking for: " + gofakeit.ProductName(),
			RequestorID: user.ID,
			Created:     time.Now().Add(-time.Duration(s.rng.Intn(30*24)) * time.Hour),
		}
		if err := s.db.Create(request).Error; err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		count++

		if s.rng.Intn(2) == 0 && len(users) > 1 {
			owner := users[(i+1)%len(users)]
			item := &models.Item{
				Name:        gofakeit.ProductName(),
				Description: gofakeit.ProductDescription(),
				Available:   true,
				OwnerID:     owner.ID,
				RequestID:   &request.ID,
			}
			if err := s.db.Create(item).Error; err != nil {
				return fmt.Errorf("create fulfilling item: %w", err)
			}
		}
	}
	log.Printf("✓ %d item requests created", count)
	return nil
}

// Seed populates the database with a full mesh of sample data.
func (s *Seeder) Seed(opts Options) error {
	log.Printf("🌱 Seeding %d users and %d items...", opts.NumUsers, opts.NumItems)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Printf("⚠️  Warning: could not clear all existing data: %v", err)
		}
	}

	users, err := s.SeedUsers(opts.NumUsers)
	if err != nil {
		return err
	}
	items, err := s.SeedItems(users, opts.NumItems)
	if err != nil {
		return err
	}
	bookings, err := s.SeedBookings(users, items)
	if err != nil {
		return err
	}
	if err := s.SeedComments(users, bookings); err != nil {
		return err
	}
	return s.SeedRequests(users)
}
