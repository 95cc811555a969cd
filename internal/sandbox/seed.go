package sandbox

import (
	"github.com/shopspring/decimal"

	"github.com/JaimeStill/printmg/internal/backend"
)

// Seeded accounts available in every sandbox.
const (
	AdminEmail    = "admin@print.mg"
	AdminPassword = "Admin1234"
	UserEmail     = "client@print.mg"
	UserPassword  = "Client1234"
)

var seedProducts = []backend.Product{
	{
		Name:          "Flyer A5",
		Description:   "Flyers publicitaires en quadrichromie",
		Category:      "Flyers",
		Price:         decimal.NewFromInt(500),
		DefaultFormat: "A5",
	},
	{
		Name:          "Brochure A4",
		Description:   "Brochures et catalogues reliés",
		Category:      "Brochures",
		Price:         decimal.NewFromInt(1000),
		DefaultFormat: "A4",
	},
	{
		Name:          "Affiche A3",
		Description:   "Affiches sur papier glacé",
		Category:      "Affiches",
		Price:         decimal.NewFromInt(1500),
		DefaultFormat: "A3",
	},
	{
		Name:          "Carte de visite",
		Description:   "Cartes de visite au format personnalisé",
		Category:      "Cartes",
		Price:         decimal.NewFromInt(300),
		DefaultFormat: "custom",
	},
	{
		Name:        "Bâche publicitaire",
		Description: "Impression grand format jusqu'à 160x100 cm",
		Category:    "Grand format",
		Price:       decimal.NewFromInt(25000),
		LargeFormat: true,
	},
}

func seed(s *state) error {
	accounts := []struct {
		user     backend.User
		password string
	}{
		{
			user: backend.User{
				LastName: "Rakoto", FirstName: "Admin", Email: AdminEmail,
				Phone: "0340000000", City: "Antananarivo", Country: "Madagascar",
				Role: backend.RoleAdmin,
			},
			password: AdminPassword,
		},
		{
			user: backend.User{
				LastName: "Rabe", FirstName: "Client", Email: UserEmail,
				Phone: "0321234567", City: "Antananarivo", Country: "Madagascar",
				Role: backend.RoleUser,
			},
			password: UserPassword,
		},
	}

	for _, a := range accounts {
		if _, err := s.addUser(a.user, a.password); err != nil {
			return err
		}
	}
	for _, p := range seedProducts {
		s.createProduct(p)
	}
	return nil
}
