package seed

import (
	"context"
	"errors"
	"fmt"

	"sevaconnect/internal/store"
	"sevaconnect/pkg/types"
)

// Demo NGOs cover three cities and categories so the search and filter
// endpoints have something to chew on out of the box. All three are verified;
// pending profiles can be produced by registering through the API.
var demoNGOs = []types.NGO{
	{
		ID:               "orgAw2Xf7Jq9Kt1Lm4Np6Rs8Uv0Yb3Dc",
		UserID:           "ngo1Qw7Jt3cxMfVbR5sYzK8lDhN2pIe6",
		OrganizationName: "Ashar Foundation",
		Description:      "Shelter and rehabilitation support for homeless families in Mumbai.",
		Street:           "14 Hill Road, Bandra West",
		City:             "Mumbai",
		State:            "Maharashtra",
		ZipCode:          "400050",
		Country:          "India",
		Lat:              19.0596,
		Lng:              72.8295,
		Category:         "shelter",
		Contact:          "contact@asharfoundation.example.org",
		Needs:            []string{"blankets", "mattresses", "toiletries"},
		Tags:             []string{"shelter", "mumbai", "maharashtra", "blankets"},
		VerificationStatus: types.VerificationStatusVerified,
	},
	{
		ID:               "orgBx3Yg8Kr0Lu2Mn5Oq7St9Vw1Zc4Ed",
		UserID:           "ngo2Rt9Ks4dyLgWcT6uXvJ1mEfP3qOa7",
		OrganizationName: "South Bites Trust",
		Description:      "Community kitchens serving daily meals across Bengaluru.",
		Street:           "22 MG Road",
		City:             "Bengaluru",
		State:            "Karnataka",
		ZipCode:          "560001",
		Country:          "India",
		Lat:              12.9716,
		Lng:              77.5946,
		Category:         "food",
		Contact:          "hello@southbites.example.org",
		Needs:            []string{"rice", "lentils", "cooking oil"},
		Tags:             []string{"food", "bengaluru", "karnataka", "rice"},
		VerificationStatus: types.VerificationStatusVerified,
	},
	{
		ID:               "orgCy4Zh9Ls1Mv3No6Pr8Tu0Wx2Ad5Fe",
		UserID:           "ngo3Sv1Lu5ezMhXdU7wYwK2nFgQ4rPb8",
		OrganizationName: "Pathshala Initiative",
		Description:      "After-school learning centers for first-generation students in Delhi.",
		Street:           "8 Lodhi Road",
		City:             "New Delhi",
		State:            "Delhi",
		ZipCode:          "110003",
		Country:          "India",
		Lat:              28.5918,
		Lng:              77.2273,
		Category:         "education",
		Contact:          "team@pathshala.example.org",
		Needs:            []string{"notebooks", "school bags", "stationery"},
		Tags:             []string{"education", "new-delhi", "delhi", "notebooks"},
		VerificationStatus: types.VerificationStatusVerified,
	},
}

func SeedDemoNGOs(ctx context.Context, ngoRepo *store.NGORepository) error {
	created := 0
	for _, demo := range demoNGOs {
		_, err := ngoRepo.NGO(ctx, demo.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, types.ErrNGONotFound) {
			return fmt.Errorf("failed to look up demo ngo %s: %w", demo.OrganizationName, err)
		}

		ngo := demo
		if err := ngoRepo.Create(ctx, &ngo); err != nil {
			return fmt.Errorf("failed to create demo ngo %s: %w", demo.OrganizationName, err)
		}
		created++
	}

	fmt.Printf("Demo NGOs seeded: %d created, %d already present\n", created, len(demoNGOs)-created)
	return nil
}
