package test

import (
	"github.com/chronic-org/chronic/profile"
	"github.com/chronic-org/chronic/test"
	"github.com/chronic-org/chronic/timeofday"
)

func intp(i int) *int {
	return &i
}

func RandomDiagnosis() profile.Diagnosis {
	return profile.Diagnosis{
		DiagnosisId: intp(test.Rand.Intn(1000) + 1),
		Diagnosis:   test.Faker.Lorem().Word(),
		Keywords:    test.Faker.Lorem().Words(2),
	}
}

func RandomMedication() profile.Medication {
	times := timeofday.Values()
	return profile.Medication{
		Medication: test.Faker.Lorem().Word(),
		DosageNum:  float64(test.Rand.Intn(500) + 1),
		DosageUnit: "mg",
		TimeOfDay:  []timeofday.TimeOfDay{times[test.Rand.Intn(len(times))]},
	}
}

func RandomUser() profile.User {
	return profile.User{
		UserId:    intp(test.Rand.Intn(1000) + 1),
		Email:     test.Faker.Internet().Email(),
		Name:      test.Faker.Person().Name(),
		Since:     "2024-03-01T00:00:00.000Z",
		LastLogin: "2025-08-30T12:00:00.000Z",
		Diagnoses: []profile.Diagnosis{RandomDiagnosis()},
		Symptoms:  []string{test.Faker.Lorem().Word(), test.Faker.Lorem().Word()},
		Medications: []profile.Medication{
			RandomMedication(),
		},
	}
}

// HydratedSlice returns a slice populated the way a successful fetch
// leaves it.
func HydratedSlice() *profile.Slice {
	slice := profile.NewSlice()
	slice.FetchProfileRequest()
	slice.FetchProfileSuccess(RandomUser())
	return slice
}
