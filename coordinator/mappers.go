package coordinator

import (
	"github.com/chronic-org/chronic/client"
	"github.com/chronic-org/chronic/pointer"
	"github.com/chronic-org/chronic/profile"
	"github.com/chronic-org/chronic/timeofday"
	"github.com/chronic-org/chronic/tracking"
)

func userFromGateway(user *client.User) profile.User {
	diagnoses := make([]profile.Diagnosis, 0, len(user.Diagnoses))
	for _, d := range user.Diagnoses {
		diagnoses = append(diagnoses, profile.Diagnosis{
			DiagnosisId: pointer.FromAny(d.DiagnosisId),
			Diagnosis:   d.Diagnosis,
			Keywords:    d.Keywords,
		})
	}

	medications := make([]profile.Medication, 0, len(user.Medications))
	for _, m := range user.Medications {
		medications = append(medications, profile.Medication{
			Medication: m.Medication,
			DosageNum:  m.DosageNum,
			DosageUnit: m.DosageUnit,
			TimeOfDay:  timesOfDayFromGateway(m.TimeOfDay),
		})
	}

	symptoms := user.Symptoms
	if symptoms == nil {
		symptoms = []string{}
	}

	return profile.User{
		UserId:      pointer.FromAny(user.UserId),
		Email:       user.Email,
		Name:        user.Name,
		IsAdmin:     user.IsAdmin,
		Since:       user.Since,
		LastLogin:   user.LastLogin,
		Diagnoses:   diagnoses,
		Symptoms:    symptoms,
		Medications: medications,
	}
}

func timesOfDayFromGateway(raw []string) []timeofday.TimeOfDay {
	times := make([]timeofday.TimeOfDay, 0, len(raw))
	for _, t := range raw {
		times = append(times, timeofday.TimeOfDay(t))
	}
	return times
}

func symptomGridFromGateway(grid client.SymptomTrackingGrid) tracking.SymptomGrid {
	converted := tracking.SymptomGrid{}
	for symptom, timespans := range grid {
		converted[symptom] = map[string]int{}
		for timespan, severity := range timespans {
			converted[symptom][timespan] = severity
		}
	}
	return converted
}

func medGridFromGateway(grid client.MedTrackingGrid) tracking.MedicationGrid {
	converted := tracking.MedicationGrid{}
	for slot, meds := range grid {
		converted[timeofday.TimeOfDay(slot)] = meds
	}
	return converted
}
