package profile_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/chronic-org/chronic/profile"
	profileTest "github.com/chronic-org/chronic/profile/test"
	"github.com/chronic-org/chronic/timeofday"
)

var _ = Describe("Profile Slice", func() {
	var slice *profile.Slice

	BeforeEach(func() {
		slice = profile.NewSlice()
	})

	Describe("FetchProfile", func() {
		It("starts loading and clears the previous error", func() {
			slice.FetchProfileFailure("boom")
			slice.FetchProfileRequest()
			Expect(slice.State().Loading).To(BeTrue())
			Expect(slice.State().Error).To(BeNil())
		})

		It("replaces the whole profile on success", func() {
			user := profileTest.RandomUser()
			slice.FetchProfileRequest()
			slice.FetchProfileSuccess(user)

			state := slice.State()
			Expect(state.Loading).To(BeFalse())
			Expect(state.UserId).To(Equal(user.UserId))
			Expect(state.Email).To(Equal(user.Email))
			Expect(state.Name).To(Equal(user.Name))
			Expect(state.Since).To(Equal(user.Since))
			Expect(state.Diagnoses).To(Equal(user.Diagnoses))
			Expect(state.Symptoms).To(Equal(user.Symptoms))
			Expect(state.Medications).To(Equal(user.Medications))
		})

		It("records the error on failure without touching the profile", func() {
			user := profileTest.RandomUser()
			slice.FetchProfileRequest()
			slice.FetchProfileSuccess(user)

			slice.FetchProfileRequest()
			slice.FetchProfileFailure("failed to fetch profile data")

			state := slice.State()
			Expect(state.Loading).To(BeFalse())
			Expect(*state.Error).To(Equal("failed to fetch profile data"))
			Expect(state.Email).To(Equal(user.Email))
		})
	})

	Describe("UpdateProfile", func() {
		BeforeEach(func() {
			slice.FetchProfileRequest()
			user := profileTest.RandomUser()
			user.Email = "old@example.com"
			user.Name = "Old Name"
			slice.FetchProfileSuccess(user)
		})

		It("merges the updated fields speculatively", func() {
			slice.UpdateProfileRequest(map[string]interface{}{
				"email": "new@example.com",
				"name":  "New Name",
			})
			Expect(slice.State().Email).To(Equal("new@example.com"))
			Expect(slice.State().Name).To(Equal("New Name"))
			Expect(slice.HistoryEmpty()).To(BeFalse())
		})

		It("never persists a password field", func() {
			slice.UpdateProfileRequest(map[string]interface{}{
				"email":    "new@example.com",
				"password": "hunter2",
			})
			Expect(slice.State().Email).To(Equal("new@example.com"))
			Expect(slice.State().Name).To(Equal("Old Name"))
		})

		It("keeps the merged fields and clears history on success", func() {
			slice.UpdateProfileRequest(map[string]interface{}{"name": "New Name"})
			slice.UpdateProfileSuccess()
			Expect(slice.State().Name).To(Equal("New Name"))
			Expect(slice.State().Loading).To(BeFalse())
			Expect(slice.HistoryEmpty()).To(BeTrue())
		})

		It("restores email and name on failure", func() {
			slice.UpdateProfileRequest(map[string]interface{}{
				"email": "new@example.com",
				"name":  "New Name",
			})
			slice.UpdateProfileFailure("failed to edit profile")

			state := slice.State()
			Expect(state.Email).To(Equal("old@example.com"))
			Expect(state.Name).To(Equal("Old Name"))
			Expect(*state.Error).To(Equal("failed to edit profile"))
			Expect(slice.HistoryEmpty()).To(BeTrue())
		})
	})

	Describe("DeleteProfile", func() {
		It("resets to initial state on success", func() {
			slice.FetchProfileSuccess(profileTest.RandomUser())
			slice.DeleteProfileRequest()
			slice.DeleteProfileSuccess()

			state := slice.State()
			Expect(state.UserId).To(BeNil())
			Expect(state.Email).To(BeEmpty())
			Expect(state.Diagnoses).To(BeEmpty())
			Expect(state.Symptoms).To(BeEmpty())
			Expect(state.Medications).To(BeEmpty())
		})

		It("keeps the profile on failure", func() {
			user := profileTest.RandomUser()
			slice.FetchProfileSuccess(user)
			slice.DeleteProfileRequest()
			slice.DeleteProfileFailure("failed to delete account")

			Expect(slice.State().Email).To(Equal(user.Email))
			Expect(*slice.State().Error).To(Equal("failed to delete account"))
		})
	})

	Describe("ConnectDiagnosis", func() {
		It("appends the diagnosis without an id", func() {
			slice.ConnectDiagnosisRequest(profile.DiagnosisPayload{
				Diagnosis: "ME/CFS",
				Keywords:  []string{"chronic fatigue"},
			})

			diagnoses := slice.State().Diagnoses
			Expect(diagnoses).To(HaveLen(1))
			Expect(diagnoses[0].DiagnosisId).To(BeNil())
			Expect(diagnoses[0].Diagnosis).To(Equal("ME/CFS"))
		})

		It("merges the assigned id onto the appended entry on success", func() {
			slice.FetchProfileSuccess(profileTest.RandomUser())
			existing := len(slice.State().Diagnoses)

			slice.ConnectDiagnosisRequest(profile.DiagnosisPayload{Diagnosis: "ME/CFS"})
			slice.ConnectDiagnosisSuccess(42)

			diagnoses := slice.State().Diagnoses
			Expect(diagnoses).To(HaveLen(existing + 1))
			Expect(*diagnoses[existing].DiagnosisId).To(Equal(42))
			Expect(slice.HistoryEmpty()).To(BeTrue())
		})

		It("pops the appended entry on failure", func() {
			slice.FetchProfileSuccess(profileTest.RandomUser())
			before := slice.State().Diagnoses

			slice.ConnectDiagnosisRequest(profile.DiagnosisPayload{Diagnosis: "ME/CFS"})
			slice.ConnectDiagnosisFailure("failed to add diagnosis")

			Expect(slice.State().Diagnoses).To(Equal(before))
			Expect(*slice.State().Error).To(Equal("failed to add diagnosis"))
		})
	})

	Describe("UpdateUserDiagnosis", func() {
		BeforeEach(func() {
			user := profileTest.RandomUser()
			user.Diagnoses = []profile.Diagnosis{{
				DiagnosisId: intp(7),
				Diagnosis:   "POTS",
				Keywords:    []string{"dysautonomia"},
			}}
			slice.FetchProfileSuccess(user)
		})

		It("appends the new keywords to the matching diagnosis", func() {
			slice.UpdateUserDiagnosisRequest(profile.DiagnosisPayload{
				Diagnosis: "POTS",
				Keywords:  []string{"orthostatic"},
			})
			Expect(slice.State().Diagnoses[0].Keywords).To(Equal([]string{"dysautonomia", "orthostatic"}))
		})

		It("leaves non-matching diagnoses alone", func() {
			slice.UpdateUserDiagnosisRequest(profile.DiagnosisPayload{
				Diagnosis: "unknown",
				Keywords:  []string{"orthostatic"},
			})
			Expect(slice.State().Diagnoses[0].Keywords).To(Equal([]string{"dysautonomia"}))
		})

		It("restores the previous keywords on failure", func() {
			slice.UpdateUserDiagnosisRequest(profile.DiagnosisPayload{
				Diagnosis: "POTS",
				Keywords:  []string{"orthostatic"},
			})
			slice.UpdateUserDiagnosisFailure("failed to update diagnosis keywords")

			Expect(slice.State().Diagnoses[0].Keywords).To(Equal([]string{"dysautonomia"}))
			Expect(slice.HistoryEmpty()).To(BeTrue())
		})
	})

	Describe("DisconnectFromDiagnosis", func() {
		BeforeEach(func() {
			user := profileTest.RandomUser()
			user.Diagnoses = []profile.Diagnosis{
				{DiagnosisId: intp(7), Diagnosis: "POTS"},
				{DiagnosisId: intp(9), Diagnosis: "ME/CFS"},
			}
			slice.FetchProfileSuccess(user)
		})

		It("removes the diagnosis with the given id", func() {
			slice.DisconnectFromDiagnosisRequest(7)
			diagnoses := slice.State().Diagnoses
			Expect(diagnoses).To(HaveLen(1))
			Expect(diagnoses[0].Diagnosis).To(Equal("ME/CFS"))
		})

		It("restores the removed diagnosis on failure", func() {
			slice.DisconnectFromDiagnosisRequest(7)
			slice.DisconnectFromDiagnosisFailure("failed to remove diagnosis")
			Expect(slice.State().Diagnoses).To(HaveLen(2))
		})
	})

	Describe("Symptoms", func() {
		BeforeEach(func() {
			user := profileTest.RandomUser()
			user.Symptoms = []string{"fatigue", "brain fog"}
			slice.FetchProfileSuccess(user)
		})

		It("appends a connected symptom and pops it on failure", func() {
			slice.ConnectSymptomRequest("nausea")
			Expect(slice.State().Symptoms).To(Equal([]string{"fatigue", "brain fog", "nausea"}))

			slice.ConnectSymptomFailure("failed to add symptom")
			Expect(slice.State().Symptoms).To(Equal([]string{"fatigue", "brain fog"}))
		})

		It("moves a changed symptom to the end", func() {
			slice.ChangeSymptomRequest(profile.SymptomChange{OldSymptom: "fatigue", NewSymptom: "exhaustion"})
			Expect(slice.State().Symptoms).To(Equal([]string{"brain fog", "exhaustion"}))
		})

		It("restores the original order after a failed change", func() {
			slice.ChangeSymptomRequest(profile.SymptomChange{OldSymptom: "fatigue", NewSymptom: "exhaustion"})
			slice.ChangeSymptomFailure("failed to change symptom")
			Expect(slice.State().Symptoms).To(Equal([]string{"fatigue", "brain fog"}))
		})

		It("removes a disconnected symptom and restores it on failure", func() {
			slice.DisconnectFromSymptomRequest("brain fog")
			Expect(slice.State().Symptoms).To(Equal([]string{"fatigue"}))

			slice.DisconnectFromSymptomFailure("failed to remove symptom")
			Expect(slice.State().Symptoms).To(Equal([]string{"fatigue", "brain fog"}))
		})
	})

	Describe("Medications", func() {
		var ldn profile.Medication

		BeforeEach(func() {
			ldn = profile.Medication{
				Medication: "LDN",
				DosageNum:  4.5,
				DosageUnit: "mg",
				TimeOfDay:  []timeofday.TimeOfDay{timeofday.Evening},
			}
			user := profileTest.RandomUser()
			user.Medications = []profile.Medication{ldn}
			slice.FetchProfileSuccess(user)
		})

		It("appends a connected medication and pops it on failure", func() {
			slice.ConnectMedRequest(profile.Medication{Medication: "B12", DosageNum: 1000, DosageUnit: "mcg"})
			Expect(slice.State().Medications).To(HaveLen(2))

			slice.ConnectMedFailure("failed to add medication")
			Expect(slice.State().Medications).To(Equal([]profile.Medication{ldn}))
		})

		It("replaces a changed medication by name", func() {
			slice.ChangeMedRequest(profile.MedicationChange{
				OldMed: "LDN",
				NewMed: profile.Medication{
					Medication: "LDN",
					DosageNum:  3,
					DosageUnit: "mg",
					TimeOfDay:  []timeofday.TimeOfDay{timeofday.AM},
				},
			})

			meds := slice.State().Medications
			Expect(meds).To(HaveLen(1))
			Expect(meds[0].DosageNum).To(Equal(3.0))
			Expect(meds[0].TimeOfDay).To(Equal([]timeofday.TimeOfDay{timeofday.AM}))
		})

		It("restores the previous protocol after a failed change", func() {
			slice.ChangeMedRequest(profile.MedicationChange{
				OldMed: "LDN",
				NewMed: profile.Medication{Medication: "LDN", DosageNum: 3},
			})
			slice.ChangeMedFailure("failed to change medication")
			Expect(slice.State().Medications).To(Equal([]profile.Medication{ldn}))
		})

		It("removes a disconnected medication and restores it on failure", func() {
			slice.DisconnectFromMedRequest("LDN")
			Expect(slice.State().Medications).To(BeEmpty())

			slice.DisconnectFromMedFailure("failed to remove medication")
			Expect(slice.State().Medications).To(Equal([]profile.Medication{ldn}))
		})
	})

	Describe("Reset", func() {
		It("drops state and any outstanding snapshot", func() {
			slice.FetchProfileSuccess(profileTest.RandomUser())
			slice.DisconnectFromSymptomRequest(slice.State().Symptoms[0])
			Expect(slice.HistoryEmpty()).To(BeFalse())

			slice.Reset()
			Expect(slice.State().UserId).To(BeNil())
			Expect(slice.HistoryEmpty()).To(BeTrue())
		})
	})
})

func intp(i int) *int {
	return &i
}
