package coordinator_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/chronic-org/chronic/client"
	"github.com/chronic-org/chronic/coordinator"
	"github.com/chronic-org/chronic/store"
	"github.com/chronic-org/chronic/timeofday"
	"github.com/chronic-org/chronic/tracking"
)

var _ = Describe("Tracking Coordinator", func() {
	var st *store.Store
	var slice *tracking.Slice
	var gateway *fakeTrackingGateway
	var trackingCoordinator *coordinator.Tracking
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
		st = store.NewStore(zap.NewNop().Sugar())
		slice = tracking.NewSlice()
		gateway = &fakeTrackingGateway{}
		trackingCoordinator = coordinator.NewTrackingCoordinator(st, slice, gateway, zap.NewNop().Sugar())
		st.Register(slice)
	})

	Describe("FetchDaysTracking", func() {
		It("loads both grids into the named view", func() {
			gateway.symptomRecords = func(ctx context.Context, userId int, date string) (client.SymptomTrackingGrid, error) {
				return client.SymptomTrackingGrid{"fatigue": {"12-4 PM": 6}}, nil
			}
			gateway.medRecords = func(ctx context.Context, userId int, date string) (client.MedTrackingGrid, error) {
				return client.MedTrackingGrid{"Evening": {"LDN": nil}}, nil
			}

			Expect(trackingCoordinator.FetchDaysTracking(ctx, 12, "2025-08-31", tracking.Secondary)).To(Succeed())

			state := slice.State()
			Expect(state.SecondaryTracking.Symptoms["fatigue"]["12-4 PM"]).To(Equal(6))
			Expect(state.SecondaryTracking.Medications[timeofday.Evening]).To(HaveKey("LDN"))
			Expect(state.PrimaryTracking.Symptoms).To(BeEmpty())
		})

		It("fails the whole fetch when the medication read rejects", func() {
			gateway.symptomRecords = func(ctx context.Context, userId int, date string) (client.SymptomTrackingGrid, error) {
				return client.SymptomTrackingGrid{"fatigue": {"12-4 PM": 6}}, nil
			}
			gateway.medRecords = func(ctx context.Context, userId int, date string) (client.MedTrackingGrid, error) {
				return nil, rejection("")
			}

			err := trackingCoordinator.FetchDaysTracking(ctx, 12, "2025-08-31", tracking.Primary)

			Expect(err).To(HaveOccurred())
			Expect(slice.State().PrimaryTracking.Symptoms).To(BeEmpty())
			Expect(*slice.State().Error).To(Equal("failed to load tracking data"))
		})
	})

	Describe("CreateSymptomTrackingRecord", func() {
		BeforeEach(func() {
			st.Update(func() {
				slice.FetchDaysTrackingSuccess(tracking.FetchPayload{
					View:     tracking.Primary,
					Symptoms: tracking.SymptomGrid{"fatigue": {}},
				})
			})
		})

		It("commits the speculative severity on success", func() {
			Expect(trackingCoordinator.CreateSymptomTrackingRecord(ctx, 12,
				client.SymptomTrackingData{SymptomId: 5, TrackDate: "2025-09-01", Timespan: "12-4 PM", Severity: 7},
				tracking.SymptomRecordPayload{View: tracking.Primary, Symptom: "fatigue", Timespan: "12-4 PM", Severity: 7},
			)).To(Succeed())

			Expect(slice.State().PrimaryTracking.Symptoms["fatigue"]["12-4 PM"]).To(Equal(7))
			Expect(slice.HistoryEmpty()).To(BeTrue())
		})

		It("rolls the severity back when the gateway rejects", func() {
			gateway.createSymptomRecord = func(ctx context.Context, userId int, data client.SymptomTrackingData) (*client.SymptomTrackingRecord, error) {
				return nil, rejection("")
			}

			err := trackingCoordinator.CreateSymptomTrackingRecord(ctx, 12,
				client.SymptomTrackingData{},
				tracking.SymptomRecordPayload{View: tracking.Primary, Symptom: "fatigue", Timespan: "12-4 PM", Severity: 7})

			Expect(err).To(HaveOccurred())
			Expect(slice.State().PrimaryTracking.Symptoms["fatigue"]).ToNot(HaveKey("12-4 PM"))
			Expect(*slice.State().Error).To(Equal("failed to create tracking record"))
		})
	})

	Describe("EditMedTrackingRecord", func() {
		BeforeEach(func() {
			st.Update(func() {
				slice.FetchDaysTrackingSuccess(tracking.FetchPayload{
					View:        tracking.Primary,
					Medications: tracking.MedicationGrid{timeofday.AM: {"B12": intp(1)}},
				})
			})
		})

		It("rolls the count back when the gateway rejects", func() {
			gateway.updateNumber = func(ctx context.Context, userId, medtrackId int, data client.NumberData) (*client.MedTrackingRecord, error) {
				return nil, rejection("record not found")
			}

			err := trackingCoordinator.EditMedTrackingRecord(ctx, 12, 88,
				client.NumberData{Number: 2},
				tracking.MedRecordPayload{View: tracking.Primary, TimeOfDay: timeofday.AM, Med: "B12", Number: 2})

			Expect(err).To(HaveOccurred())
			Expect(*slice.State().PrimaryTracking.Medications[timeofday.AM]["B12"]).To(Equal(1))
			Expect(*slice.State().Error).To(Equal("record not found"))
		})
	})

	Describe("DeleteTrackingDate", func() {
		It("deletes both record kinds then refetches the view", func() {
			var deletedSymptoms, deletedMeds bool
			gateway.deleteSymptomDate = func(ctx context.Context, userId int, date string) (*client.Deleted, error) {
				deletedSymptoms = true
				return &client.Deleted{}, nil
			}
			gateway.deleteMedDate = func(ctx context.Context, userId int, date string) (*client.Deleted, error) {
				deletedMeds = true
				return &client.Deleted{}, nil
			}
			gateway.symptomRecords = func(ctx context.Context, userId int, date string) (client.SymptomTrackingGrid, error) {
				return client.SymptomTrackingGrid{}, nil
			}

			Expect(trackingCoordinator.DeleteTrackingDate(ctx, 12, "2025-09-01", tracking.Primary)).To(Succeed())
			Expect(deletedSymptoms).To(BeTrue())
			Expect(deletedMeds).To(BeTrue())
			Expect(slice.State().PrimaryTracking.Symptoms).To(BeEmpty())
		})

		It("stops before refetching when a delete rejects", func() {
			gateway.deleteSymptomDate = func(ctx context.Context, userId int, date string) (*client.Deleted, error) {
				return nil, rejection("")
			}

			err := trackingCoordinator.DeleteTrackingDate(ctx, 12, "2025-09-01", tracking.Primary)
			Expect(err).To(HaveOccurred())
			Expect(*slice.State().Error).To(Equal("failed to delete tracking records"))
		})
	})
})

func intp(i int) *int {
	return &i
}
