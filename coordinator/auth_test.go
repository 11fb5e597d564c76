package coordinator_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/chronic-org/chronic/client"
	"github.com/chronic-org/chronic/coordinator"
	"github.com/chronic-org/chronic/profile"
	"github.com/chronic-org/chronic/store"
	"github.com/chronic-org/chronic/tracking"
)

var _ = Describe("Auth Coordinator", func() {
	var st *store.Store
	var profileSlice *profile.Slice
	var trackingSlice *tracking.Slice
	var profileGateway *fakeProfileGateway
	var trackingGateway *fakeTrackingGateway
	var authGateway *fakeAuthGateway
	var auth *coordinator.Auth
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
		logger := zap.NewNop().Sugar()
		st = store.NewStore(logger)
		profileSlice = profile.NewSlice()
		trackingSlice = tracking.NewSlice()
		st.Register(profileSlice, trackingSlice)

		profileGateway = &fakeProfileGateway{}
		trackingGateway = &fakeTrackingGateway{}
		authGateway = &fakeAuthGateway{}

		profileCoordinator := coordinator.NewProfileCoordinator(st, profileSlice, trackingSlice, profileGateway, logger)
		trackingCoordinator := coordinator.NewTrackingCoordinator(st, trackingSlice, trackingGateway, logger)
		auth = coordinator.NewAuthCoordinator(st, authGateway, profileCoordinator, trackingCoordinator, logger)
	})

	Describe("Login", func() {
		It("hydrates the profile and both day-views", func() {
			profileGateway.getUser = func(ctx context.Context, userId int) (*client.User, error) {
				return &client.User{UserId: userId, Email: "casey@example.com"}, nil
			}
			fetchedDates := make(chan string, 2)
			trackingGateway.symptomRecords = func(ctx context.Context, userId int, date string) (client.SymptomTrackingGrid, error) {
				fetchedDates <- date
				return client.SymptomTrackingGrid{"fatigue": {"12-4 PM": 6}}, nil
			}

			result, err := auth.Login(ctx, "casey@example.com", "secret")
			Expect(err).ToNot(HaveOccurred())
			Expect(result.UserId).To(Equal(12))
			auth.Wait()

			today, yesterday := coordinator.TrackingDates(time.Now())
			Expect([]string{<-fetchedDates, <-fetchedDates}).To(ConsistOf(today, yesterday))

			st.View(func() {
				Expect(profileSlice.State().Email).To(Equal("casey@example.com"))
				Expect(trackingSlice.State().PrimaryTracking.Symptoms).To(HaveKey("fatigue"))
				Expect(trackingSlice.State().SecondaryTracking.Symptoms).To(HaveKey("fatigue"))
			})
		})

		It("surfaces the signin rejection without touching the store", func() {
			authGateway.signin = func(ctx context.Context, data client.SigninRequest) (*client.AuthResult, error) {
				return nil, rejection("invalid credentials")
			}

			_, err := auth.Login(ctx, "casey@example.com", "wrong")
			Expect(err).To(HaveOccurred())
			auth.Wait()

			st.View(func() {
				Expect(profileSlice.State().Error).To(BeNil())
				Expect(profileSlice.State().Loading).To(BeFalse())
			})
		})

		It("keeps the session even when hydration partially fails", func() {
			profileGateway.getUser = func(ctx context.Context, userId int) (*client.User, error) {
				return nil, rejection("profile unavailable")
			}

			result, err := auth.Login(ctx, "casey@example.com", "secret")
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Token).ToNot(BeEmpty())
			auth.Wait()

			st.View(func() {
				Expect(*profileSlice.State().Error).To(Equal("profile unavailable"))
			})
		})
	})

	Describe("Signup", func() {
		It("registers then hydrates like a login", func() {
			var registered client.RegisterRequest
			authGateway.register = func(ctx context.Context, data client.RegisterRequest) (*client.AuthResult, error) {
				registered = data
				return &client.AuthResult{Token: "token", UserId: 12}, nil
			}

			_, err := auth.Signup(ctx, "casey@example.com", "secret", "Casey")
			Expect(err).ToNot(HaveOccurred())
			auth.Wait()

			Expect(registered.Name).To(Equal("Casey"))
			Expect(registered.Email).To(Equal("casey@example.com"))
		})
	})

	Describe("Logout", func() {
		It("clears the token and resets every slice", func() {
			_, err := auth.Login(ctx, "casey@example.com", "secret")
			Expect(err).ToNot(HaveOccurred())
			auth.Wait()

			auth.Logout()

			Expect(authGateway.tokenCleared).To(BeTrue())
			st.View(func() {
				Expect(profileSlice.State().UserId).To(BeNil())
				Expect(profileSlice.State().Since).To(BeEmpty())
				Expect(trackingSlice.State().PrimaryTracking.Symptoms).To(BeEmpty())
			})
		})
	})
})

var _ = Describe("TrackingDates", func() {
	It("returns consecutive UTC dates", func() {
		today, yesterday := coordinator.TrackingDates(
			time.Date(2025, time.September, 1, 10, 30, 0, 0, time.UTC))
		Expect(today).To(Equal("2025-09-01"))
		Expect(yesterday).To(Equal("2025-08-31"))
	})

	It("crosses month boundaries correctly", func() {
		_, yesterday := coordinator.TrackingDates(
			time.Date(2025, time.March, 1, 0, 10, 0, 0, time.UTC))
		Expect(yesterday).To(Equal("2025-02-28"))
	})
})
