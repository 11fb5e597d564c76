package coordinator

import (
	"context"
	"sync"
	"time"

	"github.com/chronic-org/chronic/client"
	"github.com/chronic-org/chronic/store"
	"github.com/chronic-org/chronic/tracking"
	"go.uber.org/zap"
)

type AuthGateway interface {
	Signin(ctx context.Context, data client.SigninRequest) (*client.AuthResult, error)
	Register(ctx context.Context, data client.RegisterRequest) (*client.AuthResult, error)
	ClearToken()
}

var _ AuthGateway = &client.Client{}

// Auth runs the multi-step login and signup flows. Authentication itself is
// a plain call: its error goes back to the form, not into the store. On
// success the profile and the two day-views are fetched as three
// uncoordinated async calls; there is no login transaction, and a failed
// fetch does not invalidate the stored token.
type Auth struct {
	store    *store.Store
	gateway  AuthGateway
	profile  *Profile
	tracking *Tracking
	logger   *zap.SugaredLogger
	pending  sync.WaitGroup
}

func NewAuthCoordinator(st *store.Store, gateway AuthGateway, profileCoordinator *Profile, trackingCoordinator *Tracking, logger *zap.SugaredLogger) *Auth {
	return &Auth{
		store:    st,
		gateway:  gateway,
		profile:  profileCoordinator,
		tracking: trackingCoordinator,
		logger:   logger,
	}
}

func (c *Auth) Login(ctx context.Context, email, password string) (*client.AuthResult, error) {
	result, err := c.gateway.Signin(ctx, client.SigninRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	c.hydrate(ctx, result.UserId)
	return result, nil
}

func (c *Auth) Signup(ctx context.Context, email, password, name string) (*client.AuthResult, error) {
	result, err := c.gateway.Register(ctx, client.RegisterRequest{Email: email, Password: password, Name: name})
	if err != nil {
		return nil, err
	}
	c.hydrate(ctx, result.UserId)
	return result, nil
}

func (c *Auth) hydrate(ctx context.Context, userId int) {
	today, yesterday := TrackingDates(time.Now())
	c.pending.Add(3)
	go func() {
		defer c.pending.Done()
		_ = c.profile.FetchUserProfile(ctx, userId)
	}()
	go func() {
		defer c.pending.Done()
		_ = c.tracking.FetchDaysTracking(ctx, userId, today, tracking.Primary)
	}()
	go func() {
		defer c.pending.Done()
		_ = c.tracking.FetchDaysTracking(ctx, userId, yesterday, tracking.Secondary)
	}()
}

// Wait blocks until the fetches spawned by the last login or signup have
// resolved. The store is usable before then; callers wait only when they
// need a fully hydrated session, such as the CLI.
func (c *Auth) Wait() {
	c.pending.Wait()
}

// Logout clears the gateway token and broadcasts the reset to every slice.
// No remote call is involved.
func (c *Auth) Logout() {
	c.gateway.ClearToken()
	c.store.Logout()
	c.logger.Info("logged out")
}

// TrackingDates returns the UTC dates of the primary (today) and secondary
// (yesterday) day-views.
func TrackingDates(now time.Time) (today, yesterday string) {
	now = now.UTC()
	return now.Format("2006-01-02"), now.AddDate(0, 0, -1).Format("2006-01-02")
}
