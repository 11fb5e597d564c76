package coordinator

import (
	"github.com/chronic-org/chronic/chartdata"
	"github.com/chronic-org/chronic/client"
	"github.com/chronic-org/chronic/latest"
	"github.com/chronic-org/chronic/profile"
	"github.com/chronic-org/chronic/store"
	"github.com/chronic-org/chronic/tracking"
	"go.uber.org/fx"
)

// Module wires the slices, the store and the coordinators. The gateway
// interfaces are all satisfied by *client.Client in production; tests swap
// in fakes per interface.
var Module = fx.Options(
	fx.Provide(
		store.NewStore,
		profile.NewSlice,
		tracking.NewSlice,
		chartdata.NewSlice,
		latest.NewSlice,
		func(c *client.Client) ProfileGateway { return c },
		func(c *client.Client) TrackingGateway { return c },
		func(c *client.Client) DataGateway { return c },
		func(c *client.Client) LatestGateway { return c },
		func(c *client.Client) AuthGateway { return c },
		NewProfileCoordinator,
		NewTrackingCoordinator,
		NewChartDataCoordinator,
		NewLatestCoordinator,
		NewAuthCoordinator,
	),
	fx.Invoke(RegisterSlices),
)

// RegisterSlices subscribes every slice to the logout broadcast at
// composition time; no slice imports the logout event itself.
func RegisterSlices(st *store.Store, p *profile.Slice, t *tracking.Slice, d *chartdata.Slice, l *latest.Slice) {
	st.Register(p, t, d, l)
}
