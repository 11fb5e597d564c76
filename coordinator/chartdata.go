package coordinator

import (
	"context"

	"github.com/chronic-org/chronic/chartdata"
	"github.com/chronic-org/chronic/client"
	"github.com/chronic-org/chronic/errors"
	"github.com/chronic-org/chronic/store"
	"go.uber.org/zap"
)

const msgPullDataFailed = "failed to fetch data"

type DataGateway interface {
	GetSymptomData(ctx context.Context, q client.DataQuery) (map[string][]client.SeverityPoint, error)
	GetMedData(ctx context.Context, q client.DataQuery) (map[string][]client.CountPoint, error)
}

var _ DataGateway = &client.Client{}

type ChartData struct {
	store   *store.Store
	slice   *chartdata.Slice
	gateway DataGateway
	logger  *zap.SugaredLogger
}

func NewChartDataCoordinator(st *store.Store, slice *chartdata.Slice, gateway DataGateway, logger *zap.SugaredLogger) *ChartData {
	return &ChartData{
		store:   st,
		slice:   slice,
		gateway: gateway,
		logger:  logger,
	}
}

// PullData replaces the charting projection with the selected time range.
// There is no optimistic phase; the previous projection stays visible until
// both reads land.
func (c *ChartData) PullData(ctx context.Context, symptomQuery, medQuery client.DataQuery) error {
	c.store.Update(c.slice.PullDataRequest)
	symptomData, err := c.gateway.GetSymptomData(ctx, symptomQuery)
	if err != nil {
		return c.fail(err)
	}
	medData, err := c.gateway.GetMedData(ctx, medQuery)
	if err != nil {
		return c.fail(err)
	}
	c.store.Update(func() {
		c.slice.PullDataSuccess(chartdata.Payload{
			Symptoms:    severityPointsFromGateway(symptomData),
			Medications: countPointsFromGateway(medData),
		})
	})
	return nil
}

func (c *ChartData) fail(err error) error {
	message := errors.Message(err, msgPullDataFailed)
	c.logger.Warnw("chart data pull failed", "error", message)
	c.store.Update(func() { c.slice.PullDataFailure(message) })
	return err
}

func severityPointsFromGateway(dataset map[string][]client.SeverityPoint) map[string][]chartdata.SeverityPoint {
	converted := map[string][]chartdata.SeverityPoint{}
	for name, points := range dataset {
		series := make([]chartdata.SeverityPoint, 0, len(points))
		for _, p := range points {
			series = append(series, chartdata.SeverityPoint{Datetime: p.Datetime, Severity: p.Severity})
		}
		converted[name] = series
	}
	return converted
}

func countPointsFromGateway(dataset map[string][]client.CountPoint) map[string][]chartdata.CountPoint {
	converted := map[string][]chartdata.CountPoint{}
	for name, points := range dataset {
		series := make([]chartdata.CountPoint, 0, len(points))
		for _, p := range points {
			series = append(series, chartdata.CountPoint{Datetime: p.Datetime, Number: p.Number})
		}
		converted[name] = series
	}
	return converted
}
