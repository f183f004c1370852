package providers

import (
	"fmt"
	"time"

	"travelcast.app/models"
)

// ForecastLoggerDecorator writes request/response/error entries for each
// forecast fetch to the provider log file.
type ForecastLoggerDecorator struct {
	wrappedProvider ForecastProvider
	logger          FileLogger
	providerName    string
}

func NewForecastLoggerDecorator(provider ForecastProvider, logger FileLogger, providerName string) ForecastProvider {
	return &ForecastLoggerDecorator{
		wrappedProvider: provider,
		logger:          logger,
		providerName:    providerName,
	}
}

func (d *ForecastLoggerDecorator) FetchForecast(lat, lon float64, days int) (*models.ForecastResult, error) {
	target := fmt.Sprintf("%.5f,%.5f days=%d", lat, lon, days)

	d.logger.LogRequest(d.providerName, target)
	startTime := time.Now()

	forecast, err := d.wrappedProvider.FetchForecast(lat, lon, days)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.LogError(d.providerName, target, err, duration)
		return nil, err
	}

	d.logger.LogResponse(d.providerName, target, map[string]interface{}{
		"timezone":   forecast.Timezone,
		"daily_days": len(forecast.Daily),
		"condition":  forecast.Current.Condition.Label,
	}, duration)
	return forecast, nil
}
