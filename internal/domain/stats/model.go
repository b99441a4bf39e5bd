package stats

import "time"

// BottleFeedStatistic es el registro derivado por toma: los datos de la
// toma más los minutos transcurridos desde la toma anterior.
type BottleFeedStatistic struct {
	Time                     time.Time `json:"time"`
	AmountML                 int       `json:"amount_ml"`
	TimeSinceLastFeedMinutes float64   `json:"time_since_last_feed_minutes"`
}
