package sport

// DefaultCatalog is the built-in sport list used to seed empty stores.
// IDs are stable slugs so seeded data is reproducible across restarts
// and backends.
func DefaultCatalog() []Sport {
	return []Sport{
		{ID: "sport-running", Name: "Running", Unit: "km", PointsPerUnit: 10, Description: "Outdoor or treadmill running"},
		{ID: "sport-cycling", Name: "Cycling", Unit: "km", PointsPerUnit: 3, Description: "Road or indoor cycling"},
		{ID: "sport-swimming", Name: "Swimming", Unit: "km", PointsPerUnit: 50, Description: "Pool or open water swimming"},
		{ID: "sport-walking", Name: "Walking", Unit: "km", PointsPerUnit: 5, Description: "Walking or hiking"},
		{ID: "sport-push-ups", Name: "Push-ups", Unit: "reps", PointsPerUnit: 0.5, Description: "Push-up repetitions"},
		{ID: "sport-sit-ups", Name: "Sit-ups", Unit: "reps", PointsPerUnit: 0.3, Description: "Sit-up repetitions"},
		{ID: "sport-plank", Name: "Plank", Unit: "minutes", PointsPerUnit: 2, Description: "Plank hold duration"},
		{ID: "sport-yoga", Name: "Yoga", Unit: "sessions", PointsPerUnit: 15, Description: "Yoga sessions"},
		{ID: "sport-weight-training", Name: "Weight Training", Unit: "sessions", PointsPerUnit: 20, Description: "Gym strength sessions"},
		{ID: "sport-basketball", Name: "Basketball", Unit: "hours", PointsPerUnit: 12, Description: "Basketball play time"},
		{ID: "sport-tennis", Name: "Tennis", Unit: "hours", PointsPerUnit: 15, Description: "Tennis play time"},
		{ID: "sport-football", Name: "Football (Soccer)", Unit: "hours", PointsPerUnit: 18, Description: "Football play time"},
	}
}
