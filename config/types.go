package config

// Config holds all configuration settings
type Config struct {
	Stock  StockConfig  `json:"stock"`
	Engine EngineConfig `json:"engine"`
	Bridge BridgeConfig `json:"bridge"`
}

// StockConfig holds the replenishment formula settings
type StockConfig struct {
	// MinBoxes is the minimum number of boxes to keep stocked per product.
	MinBoxes int `json:"minBoxes"`
	// DaysToStock is the number of days of average demand to keep on hand.
	DaysToStock int `json:"daysToStock"`
	// AveragingDays is the number of most recent days sales are averaged over.
	AveragingDays int `json:"averagingDays"`
	// IncludeDisplay counts units on the shop floor toward current stock.
	// When false only back-storage and in-transit units count.
	IncludeDisplay bool `json:"includeDisplay"`
	// ProtectedFunds is a floor of currency the ordering system may not spend.
	ProtectedFunds float64 `json:"protectedFunds"`
	// AutoRestockDayStart runs a restock at the top of every day.
	AutoRestockDayStart bool `json:"autoRestockDayStart"`
}

// EngineConfig holds engine runtime settings
type EngineConfig struct {
	SaveFile             string `json:"saveFile"`
	OrderCooldownSeconds int    `json:"orderCooldownSeconds"`
	TickIntervalMillis   int    `json:"tickIntervalMillis"`
	LogFile              string `json:"logFile"`
	LogLevel             string `json:"logLevel"`
	LogTailSize          int    `json:"logTailSize"`
}

// BridgeConfig holds host bridge connection settings
type BridgeConfig struct {
	URL                   string `json:"url"`
	RequestTimeoutSeconds int    `json:"requestTimeoutSeconds"`
}
