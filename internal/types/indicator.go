package types

// IndicatorType names an indicator family registered in the engine.
type IndicatorType string

const (
	IndicatorTypeSMA                  IndicatorType = "sma"
	IndicatorTypeEMA                  IndicatorType = "ema"
	IndicatorTypeRSI                  IndicatorType = "rsi"
	IndicatorTypeBollingerBands       IndicatorType = "bollinger_bands"
	IndicatorTypeMACD                 IndicatorType = "macd"
	IndicatorTypeVWAP                 IndicatorType = "vwap"
	IndicatorTypeFibonacciRetracement IndicatorType = "fibonacci_retracement"
)

// IndicatorName is the name of a single column in the indicator set.
type IndicatorName string

const (
	IndicatorSMA50          IndicatorName = "SMA_50"
	IndicatorEMA20          IndicatorName = "EMA_20"
	IndicatorRSI            IndicatorName = "RSI"
	IndicatorBollingerUpper IndicatorName = "Bollinger_Upper"
	IndicatorBollingerLower IndicatorName = "Bollinger_Lower"
	IndicatorMACDLine       IndicatorName = "MACD_Line"
	IndicatorSignalLine     IndicatorName = "Signal_Line"
	IndicatorVWAP           IndicatorName = "VWAP"
	IndicatorFib236         IndicatorName = "Fib_Level_23.6%"
	IndicatorFib382         IndicatorName = "Fib_Level_38.2%"
	IndicatorFib618         IndicatorName = "Fib_Level_61.8%"

	// ColumnClose reports the close price next to indicator values.
	ColumnClose IndicatorName = "Close"
)

// IndicatorNames lists every indicator column in computation order.
func IndicatorNames() []IndicatorName {
	return []IndicatorName{
		IndicatorSMA50,
		IndicatorEMA20,
		IndicatorRSI,
		IndicatorBollingerUpper,
		IndicatorBollingerLower,
		IndicatorMACDLine,
		IndicatorSignalLine,
		IndicatorVWAP,
		IndicatorFib236,
		IndicatorFib382,
		IndicatorFib618,
	}
}
