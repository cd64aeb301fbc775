package pages

import (
	"fmt"
	"time"
)

// Greeting returns the salutation shown above the clock for the given hour.
func Greeting(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "Good morning"
	case hour >= 12 && hour < 17:
		return "Good afternoon"
	case hour >= 17 && hour < 22:
		return "Good evening"
	default:
		return "Good night"
	}
}

// FormatClock renders the wall-clock time in the configured display format.
func FormatClock(t time.Time, is24Hour bool) string {
	if is24Hour {
		return t.Format("15:04")
	}
	return t.Format("3:04 PM")
}

// FormatDate renders the date line shown beneath the clock.
func FormatDate(t time.Time) string {
	return t.Format("Monday, January 2")
}

// TemperatureLabel attaches the configured unit symbol to a temperature value.
func TemperatureLabel(temperature, unit string) string {
	return fmt.Sprintf("%s°%s", temperature, unit)
}
